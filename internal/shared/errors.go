package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Device errors
	ErrDeviceAbsent   = fmt.Errorf("device not connected")
	ErrDeviceReadOnly = fmt.Errorf("device mounted read-only")
	ErrFolderNotFound = fmt.Errorf("folder not found on device")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrSourceNotFound  = fmt.Errorf("source folder not found")
)
