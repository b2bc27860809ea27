package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Files completed so far
	Total   int    // Total files in the task
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	AwaitDevice Phase = iota
	CreateFolder
	CopyFiles
	Complete
)

func (p Phase) String() string {
	switch p {
	case AwaitDevice:
		return "await_device"
	case CreateFolder:
		return "create_folder"
	case CopyFiles:
		return "copy_files"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func awaitDeviceUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AwaitDevice,
		Step:    0,
		Total:   total,
		Message: "Waiting for device...",
	}
}

func createFolderUpdate(total int, dest string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateFolder,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Creating %s...", dest),
	}
}

func copiedFileUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CopyFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, name),
	}
}

func skippedFileUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CopyFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s (already on device)", step, total, name),
	}
}

func completeUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    total,
		Total:   total,
		Message: "Transfer complete",
	}
}
