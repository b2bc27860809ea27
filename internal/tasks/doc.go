// Package tasks implements the resilient transfer engine that copies ordered
// track files onto a removable player.
//
// # State machine
//
// One [Engine.Run] invocation moves through four states:
//
//	AwaitingDevice → CreatingDestination → CopyingFiles → Complete
//
// Every state can fall back to AwaitingDevice when the device disappears.
// Disconnects are never surfaced as failures: the engine waits for the
// device to return and retries the step it was on, without a retry cap.
// The only terminal outcomes are Complete and ctx cancellation.
//
// # Idempotence
//
// A destination file whose byte size equals the source's is treated as
// already copied and skipped. Size equality is a deliberate, documented
// stand-in for content verification: a file truncated by a mid-copy
// disconnect will not match and gets recopied in full on the next pass.
// There is no partial-resume within a single file and no rollback.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on a caller-supplied channel using
// select with default, so a slow or absent consumer never blocks a copy.
package tasks
