package programmer

import "time"

// Programming phases reported through Progress.Phase.
const (
	PhaseEntering    = "entering"
	PhaseProgramming = "programming"
	PhaseLaunching   = "launching"
	PhaseComplete    = "complete"
)

// Progress contains information about the programming progress.
// Passed to ProgressCallback during programming operations.
type Progress struct {
	// Phase describes the current operation phase:
	//   "entering"    - Arming block-write mode
	//   "programming" - Writing blocks
	//   "launching"   - Requesting the jump to the new application
	//   "complete"    - Operation completed successfully
	Phase string

	// CurrentBlock is the number of blocks written so far
	CurrentBlock int

	// TotalBlocks is the total number of blocks to write
	TotalBlocks int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the total number of bytes acknowledged so far
	BytesWritten int

	// Retransmissions counts frames sent again after a stale acknowledgment
	Retransmissions int

	// ElapsedTime is the time elapsed since programming started
	ElapsedTime time.Duration
}

// ProgressCallback is called during programming to report progress.
// Implementations should return quickly; the tag's energy does not wait.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the programmer.
// This allows integration with any logging framework.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
