package tag

import (
	"fmt"

	"github.com/ansel1/merry/v2"
)

// ErrHandedOff is returned for any command that reaches a tag after it handed
// control to the next application.
var ErrHandedOff = merry.New("tag handed off to next application", merry.NoCaptureStack())

// HandoffError reports that the application is gone; Handoff says where
// execution went.
type HandoffError struct {
	Handoff Handoff
}

func (e *HandoffError) Error() string {
	return fmt.Sprintf("tag handed off to next application at 0x%04X", e.Handoff.Target)
}

func (e *HandoffError) Is(target error) bool {
	return target == ErrHandedOff
}
