package link

import (
	"fmt"

	"github.com/ansel1/merry/v2"
)

var (
	// ErrLineTooLong means the peer sent more than MaxLineLength bytes without a newline
	ErrLineTooLong = merry.New("line too long", merry.NoCaptureStack())

	// ErrMalformed means a line could not be parsed
	ErrMalformed = merry.New("malformed line", merry.NoCaptureStack())

	// ErrOutOfStep means an earlier exchange was abandoned before its reply
	// arrived; the port has to be reopened
	ErrOutOfStep = merry.New("link out of step with peer, reopen the port", merry.NoCaptureStack())
)

// RemoteError is an error the serving side reported with an X reply.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %s", e.Message)
}

// UnexpectedReplyError means the reply does not fit the command sent.
type UnexpectedReplyError struct {
	Command string
	Reply   string
}

func (e *UnexpectedReplyError) Error() string {
	return fmt.Sprintf("unexpected reply %q to %q", e.Reply, e.Command)
}
