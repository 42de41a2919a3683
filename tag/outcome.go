package tag

import "github.com/moffa90/go-wisp/protocol"

//go:generate stringer -type=Kind -trimprefix=Kind

// Kind tells which effect a handler produced.
type Kind uint8

const (
	// KindDropped leaves the response untouched
	KindDropped Kind = iota

	// KindWriteArmed acknowledges entry into block-write mode
	KindWriteArmed

	// KindAck acknowledges an applied block write
	KindAck

	// KindJumpRequested asks for the handoff to the next application
	KindJumpRequested
)

// Outcome is the result of one command handler. Handlers never touch the
// response buffer themselves; Encode is the only place an outcome becomes
// wire bytes.
type Outcome struct {
	Kind Kind

	// Ack is set when Kind is KindAck
	Ack protocol.Ack
}

// Encode writes the outcome into the response buffer in place. Bytes beyond
// those the outcome owns are left alone, so a dropped frame leaves the buffer
// byte-identical.
func (o Outcome) Encode(resp []byte) {
	switch o.Kind {
	case KindWriteArmed:
		copy(resp, []byte{protocol.EnterWriteMode.Hi(), protocol.EnterWriteMode.Lo()})
	case KindJumpRequested:
		copy(resp, []byte{protocol.JumpRequest.Hi(), protocol.JumpRequest.Lo()})
	case KindAck:
		copy(resp, o.Ack.Bytes())
	}
}
