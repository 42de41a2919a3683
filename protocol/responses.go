package protocol

import "fmt"

// ResponseKind classifies what a tag's response field currently says.
type ResponseKind int

const (
	// ResponseAck is a block-write acknowledgment (or whatever else the
	// response held, read as one)
	ResponseAck ResponseKind = iota

	// ResponseWriteArmed echoes the enter-write-mode sentinel
	ResponseWriteArmed

	// ResponseJump carries the jump sentinel
	ResponseJump
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseAck:
		return "ack"
	case ResponseWriteArmed:
		return "write-armed"
	case ResponseJump:
		return "jump"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

// Response is a decoded response field.
type Response struct {
	Kind ResponseKind

	// Ack is set when Kind is ResponseAck
	Ack Ack
}

// ParseResponse classifies the response field read back from a tag.
//
// The field is overloaded: the first two bytes are compared against the
// sentinels first, and anything else is read as an acknowledgment. A stale
// acknowledgment is indistinguishable from a fresh one here; compare against
// ComputeAck to tell them apart.
//
// An acknowledgment whose word count and size bytes happen to read B1 05 or
// B0 07 is classified as the matching sentinel. BuildBlockWriteFrame never
// produces one: its word count tops out at HeaderWords+128 = 130 (0x82).
func ParseResponse(epc []byte) (Response, error) {
	if len(epc) < 2 {
		return Response{}, fmt.Errorf("%w: got %d bytes, minimum is 2", ErrShortResponse, len(epc))
	}

	switch NewWord(epc[0], epc[1]) {
	case EnterWriteMode:
		return Response{Kind: ResponseWriteArmed}, nil
	case JumpRequest:
		return Response{Kind: ResponseJump}, nil
	}

	if len(epc) < AckSize {
		return Response{}, fmt.Errorf("%w: got %d bytes, acknowledgment needs %d", ErrShortResponse, len(epc), AckSize)
	}

	return Response{
		Kind: ResponseAck,
		Ack: Ack{
			WordCount: epc[0],
			Size:      epc[1],
			Address:   uint16(epc[2])<<8 | uint16(epc[3]),
			Checksum:  epc[4],
		},
	}, nil
}
