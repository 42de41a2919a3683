package programmer

import (
	"encoding/hex"
	"fmt"

	"github.com/moffa90/go-wisp/protocol"
)

// UnexpectedResponseError indicates the tag answered with something other
// than what the command should produce.
type UnexpectedResponseError struct {
	Operation string
	Response  []byte
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%s: unexpected response %s", e.Operation, hex.EncodeToString(e.Response))
}

// AckMismatchError indicates the tag acknowledged the block but read back
// different bytes than were sent, e.g. because the target is not writable.
type AckMismatchError struct {
	Expected protocol.Ack
	Actual   protocol.Ack
}

func (e *AckMismatchError) Error() string {
	return fmt.Sprintf("acknowledgment mismatch at 0x%04X: expected checksum 0x%02X, got 0x%02X",
		e.Expected.Address, e.Expected.Checksum, e.Actual.Checksum)
}

// StaleAckError indicates the tag never acknowledged a block: every frame was
// dropped or never reached the application.
type StaleAckError struct {
	Address  uint16
	Attempts int
}

func (e *StaleAckError) Error() string {
	return fmt.Sprintf("no acknowledgment for block at 0x%04X after %d attempts", e.Address, e.Attempts)
}

// CapacityError indicates a block does not fit the tag's block-write buffer.
type CapacityError struct {
	Size     int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("block of %d bytes does not fit a %d-word block-write buffer", e.Size, e.Capacity)
}
