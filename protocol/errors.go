package protocol

import (
	"fmt"

	"github.com/ansel1/merry/v2"
)

// Sentinel errors. Match them with errors.Is; the concrete errors below carry
// the frame details.
var (
	// ErrChecksumMismatch means a block-write trailer did not match the frame
	ErrChecksumMismatch = merry.New("block-write checksum mismatch", merry.NoCaptureStack())

	// ErrFrameTruncated means a frame reaches past the buffer it was delivered in
	ErrFrameTruncated = merry.New("block-write frame exceeds buffer", merry.NoCaptureStack())

	// ErrEmptyPayload is returned when building a frame without data
	ErrEmptyPayload = merry.New("payload cannot be empty", merry.NoCaptureStack())

	// ErrPayloadTooLarge is returned when building a frame whose size does not fit the header
	ErrPayloadTooLarge = merry.New("payload too large", merry.NoCaptureStack())

	// ErrShortResponse is returned when a response is too short to classify
	ErrShortResponse = merry.New("response too short", merry.NoCaptureStack())
)

// ChecksumError reports a frame whose trailer disagrees with its contents.
// The tag answers it with silence.
type ChecksumError struct {
	// Expected is the checksum carried in the trailer
	Expected byte

	// Calculated is the checksum computed over the protected words
	Calculated byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("block-write checksum mismatch: trailer 0x%02X, calculated 0x%02X",
		e.Expected, e.Calculated)
}

func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// FrameError reports a frame whose header points past the buffer capacity.
type FrameError struct {
	WordCount uint8
	Size      uint8

	// Capacity is the length of the buffer, in words
	Capacity int
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("block-write frame (word count %d, size %d) exceeds buffer of %d words",
		e.WordCount, e.Size, e.Capacity)
}

func (e *FrameError) Is(target error) bool {
	return target == ErrFrameTruncated
}
