package protocol

// Single-word command sentinels. The reader sends one of these in the first
// word of a WRITE command; the tag echoes the matching sentinel into the first
// two bytes of its response.
const (
	// EnterWriteMode arms block-write mode (0xB1, 0x05)
	EnterWriteMode Word = 0xB105

	// JumpRequest is what the tag answers to any other write descriptor
	// (0xB0, 0x07). Seeing it, the tag hands control to the next application.
	JumpRequest Word = 0xB007
)

// Block-write frame layout.
//
//	word 0          [WORD_COUNT][SIZE]
//	word 1          [ADDRESS]
//	word 2..        payload, (SIZE+1)/2 words, low byte = lower address
//	word WORD_COUNT [CHECKSUM][--]
const (
	// HeaderWords is the number of words ahead of the payload (header + address)
	HeaderWords = 2

	// TrailerWords is the number of words after the checksum-protected region
	TrailerWords = 1

	// MaxSize is the largest size a frame header can express
	MaxSize = 0xFF
)

// Tag geometry defaults, matching the stock application image.
const (
	// DefaultBlockWriteCapacity is the number of words the engine allocates
	// for one block-write frame
	DefaultBlockWriteCapacity = 32

	// ResponseSize is the length of the EPC/response field in bytes
	ResponseSize = 12

	// AckSize is the number of response bytes a block-write acknowledgment uses
	AckSize = 5

	// DefaultJumpVector is the memory slot holding the next application's
	// entry point
	DefaultJumpVector uint16 = 0xFDFE
)

// DefaultMaxPayloadSize is the largest payload, in bytes, that fits a frame in
// a buffer of DefaultBlockWriteCapacity words.
const DefaultMaxPayloadSize = (DefaultBlockWriteCapacity - HeaderWords - TrailerWords) * 2

// MaxPayloadSize returns the largest even payload size that still leaves room
// for header, address and trailer in a buffer of capacity words.
func MaxPayloadSize(capacity int) int {
	words := capacity - HeaderWords - TrailerWords
	if words <= 0 {
		return 0
	}
	size := words * 2
	if size > MaxSize {
		size = MaxSize - 1
	}
	return size
}
