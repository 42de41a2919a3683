package protocol

import "fmt"

// Word is one 16-bit command word, the unit of both reader buffers.
type Word uint16

// NewWord joins a high and a low byte.
func NewWord(hi, lo byte) Word {
	return Word(hi)<<8 | Word(lo)
}

// Hi returns the high byte.
func (w Word) Hi() byte { return byte(w >> 8) }

// Lo returns the low byte.
func (w Word) Lo() byte { return byte(w) }

// Header holds the decoded first two words of a block-write frame.
type Header struct {
	// WordCount is the number of checksum-protected words. It also indexes the
	// trailer word.
	WordCount uint8

	// Size is the number of bytes to write
	Size uint8

	// Address is the absolute write target
	Address uint16
}

// ParseHeader decodes the header and address words of a block-write frame.
func ParseHeader(buf []Word) (Header, error) {
	if len(buf) < HeaderWords {
		return Header{}, &FrameError{Capacity: len(buf)}
	}
	return Header{
		WordCount: buf[0].Hi(),
		Size:      buf[0].Lo(),
		Address:   uint16(buf[1]),
	}, nil
}

// PayloadWords is the number of words carrying Size bytes.
func (h Header) PayloadWords() int {
	return (int(h.Size) + 1) / 2
}

// Span is the number of buffer words the frame touches, trailer included.
func (h Header) Span() int {
	span := int(h.WordCount) + TrailerWords
	if payloadEnd := HeaderWords + h.PayloadWords(); payloadEnd > span {
		span = payloadEnd
	}
	return span
}

// Ack is the acknowledgment a tag places in its response after a successful
// block write.
type Ack struct {
	WordCount uint8
	Size      uint8
	Address   uint16

	// Checksum is the header seed plus every byte read back after the write
	Checksum byte
}

// Bytes returns the acknowledgment as it appears on the wire:
//
//	[WORD_COUNT][SIZE][ADDR_H][ADDR_L][CHECKSUM]
func (a Ack) Bytes() []byte {
	return []byte{a.WordCount, a.Size, byte(a.Address >> 8), byte(a.Address), a.Checksum}
}

func (a Ack) String() string {
	return fmt.Sprintf("ack{words=%d size=%d addr=0x%04X sum=0x%02X}",
		a.WordCount, a.Size, a.Address, a.Checksum)
}
