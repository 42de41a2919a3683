package protocol

import "fmt"

// BuildEnterWriteModeCmd returns the single-word descriptor that arms block-write mode.
func BuildEnterWriteModeCmd() Word {
	return EnterWriteMode
}

// BuildJumpCmd returns a single-word descriptor that makes the tag hand over
// to the next application. Any descriptor other than EnterWriteMode does; the
// jump sentinel itself is used so the intent reads clearly on a sniffer.
func BuildJumpCmd() Word {
	return JumpRequest
}

// BuildBlockWriteFrame constructs a block-write frame that writes data at address.
//
// Frame structure:
//
//	[WORD_COUNT|SIZE][ADDRESS][PAYLOAD...][CHECKSUM|00]
//
// Every payload word carries two image bytes with the byte for the lower
// address in its low half. An odd trailing byte is padded with zero in the
// high half; the tag writes exactly SIZE bytes so the pad never lands.
//
// The frame is not checked against any tag's buffer capacity. Use
// MaxPayloadSize to size chunks for a given tag.
func BuildBlockWriteFrame(address uint16, data []byte) ([]Word, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds maximum %d", ErrPayloadTooLarge, len(data), MaxSize)
	}

	payloadWords := (len(data) + 1) / 2
	wordCount := HeaderWords + payloadWords

	frame := make([]Word, 0, wordCount+TrailerWords)

	// Header
	frame = append(frame, NewWord(byte(wordCount), byte(len(data))))

	// Address
	frame = append(frame, Word(address))

	// Payload
	for i := 0; i < len(data); i += 2 {
		var hi byte
		if i+1 < len(data) {
			hi = data[i+1]
		}
		frame = append(frame, NewWord(hi, data[i]))
	}

	// Trailer
	frame = append(frame, NewWord(Checksum(frame, wordCount), 0x00))

	return frame, nil
}
