package tag

import "github.com/moffa90/go-wisp/protocol"

// HandleWrite interprets the descriptor of a single-word WRITE command.
// The enter-write-mode sentinel arms block-write mode; every other value,
// malformed or unrelated ones included, requests the jump.
func HandleWrite(desc protocol.Word) Outcome {
	if desc == protocol.EnterWriteMode {
		return Outcome{Kind: KindWriteArmed}
	}
	return Outcome{Kind: KindJumpRequested}
}

// HandleBlockWrite validates the frame in buf and applies it to mem.
//
// buf is the engine's whole block-write buffer; its length is the capacity.
// A frame whose trailer does not match, or whose header reaches past the
// buffer, yields a KindDropped outcome with the reason as error: memory is not
// touched and the response must stay as it was, so the reader retransmits.
//
// On success the write goes through UncheckedWrite, so every precondition
// documented there is the sender's: the checksum proves the frame arrived
// intact, not that the target address is sane.
func HandleBlockWrite(buf []protocol.Word, mem Memory) (Outcome, error) {
	h, err := protocol.ParseHeader(buf)
	if err != nil {
		return Outcome{Kind: KindDropped}, err
	}

	if h.Span() > len(buf) {
		return Outcome{Kind: KindDropped}, &protocol.FrameError{
			WordCount: h.WordCount,
			Size:      h.Size,
			Capacity:  len(buf),
		}
	}

	expected := buf[h.WordCount].Hi()
	if calc := protocol.Checksum(buf, int(h.WordCount)); calc != expected {
		return Outcome{Kind: KindDropped}, &protocol.ChecksumError{
			Expected:   expected,
			Calculated: calc,
		}
	}

	sum := protocol.AckChecksumSeed(h.WordCount, h.Size, h.Address)
	sum += UncheckedWrite(mem, h.Address, buf[protocol.HeaderWords:], h.Size)

	return Outcome{
		Kind: KindAck,
		Ack: protocol.Ack{
			WordCount: h.WordCount,
			Size:      h.Size,
			Address:   h.Address,
			Checksum:  sum,
		},
	}, nil
}
