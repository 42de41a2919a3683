// Package protocol implements the command frames a reader uses to program a
// WISP-class passive tag over the air.
//
// # Protocol Overview
//
// Two reader commands reach the application:
//
//	WRITE:       [DESCRIPTOR]
//	BLOCKWRITE:  [WORD_COUNT|SIZE][ADDRESS][PAYLOAD...][CHECKSUM|--]
//
// Where:
//   - DESCRIPTOR 0xB105 arms block-write mode, anything else requests a jump
//     to the next application (answered with 0xB007)
//   - WORD_COUNT is the number of checksum-protected words (header, address
//     and payload) and the index of the trailer word
//   - SIZE is the number of bytes to write at ADDRESS
//   - PAYLOAD words carry two bytes each, lower address in the low half
//   - CHECKSUM is the byte-wise sum, modulo 256, of the protected words
//
// The tag answers through its 12-byte response (EPC) field:
//
//	write mode:  [0xB1][0x05]...
//	jump:        [0xB0][0x07]...
//	block write: [WORD_COUNT][SIZE][ADDR_H][ADDR_L][ACK_CHECKSUM]...
//
// A frame with a bad checksum is dropped without touching the response, so
// the reader keeps seeing the previous acknowledgment and retransmits.
//
// # Command Builders
//
//	w := protocol.BuildEnterWriteModeCmd()
//	frame, err := protocol.BuildBlockWriteFrame(0x4400, image[:58])
//	jump := protocol.BuildJumpCmd()
//
// # Response Parsers
//
//	resp, err := protocol.ParseResponse(epc)
//	if resp.Kind == protocol.ResponseAck && resp.Ack == protocol.ComputeAck(addr, data) {
//	    // block landed
//	}
package protocol
