package tag

import "github.com/moffa90/go-wisp/protocol"

// UncheckedWrite stores size bytes from payload at address and returns the
// byte-wise sum of what it reads back after each store.
//
// Each payload word is swapped into memory order: its low byte goes to the
// lower address. For an odd size only the low byte of the last word is used.
//
// Nothing is range checked. address may point anywhere in the 16-bit space,
// code and the vector table included; installing a new application image
// over the air depends on exactly that. Addresses wrap at 0xFFFF. The caller
// must guarantee that payload holds at least (size+1)/2 words, and that the
// destination does not overlap code or data the current exchange still runs
// on. Cost is O(size).
func UncheckedWrite(mem Memory, address uint16, payload []protocol.Word, size uint8) byte {
	var sum byte
	for offset := 0; offset < int(size); offset++ {
		w := payload[offset>>1]

		b := w.Lo()
		if offset&1 == 1 {
			b = w.Hi()
		}

		addr := address + uint16(offset)
		mem.Store8(addr, b)

		// Read back: a store the memory refused shows up in the checksum.
		sum += mem.Load8(addr)
	}
	return sum
}
