package protocol

// Checksum returns the byte-wise sum, modulo 256, of the high and low bytes of
// the first count words. It is used both to validate an incoming frame against
// its trailer and, by the reader, to build one.
//
// count must not exceed len(words).
func Checksum(words []Word, count int) byte {
	var sum byte
	for _, w := range words[:count] {
		sum += w.Hi()
		sum += w.Lo()
	}
	return sum
}

// AckChecksumSeed returns the starting value of an acknowledgment checksum:
// the frame metadata, before any written byte is added.
func AckChecksumSeed(wordCount, size uint8, address uint16) byte {
	sum := wordCount
	sum += size
	sum += byte(address >> 8) // address high byte
	sum += byte(address)      // address low byte
	return sum
}

// ComputeAck returns the acknowledgment a tag with writable memory produces
// after applying data at address.
func ComputeAck(address uint16, data []byte) Ack {
	wordCount := uint8(HeaderWords + (len(data)+1)/2)
	size := uint8(len(data))

	sum := AckChecksumSeed(wordCount, size, address)
	for _, b := range data {
		sum += b
	}

	return Ack{
		WordCount: wordCount,
		Size:      size,
		Address:   address,
		Checksum:  sum,
	}
}
