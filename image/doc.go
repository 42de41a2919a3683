// Package image loads application images for over-the-air installation.
//
// # Supported Formats
//
// TI-TXT, as written by MSP430 toolchains:
//
//	@4400
//	31 40 00 24 B0 13 0A 44
//	@FDFE
//	00 44
//	q
//
// Intel HEX, limited to the 16-bit address space:
//
//	:0400000001020304F2
//	:00000001FF
//
// Records are decoded by gohex. Data landing above 64 KiB is rejected. Start
// address records are ignored; the next application's entry point is whatever the
// image writes into the vector slot.
//
// # Usage
//
//	img, err := image.Parse("app.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, b := range img.Blocks(protocol.DefaultMaxPayloadSize) {
//	    fmt.Printf("0x%04X: %d bytes\n", b.Address, len(b.Data))
//	}
//
// # Error Handling
//
// Parse returns errors with line numbers for bad addresses, bad hex,
// record checksum mismatches, missing terminators and data that would run
// past the top of the address space.
package image
