// Package programmer installs application images on a tag from the reader side.
//
// # Overview
//
// The tag's command core never retries and never reports a dropped frame: a
// frame with a bad checksum leaves the previous response in place. Recovery is
// the reader's job, and this package does it:
//   - Arming block-write mode
//   - Writing every image block and checking the acknowledgment
//   - Retransmitting frames whose acknowledgment never showed up
//   - Requesting the jump to the new application
//
// # Basic Usage
//
//	img, err := image.Parse("app.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	prog := programmer.New(t)
//	if err := prog.Program(context.Background(), img); err != nil {
//	    log.Fatal(err)
//	}
//
// The Tag is anything that can carry WRITE and BLOCKWRITE commands and read
// back the EPC: a real reader, link.Client or sim.Reader.
//
// # Acknowledgments
//
// A block-write acknowledgment carries a checksum over the bytes the tag read
// back after writing. When those differ from what was sent (the target is
// ROM, or the write did not stick) Program fails with AckMismatchError.
// WithVerifyAck(false) accepts any acknowledgment whose metadata matches.
//
// # Error Handling
//
//	err := prog.Program(ctx, img)
//	var mismatch *programmer.AckMismatchError
//	var stale *programmer.StaleAckError
//	switch {
//	case errors.As(err, &mismatch):
//	    fmt.Printf("read back 0x%02X\n", mismatch.Actual.Checksum)
//	case errors.As(err, &stale):
//	    fmt.Printf("tag lost at 0x%04X\n", stale.Address)
//	}
package programmer
