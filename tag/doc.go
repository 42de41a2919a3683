// Package tag is the command core of the tag application: it validates the
// frames an RF engine delivers into shared buffers, applies block writes to
// memory and leaves the answer in the response field.
//
// # Callback Contract
//
// An Engine owns the buffers. Before invoking a callback it fills the write
// or block-write buffer; after the callback returns it transmits the response
// buffer at the next opportunity. The Dispatcher mutates only the response
// buffer and memory, synchronously, and keeps nothing across calls except its
// Mode.
//
//	bufs := tag.NewBuffers(protocol.DefaultBlockWriteCapacity, protocol.ResponseSize)
//	d := tag.New(bufs, mem)
//	engine.Register(d.Callbacks())
//	handoff, _ := d.Run(ctx, engine)
//	// transfer control to handoff.Target; nothing here runs again
//
// # Latency Budget
//
// The tag lives for roughly 14 ms per power-up and the block-write callback
// runs inside the reply window of that exchange. No callback blocks, sleeps
// or retries: checksum validation and the memory write are each O(size), and
// a dropped frame costs only the checksum. Recovery from a dropped frame or a
// missed deadline is the reader's retransmission, never the tag's.
//
// # Unchecked Writes
//
// A checksum-valid block write lands wherever its address says, including
// code and the vector table. That is how a new application is installed, so
// there is deliberately no bounds check; see UncheckedWrite.
package tag
