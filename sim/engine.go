package sim

import (
	"fmt"

	"github.com/moffa90/go-wisp/protocol"
	"github.com/moffa90/go-wisp/tag"
)

// CommandKind identifies a reader command class.
type CommandKind int

const (
	// CommandWrite is a single-word WRITE
	CommandWrite CommandKind = iota

	// CommandBlockWrite is a BLOCKWRITE frame
	CommandBlockWrite

	// CommandRead is a READ of the tag's memory bank
	CommandRead
)

func (k CommandKind) String() string {
	switch k {
	case CommandWrite:
		return "write"
	case CommandBlockWrite:
		return "block-write"
	case CommandRead:
		return "read"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one reader command waiting for an exchange.
type Command struct {
	Kind CommandKind

	// Desc is the WRITE descriptor
	Desc protocol.Word

	// Frame is the BLOCKWRITE frame
	Frame []protocol.Word
}

// Engine is an in-process RF engine. Each DoRFID delivers one queued command
// into the shared buffers and invokes the matching callback, the way the RF
// layer does after decoding a reader command. With nothing queued the
// exchange is a bare inventory round and only the ACK callback runs.
//
// Frames longer than the block-write buffer are cut to its capacity. Words
// past a short frame keep whatever the previous frame left there.
type Engine struct {
	bufs      *tag.Buffers
	callbacks tag.Callbacks
	queue     []Command
	exchanges int
}

// NewEngine returns an engine delivering into bufs.
func NewEngine(bufs *tag.Buffers) *Engine {
	if bufs == nil {
		panic("buffers cannot be nil")
	}
	return &Engine{bufs: bufs}
}

// Register installs the application's callback table.
func (e *Engine) Register(cb tag.Callbacks) {
	e.callbacks = cb
}

// Enqueue appends commands for upcoming exchanges.
func (e *Engine) Enqueue(cmds ...Command) {
	e.queue = append(e.queue, cmds...)
}

// Pending returns the number of queued commands.
func (e *Engine) Pending() int { return len(e.queue) }

// Exchanges returns how many exchanges have run.
func (e *Engine) Exchanges() int { return e.exchanges }

// Response returns a copy of the EPC the tag currently backscatters.
func (e *Engine) Response() []byte {
	return append([]byte(nil), e.bufs.Response...)
}

// DoRFID runs one exchange.
func (e *Engine) DoRFID() {
	e.exchanges++

	if len(e.queue) == 0 {
		call(e.callbacks.OnAck)
		return
	}

	cmd := e.queue[0]
	e.queue = e.queue[1:]

	switch cmd.Kind {
	case CommandWrite:
		e.bufs.Write[0] = cmd.Desc
		call(e.callbacks.OnWrite)
	case CommandBlockWrite:
		copy(e.bufs.BlockWrite, cmd.Frame)
		call(e.callbacks.OnBlockWrite)
	case CommandRead:
		call(e.callbacks.OnRead)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
