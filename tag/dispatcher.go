package tag

import (
	"context"
	"fmt"

	"github.com/moffa90/go-wisp/protocol"
)

// Buffers are the engine-owned exchange buffers. The engine fills Write or
// BlockWrite before invoking a callback and transmits Response after it
// returns. The dispatcher keeps no reference into them beyond a callback.
type Buffers struct {
	// Write holds the descriptor word of a WRITE command
	Write []protocol.Word

	// BlockWrite holds a block-write frame; its length is the capacity
	BlockWrite []protocol.Word

	// Response is the EPC field sent back to the reader
	Response []byte
}

// NewBuffers allocates buffers with the given block-write capacity (in words)
// and response size (in bytes). The response starts zeroed.
func NewBuffers(blockWriteCapacity, responseSize int) *Buffers {
	return &Buffers{
		Write:      make([]protocol.Word, 1),
		BlockWrite: make([]protocol.Word, blockWriteCapacity),
		Response:   make([]byte, responseSize),
	}
}

// Engine is the RF engine driving the application. DoRFID runs one exchange
// with the reader and invokes the registered callbacks synchronously.
type Engine interface {
	DoRFID()
}

// Callbacks is the table an engine invokes, one entry per command class.
type Callbacks struct {
	OnAck        func()
	OnRead       func()
	OnWrite      func()
	OnBlockWrite func()
}

// Handoff describes the one-way control transfer that ends the application.
// The dispatcher only describes it; whoever runs the dispatcher performs it
// and never comes back.
type Handoff struct {
	// Vector is the slot the target was read from
	Vector uint16

	// Target is the next application's entry point
	Target uint16
}

func (h Handoff) String() string {
	return fmt.Sprintf("handoff to 0x%04X (vector 0x%04X)", h.Target, h.Vector)
}

// Dispatcher routes engine callbacks to the command handlers, turns their
// outcomes into response bytes and owns the jump check.
//
// Dispatcher is not safe for concurrent use. It runs inside the engine's
// exchange window and must not block; every callback does O(frame) work.
type Dispatcher struct {
	bufs   *Buffers
	mem    Memory
	config Config

	mode    Mode
	last    Outcome
	lastErr error
	handoff *Handoff
}

// New creates a Dispatcher over the engine's buffers and the tag's memory.
func New(bufs *Buffers, mem Memory, opts ...Option) *Dispatcher {
	if bufs == nil {
		panic("buffers cannot be nil")
	}
	if mem == nil {
		panic("memory cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Dispatcher{
		bufs:   bufs,
		mem:    mem,
		config: cfg,
	}
}

// Callbacks returns the dispatcher's callback table for registration with an engine.
func (d *Dispatcher) Callbacks() Callbacks {
	return Callbacks{
		OnAck:        d.OnAck,
		OnRead:       d.OnRead,
		OnWrite:      d.OnWrite,
		OnBlockWrite: d.OnBlockWrite,
	}
}

// Mode returns the current command state.
func (d *Dispatcher) Mode() Mode { return d.mode }

// Last returns the most recent handler outcome and, for a dropped frame, why
// it was dropped.
func (d *Dispatcher) Last() (Outcome, error) { return d.last, d.lastErr }

// OnAck is invoked after a successful ACK reply. Nothing to do.
func (d *Dispatcher) OnAck() {}

// OnRead is invoked after a READ command. Nothing to do.
func (d *Dispatcher) OnRead() {}

// OnWrite handles a single-word WRITE command.
func (d *Dispatcher) OnWrite() {
	if !d.accepting("write") {
		return
	}
	d.apply(HandleWrite(d.bufs.Write[0]), nil)
}

// OnBlockWrite handles a BLOCKWRITE command.
func (d *Dispatcher) OnBlockWrite() {
	if !d.accepting("block write") {
		return
	}
	d.apply(HandleBlockWrite(d.bufs.BlockWrite, d.mem))
}

// Step checks for a requested jump, runs one engine exchange if there is
// none, and checks again. It reports the handoff once the application must
// end; from then on the engine is never invoked again.
func (d *Dispatcher) Step(engine Engine) (Handoff, bool) {
	if h, ok := d.pendingHandoff(); ok {
		return h, true
	}

	engine.DoRFID()

	return d.pendingHandoff()
}

// Run steps the engine until the application hands off. On the tag this never
// returns any other way; ctx exists for hosts running a simulated engine.
func (d *Dispatcher) Run(ctx context.Context, engine Engine) (Handoff, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Handoff{}, fmt.Errorf("cancelled: %w", err)
		}

		if h, ok := d.Step(engine); ok {
			return h, nil
		}
	}
}

// accepting reports whether callbacks may still change state.
func (d *Dispatcher) accepting(command string) bool {
	if d.mode != ModeJumpRequested {
		return true
	}
	d.logDebug("command ignored after jump request", "command", command)
	return false
}

func (d *Dispatcher) apply(o Outcome, err error) {
	d.last, d.lastErr = o, err

	if err != nil {
		d.logDebug("block write dropped", "reason", err.Error())
	}

	o.Encode(d.bufs.Response)

	if next := d.mode.next(o); next != d.mode {
		d.logInfo("mode change", "from", d.mode.String(), "to", next.String())
		d.mode = next
	}
}

func (d *Dispatcher) pendingHandoff() (Handoff, bool) {
	if d.handoff != nil {
		return *d.handoff, true
	}
	if d.mode != ModeJumpRequested {
		return Handoff{}, false
	}

	h := Handoff{
		Vector: d.config.JumpVector,
		Target: Load16(d.mem, d.config.JumpVector),
	}
	d.handoff = &h

	d.logInfo("handing off", "vector", fmt.Sprintf("0x%04X", h.Vector), "target", fmt.Sprintf("0x%04X", h.Target))
	return h, true
}

// logDebug logs a debug message if a logger is configured.
func (d *Dispatcher) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Dispatcher) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}
