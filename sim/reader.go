package sim

import (
	"context"

	"github.com/moffa90/go-wisp/internal/syncutil"
	"github.com/moffa90/go-wisp/protocol"
	"github.com/moffa90/go-wisp/tag"
)

// Reader is a reader in front of a simulated tag. Every command runs one
// dispatcher step, so the tag checks for a requested jump around each
// exchange exactly as its main loop does. Reader is safe for concurrent use.
type Reader struct {
	mu syncutil.Mutex

	mem     *tag.Flat
	engine  *Engine
	disp    *tag.Dispatcher
	handoff *tag.Handoff
}

// NewReader powers up a simulated tag and returns a reader talking to it.
func NewReader(opts ...Option) *Reader {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	flat := tag.NewFlat()
	for _, p := range cfg.Preload {
		flat.Load(p.Address, p.Data)
	}

	var mem tag.Memory = flat
	if len(cfg.ReadOnly) > 0 {
		mem = tag.NewProtected(flat, cfg.ReadOnly...)
	}

	bufs := tag.NewBuffers(cfg.BlockWriteCapacity, cfg.ResponseSize)
	copy(bufs.Response, cfg.EPC)

	disp := tag.New(bufs, mem, cfg.TagOptions...)
	engine := NewEngine(bufs)
	engine.Register(disp.Callbacks())

	return &Reader{
		mem:    flat,
		engine: engine,
		disp:   disp,
	}
}

// SendWrite delivers a single-word WRITE.
func (r *Reader) SendWrite(ctx context.Context, desc protocol.Word) error {
	return r.exchange(ctx, Command{Kind: CommandWrite, Desc: desc})
}

// SendBlockWrite delivers a BLOCKWRITE frame.
func (r *Reader) SendBlockWrite(ctx context.Context, frame []protocol.Word) error {
	return r.exchange(ctx, Command{Kind: CommandBlockWrite, Frame: frame})
}

// ReadResponse runs a READ exchange and returns the EPC.
func (r *Reader) ReadResponse(ctx context.Context) ([]byte, error) {
	if err := r.exchange(ctx, Command{Kind: CommandRead}); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Response(), nil
}

// Handoff reports where the tag transferred control, once it has.
func (r *Reader) Handoff() (tag.Handoff, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handoff == nil {
		return tag.Handoff{}, false
	}
	return *r.handoff, true
}

// Mode returns the tag's command state.
func (r *Reader) Mode() tag.Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disp.Mode()
}

// Memory returns n bytes of tag memory starting at addr.
func (r *Reader) Memory(addr uint16, n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mem.Bytes(addr, n)
}

// Last returns the tag's most recent handler outcome.
func (r *Reader) Last() (tag.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disp.Last()
}

// Exchanges returns how many RF exchanges the tag ran.
func (r *Reader) Exchanges() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Exchanges()
}

func (r *Reader) exchange(ctx context.Context, cmd Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handoff != nil {
		return &tag.HandoffError{Handoff: *r.handoff}
	}

	r.engine.Enqueue(cmd)
	if h, ok := r.disp.Step(r.engine); ok {
		r.handoff = &h
	}
	return nil
}
