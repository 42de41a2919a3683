package tag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-wisp/protocol"
)

// scriptedEngine delivers one scripted exchange per DoRFID.
type scriptedEngine struct {
	bufs     *Buffers
	cb       Callbacks
	script   []func(*scriptedEngine)
	exchange int
}

func (e *scriptedEngine) DoRFID() {
	if e.exchange < len(e.script) {
		e.script[e.exchange](e)
	} else {
		e.cb.OnAck()
	}
	e.exchange++
}

func write(desc protocol.Word) func(*scriptedEngine) {
	return func(e *scriptedEngine) {
		e.bufs.Write[0] = desc
		e.cb.OnWrite()
	}
}

func blockWrite(frame ...protocol.Word) func(*scriptedEngine) {
	return func(e *scriptedEngine) {
		copy(e.bufs.BlockWrite, frame)
		e.cb.OnBlockWrite()
	}
}

func read() func(*scriptedEngine) {
	return func(e *scriptedEngine) {
		e.cb.OnRead()
	}
}

// MockLogger records messages.
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) { l.debugMsgs = append(l.debugMsgs, msg) }
func (l *MockLogger) Info(msg string, kv ...interface{})  { l.infoMsgs = append(l.infoMsgs, msg) }
func (l *MockLogger) Error(msg string, kv ...interface{}) { l.errorMsgs = append(l.errorMsgs, msg) }

func newTestTag(t *testing.T, script ...func(*scriptedEngine)) (*Dispatcher, *scriptedEngine, *Flat) {
	t.Helper()

	mem := NewFlat()
	mem.Load(protocol.DefaultJumpVector, []byte{0x00, 0x44})

	bufs := NewBuffers(protocol.DefaultBlockWriteCapacity, protocol.ResponseSize)
	d := New(bufs, mem)

	return d, &scriptedEngine{bufs: bufs, cb: d.Callbacks(), script: script}, mem
}

func TestNewPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { New(nil, NewFlat()) })
	assert.Panics(t, func() { New(NewBuffers(4, 12), nil) })
}

func TestDispatcherEnterWriteMode(t *testing.T) {
	d, engine, _ := newTestTag(t, write(protocol.EnterWriteMode))

	_, done := d.Step(engine)
	require.False(t, done)

	assert.Equal(t, ModeWriteArmed, d.Mode())
	assert.Equal(t, []byte{0xB1, 0x05, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, engine.bufs.Response)
}

func TestDispatcherBlockWriteAck(t *testing.T) {
	d, engine, mem := newTestTag(t,
		write(protocol.EnterWriteMode),
		blockWrite(0x0402, 0x2000, 0x1234, 0x0000, 0x6C00),
	)

	for i := 0; i < 2; i++ {
		_, done := d.Step(engine)
		require.False(t, done)
	}

	assert.Equal(t, ModeWriteArmed, d.Mode())
	assert.Equal(t, []byte{0x34, 0x12}, mem.Bytes(0x2000, 2))
	assert.Equal(t, []byte{4, 2, 0x20, 0x00, 0x6C, 0, 0, 0, 0, 0, 0, 0}, engine.bufs.Response)

	out, err := d.Last()
	assert.NoError(t, err)
	assert.Equal(t, KindAck, out.Kind)
}

func TestDispatcherDroppedFrameLeavesResponse(t *testing.T) {
	d, engine, mem := newTestTag(t,
		write(protocol.EnterWriteMode),
		blockWrite(0x0402, 0x2000, 0x1234, 0x0000, 0x6D00),
	)
	logger := &MockLogger{}
	d.config.Logger = logger

	d.Step(engine)
	before := append([]byte(nil), engine.bufs.Response...)
	d.Step(engine)

	assert.Equal(t, before, engine.bufs.Response)
	assert.Equal(t, []byte{0x00, 0x00}, mem.Bytes(0x2000, 2))
	assert.Equal(t, ModeWriteArmed, d.Mode())
	assert.Contains(t, logger.debugMsgs, "block write dropped")

	out, err := d.Last()
	assert.Equal(t, KindDropped, out.Kind)
	assert.ErrorIs(t, err, protocol.ErrChecksumMismatch)
}

func TestDispatcherBlockWriteWithoutArming(t *testing.T) {
	d, engine, mem := newTestTag(t, blockWrite(0x0402, 0x2000, 0x1234, 0x0000, 0x6C00))

	d.Step(engine)

	assert.Equal(t, ModeIdle, d.Mode())
	assert.Equal(t, []byte{0x34, 0x12}, mem.Bytes(0x2000, 2))
}

func TestDispatcherJumpHandsOff(t *testing.T) {
	d, engine, _ := newTestTag(t,
		write(protocol.EnterWriteMode),
		read(),
		write(0x1234),
		write(protocol.EnterWriteMode),
	)

	var (
		h    Handoff
		done bool
	)
	for i := 0; i < 3 && !done; i++ {
		h, done = d.Step(engine)
	}

	require.True(t, done)
	assert.Equal(t, Handoff{Vector: protocol.DefaultJumpVector, Target: 0x4400}, h)
	assert.Equal(t, ModeJumpRequested, d.Mode())
	assert.Equal(t, []byte{0xB0, 0x07}, engine.bufs.Response[:2])

	// The handoff is terminal: the engine never runs again.
	again, done := d.Step(engine)
	assert.True(t, done)
	assert.Equal(t, h, again)
	assert.Equal(t, 3, engine.exchange)
}

func TestDispatcherIgnoresCommandsAfterJump(t *testing.T) {
	d, engine, _ := newTestTag(t)

	engine.bufs.Write[0] = 0x0000
	d.OnWrite()
	engine.bufs.Write[0] = protocol.EnterWriteMode
	d.OnWrite()
	copy(engine.bufs.BlockWrite, []protocol.Word{0x0402, 0x2000, 0x1234, 0x0000, 0x6C00})
	d.OnBlockWrite()

	assert.Equal(t, ModeJumpRequested, d.Mode())
	assert.Equal(t, []byte{0xB0, 0x07, 0x00}, engine.bufs.Response[:3])
}

func TestDispatcherRun(t *testing.T) {
	d, engine, _ := newTestTag(t,
		write(protocol.EnterWriteMode),
		blockWrite(0x0402, 0xFDFE, 0x6000, 0x0000, 0x6100),
		write(protocol.JumpRequest),
	)
	logger := &MockLogger{}
	d.config.Logger = logger

	h, err := d.Run(context.Background(), engine)
	require.NoError(t, err)

	// The block write replaced the vector before the jump.
	assert.Equal(t, uint16(0x6000), h.Target)
	assert.Contains(t, logger.infoMsgs, "handing off")
	assert.Contains(t, h.String(), "0x6000")
}

func TestDispatcherRunCancelled(t *testing.T) {
	d, engine, _ := newTestTag(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Run(ctx, engine)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithJumpVector(t *testing.T) {
	mem := NewFlat()
	mem.Load(0xFFFE, []byte{0x34, 0x12})
	bufs := NewBuffers(protocol.DefaultBlockWriteCapacity, protocol.ResponseSize)

	d := New(bufs, mem, WithJumpVector(0xFFFE), WithLogger(&MockLogger{}))
	engine := &scriptedEngine{bufs: bufs, cb: d.Callbacks(), script: []func(*scriptedEngine){write(0x0000)}}

	h, done := d.Step(engine)
	require.True(t, done)
	assert.Equal(t, Handoff{Vector: 0xFFFE, Target: 0x1234}, h)
}

func TestHandoffError(t *testing.T) {
	err := &HandoffError{Handoff: Handoff{Vector: 0xFDFE, Target: 0x4400}}
	assert.ErrorIs(t, err, ErrHandedOff)
	assert.Contains(t, err.Error(), "0x4400")
}
