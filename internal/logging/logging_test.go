package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moffa90/go-wisp/link"
	"github.com/moffa90/go-wisp/programmer"
	"github.com/moffa90/go-wisp/tag"
)

var (
	_ tag.Logger        = (*Logger)(nil)
	_ programmer.Logger = (*Logger)(nil)
	_ link.Logger       = (*Logger)(nil)
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, false)

	l.Debug("hidden")
	l.Info("shown", "block", 3)
	l.Error("failed", "address", "0x4400")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown block=3")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "address=0x4400")
}

func TestDebugAndWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, true).With("side", "reader")

	l.Debug("tx", Hex("frame", []byte{0xb1, 0x05}))

	assert.Contains(t, buf.String(), "level=DEBUG msg=tx side=reader frame=B105")
}

func TestNewDefault(t *testing.T) {
	assert.NotPanics(t, func() { New(nil).Info("ok") })
}
