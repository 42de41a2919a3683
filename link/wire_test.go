package link

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-wisp/protocol"
	"github.com/moffa90/go-wisp/sim"
	"github.com/moffa90/go-wisp/tag"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    sim.Command
		wantErr bool
	}{
		{
			name: "write",
			line: "W B105",
			want: sim.Command{Kind: sim.CommandWrite, Desc: 0xB105},
		},
		{
			name: "lowercase",
			line: "w b007",
			want: sim.Command{Kind: sim.CommandWrite, Desc: 0xB007},
		},
		{
			name: "block write",
			line: "B 0302 2000 1234 6B00",
			want: sim.Command{Kind: sim.CommandBlockWrite, Frame: []protocol.Word{0x0302, 0x2000, 0x1234, 0x6B00}},
		},
		{
			name: "read",
			line: "  R  ",
			want: sim.Command{Kind: sim.CommandRead},
		},
		{name: "empty", line: "", wantErr: true},
		{name: "write without word", line: "W", wantErr: true},
		{name: "write two words", line: "W 1 2", wantErr: true},
		{name: "word too wide", line: "W 12345", wantErr: true},
		{name: "not hex", line: "B 0302 ZZZZ", wantErr: true},
		{name: "empty frame", line: "B", wantErr: true},
		{name: "read with args", line: "R 1", wantErr: true},
		{name: "unknown", line: "Q", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCommandRoundTrip(t *testing.T) {
	cmds := []sim.Command{
		{Kind: sim.CommandWrite, Desc: 0x00AB},
		{Kind: sim.CommandBlockWrite, Frame: []protocol.Word{0x0302, 0x2000, 0x1234, 0x6B00}},
		{Kind: sim.CommandRead},
	}

	assert.Equal(t, "W 00AB", FormatCommand(cmds[0]))
	assert.Equal(t, "B 0302 2000 1234 6B00", FormatCommand(cmds[1]))
	assert.Equal(t, "R", FormatCommand(cmds[2]))

	for _, cmd := range cmds {
		got, err := ParseCommand(FormatCommand(cmd))
		require.NoError(t, err)
		assert.Equal(t, cmd, got)
	}
}

func TestParseReply(t *testing.T) {
	epc, err := parseReply("R", "E B1050000")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xB1, 0x05, 0x00, 0x00}, epc)

	epc, err = parseReply("W B105", "K")
	require.NoError(t, err)
	assert.Nil(t, epc)

	_, err = parseReply("W B105", "H 4400 FDFE")
	var handoff *tag.HandoffError
	require.ErrorAs(t, err, &handoff)
	assert.Equal(t, tag.Handoff{Target: 0x4400, Vector: 0xFDFE}, handoff.Handoff)

	_, err = parseReply("R", "X boom")
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "boom", remote.Message)

	for _, bad := range []string{"E XYZ", "H 4400", "H nope FDFE", "?", ""} {
		_, err = parseReply("R", bad)
		var unexpected *UnexpectedReplyError
		assert.ErrorAs(t, err, &unexpected, bad)
	}
}

// chunkedReader returns its data in small pieces with empty reads between,
// like a serial port with a read timeout.
type chunkedReader struct {
	chunks []string
	i      int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.i >= 2*len(r.chunks) {
		return 0, io.EOF
	}
	defer func() { r.i++ }()
	if r.i%2 == 0 {
		return 0, nil
	}
	return copy(p, r.chunks[r.i/2]), nil
}

func TestLineReader(t *testing.T) {
	lr := newLineReader(&chunkedReader{chunks: []string{"W B1", "05\r\nR\n", "B 0", "302\n"}})
	ctx := context.Background()

	for _, want := range []string{"W B105", "R", "B 0302"} {
		line, err := lr.readLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := lr.readLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReaderTooLong(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"newline in same read", MaxLineLength + 10},
		{"newline reads later", MaxLineLength + 1000},
		{"several buffers later", 3 * MaxLineLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := newLineReader(strings.NewReader(strings.Repeat("A", tt.length) + "\nR\nW B105\n"))
			ctx := context.Background()

			_, err := lr.readLine(ctx)
			assert.ErrorIs(t, err, ErrLineTooLong)

			line, err := lr.readLine(ctx)
			require.NoError(t, err)
			assert.Equal(t, "R", line)

			line, err = lr.readLine(ctx)
			require.NoError(t, err)
			assert.Equal(t, "W B105", line)

			_, err = lr.readLine(ctx)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

// idleReader never has data, like a quiet serial line.
type idleReader struct{ reads int }

func (r *idleReader) Read(p []byte) (int, error) {
	r.reads++
	return 0, nil
}

func TestLineReaderCancelledWhileIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &idleReader{}
	lr := newLineReader(readerFunc(func(p []byte) (int, error) {
		if r.reads == 3 {
			cancel()
		}
		return r.Read(p)
	}))

	_, err := lr.readLine(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 4, r.reads)
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
