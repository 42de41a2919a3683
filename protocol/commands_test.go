package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleWordCommands(t *testing.T) {
	assert.Equal(t, byte(0xB1), BuildEnterWriteModeCmd().Hi())
	assert.Equal(t, byte(0x05), BuildEnterWriteModeCmd().Lo())
	assert.Equal(t, byte(0xB0), BuildJumpCmd().Hi())
	assert.Equal(t, byte(0x07), BuildJumpCmd().Lo())
}

func TestBuildBlockWriteFrame(t *testing.T) {
	tests := []struct {
		name    string
		address uint16
		data    []byte
		want    []Word
	}{
		{
			name:    "one word",
			address: 0x2000,
			data:    []byte{0x34, 0x12},
			// 3+2+0x20+0x00+0x12+0x34 = 0x6B
			want: []Word{0x0302, 0x2000, 0x1234, 0x6B00},
		},
		{
			name:    "odd size pads the high half",
			address: 0x4400,
			data:    []byte{0xAA, 0xBB, 0xCC},
			// 4+3+0x44+0xBB+0xAA+0xCC = 0x27C
			want: []Word{0x0403, 0x4400, 0xBBAA, 0x00CC, 0x7C00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildBlockWriteFrame(tt.address, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, frame)

			h, err := ParseHeader(frame)
			require.NoError(t, err)
			assert.Equal(t, tt.address, h.Address)
			assert.Equal(t, uint8(len(tt.data)), h.Size)
			assert.Equal(t, frame[h.WordCount].Hi(), Checksum(frame, int(h.WordCount)))
			assert.Equal(t, len(frame), h.Span())
		})
	}
}

func TestBuildBlockWriteFrameErrors(t *testing.T) {
	_, err := BuildBlockWriteFrame(0x4400, nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = BuildBlockWriteFrame(0x4400, make([]byte, MaxSize+1))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	frame, err := BuildBlockWriteFrame(0x4400, make([]byte, MaxSize))
	require.NoError(t, err)
	assert.Len(t, frame, HeaderWords+128+TrailerWords)
}

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader([]Word{0x0402, 0x2000})
	require.NoError(t, err)
	assert.Equal(t, Header{WordCount: 4, Size: 2, Address: 0x2000}, h)
	assert.Equal(t, 1, h.PayloadWords())
	assert.Equal(t, 5, h.Span())

	_, err = ParseHeader([]Word{0x0402})
	assert.ErrorIs(t, err, ErrFrameTruncated)
}
