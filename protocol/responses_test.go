package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		epc  []byte
		want Response
	}{
		{
			name: "write armed",
			epc:  []byte{0xB1, 0x05, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			want: Response{Kind: ResponseWriteArmed},
		},
		{
			name: "jump",
			epc:  []byte{0xB0, 0x07},
			want: Response{Kind: ResponseJump},
		},
		{
			name: "ack",
			epc:  []byte{4, 2, 0x20, 0x00, 0x6C, 0, 0, 0, 0, 0, 0, 0},
			want: Response{Kind: ResponseAck, Ack: Ack{WordCount: 4, Size: 2, Address: 0x2000, Checksum: 0x6C}},
		},
		{
			name: "fresh tag reads as an empty ack",
			epc:  make([]byte, ResponseSize),
			want: Response{Kind: ResponseAck},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse(tt.epc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResponseSentinelShadowsAck(t *testing.T) {
	// header bytes B1 05 read as the write-mode echo, not an ack
	resp, err := ParseResponse([]byte{0xB1, 0x05, 0x44, 0x00, 0x12})
	require.NoError(t, err)
	assert.Equal(t, ResponseWriteArmed, resp.Kind)

	// the largest frame's header stays clear of both sentinels
	frame, err := BuildBlockWriteFrame(0x4400, make([]byte, MaxSize))
	require.NoError(t, err)
	header := frame[0]
	assert.Equal(t, byte(130), header.Hi())
}

func TestParseResponseShort(t *testing.T) {
	_, err := ParseResponse([]byte{0xB1})
	assert.ErrorIs(t, err, ErrShortResponse)

	_, err = ParseResponse([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrShortResponse)
}

func TestResponseKindString(t *testing.T) {
	assert.Equal(t, "ack", ResponseAck.String())
	assert.Equal(t, "write-armed", ResponseWriteArmed.String())
	assert.Equal(t, "jump", ResponseJump.String())
	assert.Equal(t, "ResponseKind(9)", ResponseKind(9).String())
}

func TestErrorMessages(t *testing.T) {
	err := &ChecksumError{Expected: 0x6D, Calculated: 0x6C}
	assert.Contains(t, err.Error(), "0x6D")
	assert.Contains(t, err.Error(), "0x6C")
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	ferr := &FrameError{WordCount: 40, Size: 2, Capacity: 32}
	assert.Contains(t, ferr.Error(), "32 words")
	assert.ErrorIs(t, ferr, ErrFrameTruncated)
}
