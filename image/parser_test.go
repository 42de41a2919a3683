package image

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReaderTITXT(t *testing.T) {
	input := "@4400\n" +
		"31 40 00 24\n" +
		"B0 13\n" +
		"\n" +
		"@FDFE\n" +
		"00 44\n" +
		"q\n"

	img, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, FormatTITXT, img.Format)
	assert.Equal(t, []*Segment{
		{Address: 0x4400, Data: []byte{0x31, 0x40, 0x00, 0x24, 0xB0, 0x13}},
		{Address: 0xFDFE, Data: []byte{0x00, 0x44}},
	}, img.Segments)
	assert.Equal(t, 8, img.Size())
}

func TestParseReaderIntelHex(t *testing.T) {
	input := ":020000040000FA\n" +
		":0400000001020304F2\n" +
		":0400040005060708DA\n" +
		":02440000AABB55\n" +
		":00000001FF\n"

	img, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, FormatIntelHex, img.Format)
	assert.Equal(t, []*Segment{
		{Address: 0x0000, Data: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{Address: 0x4400, Data: []byte{0xAA, 0xBB}},
	}, img.Segments)
}

func TestParseReaderIntelHexLowercaseAndBlankLines(t *testing.T) {
	input := ":0400000001020304f2\n\n:02440000aabb55\n\n:00000001ff\n"

	img, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []*Segment{
		{Address: 0x0000, Data: []byte{1, 2, 3, 4}},
		{Address: 0x4400, Data: []byte{0xAA, 0xBB}},
	}, img.Segments)
}

func TestParseReaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"empty file", "", "empty file"},
		{"unknown format", "hello\n", "unrecognized image format"},
		{"missing q", "@4400\n01 02\n", "missing 'q' terminator"},
		{"no data", "@4400\nq\n", "no data found"},
		{"bad address", "@XYZ\n01\nq\n", "invalid segment address"},
		{"address out of range", "@10000\n01\nq\n", "beyond 16-bit address space"},
		{"bad byte", "@4400\n0102\nq\n", "invalid data byte"},
		{"bad hex", "@4400\nZZ\nq\n", "invalid hex data"},
		{"segment overflow", "@FFFF\n01 02\nq\n", "past the end of the address space"},
		{"missing eof", ":0400000001020304F2\n", "missing end-of-file record"},
		{"bad checksum", ":0400000001020304F3\n:00000001FF\n", "intel hex"},
		{"length mismatch", ":0500000001020304F2\n:00000001FF\n", "intel hex"},
		{"short record", ":0000\n:00000001FF\n", "intel hex"},
		{"upper address", ":020000040001F9\n:0100000001FE\n:00000001FF\n", "past the end of the address space"},
		{"unknown type", ":00000007F9\n:00000001FF\n", "intel hex"},
		{"record overflow", ":02FFFF00AABB9B\n:00000001FF\n", "past the end of the address space"},
		{"data after eof", ":00000001FF\n:0400000001020304F2\n", "data after end-of-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseReaderErrorsCarryLineNumbers(t *testing.T) {
	_, err := ParseReader(strings.NewReader("@4400\n01\nZZ\nq\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.txt")
	require.NoError(t, os.WriteFile(path, []byte("@4400\n01 02\nq\n"), 0o600))

	img, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Size())

	_, err = Parse(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to open file")
}
