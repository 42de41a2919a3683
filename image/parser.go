package image

import (
	"bufio"
	"bytes"
	"cmp"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/marcinbor85/gohex"
)

// Constants for image file parsing.
const (
	// AddressSpace is the size of the tag's address space in bytes
	AddressSpace = 1 << 16

	// DefaultSegmentCapacity is the initial capacity of the segment slice
	DefaultSegmentCapacity = 8
)

// intelHexEOF is the end-of-file record.
const intelHexEOF = ":00000001FF"

// Parse parses an image file from the given path. The format is detected from
// the first non-empty line.
//
// Example:
//
//	img, err := image.Parse("app.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes in %d segments\n", img.Size(), len(img.Segments))
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses a TI-TXT or Intel HEX image from any io.Reader.
func ParseReader(r io.Reader) (_ *Image, err error) {
	defer deferWrap(&err)

	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	first := -1
	for i, line := range lines {
		if line != "" {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("empty file")
	}

	var img *Image
	switch lines[first][0] {
	case '@':
		img, err = parseTITXT(lines)
	case ':':
		img, err = parseIntelHex(lines)
	default:
		return nil, fmt.Errorf("line %d: unrecognized image format", first+1)
	}
	if err != nil {
		return nil, err
	}

	if img.Size() == 0 {
		return nil, fmt.Errorf("no data found in file")
	}

	return img, nil
}

// readLines returns the input's lines with surrounding space trimmed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return lines, nil
}

func parseTITXT(lines []string) (*Image, error) {
	p := &parser{
		img: &Image{
			Format:   FormatTITXT,
			Segments: make([]*Segment, 0, DefaultSegmentCapacity),
		},
	}

	for i, line := range lines {
		// Skip empty lines and anything after the terminator
		if line == "" || p.done {
			continue
		}
		if err := p.parseTITXTLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	if !p.done {
		return nil, fmt.Errorf("missing 'q' terminator")
	}

	return p.img, nil
}

// parseIntelHex decodes the records with gohex and maps its data segments
// onto the 16-bit address space. Contiguous segments are merged.
func parseIntelHex(lines []string) (*Image, error) {
	var records bytes.Buffer
	eofLine := 0

	for i, line := range lines {
		if line == "" {
			continue
		}
		if eofLine > 0 {
			return nil, fmt.Errorf("line %d: data after end-of-file record", i+1)
		}
		if strings.EqualFold(line, intelHexEOF) {
			eofLine = i + 1
		}
		records.WriteString(line)
		records.WriteByte('\n')
	}

	if eofLine == 0 {
		return nil, fmt.Errorf("missing end-of-file record")
	}

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(&records); err != nil {
		return nil, fmt.Errorf("intel hex: %w", err)
	}

	segments := mem.GetDataSegments()
	slices.SortFunc(segments, func(a, b gohex.DataSegment) int {
		return cmp.Compare(a.Address, b.Address)
	})

	img := &Image{
		Format:   FormatIntelHex,
		Segments: make([]*Segment, 0, len(segments)),
	}

	var current *Segment
	for _, seg := range segments {
		if uint64(seg.Address)+uint64(len(seg.Data)) > AddressSpace {
			return nil, fmt.Errorf("segment at 0x%X runs past the end of the address space", seg.Address)
		}
		if len(seg.Data) == 0 {
			continue
		}

		addr := uint16(seg.Address)
		if current != nil && current.End() == int(addr) {
			current.Data = append(current.Data, seg.Data...)
			continue
		}

		current = &Segment{Address: addr, Data: append([]byte(nil), seg.Data...)}
		img.Segments = append(img.Segments, current)
	}

	return img, nil
}

type parser struct {
	img     *Image
	current *Segment
	done    bool
}

// parseTITXTLine parses one TI-TXT line.
//
// Format:
//
//	@4400          start a segment at 0x4400
//	31 40 00 24    data bytes, hex, space separated
//	q              end of file
func (p *parser) parseTITXTLine(line string) error {
	switch {
	case line[0] == '@':
		addr, err := strconv.ParseUint(line[1:], 16, 32)
		if err != nil {
			return fmt.Errorf("invalid segment address %q", line)
		}
		if addr >= AddressSpace {
			return fmt.Errorf("segment address 0x%X beyond 16-bit address space", addr)
		}
		p.current = &Segment{Address: uint16(addr)}
		p.img.Segments = append(p.img.Segments, p.current)
		return nil

	case line == "q" || line == "Q":
		p.done = true
		return nil
	}

	if p.current == nil {
		return fmt.Errorf("data before first segment address")
	}

	for _, field := range strings.Fields(line) {
		if len(field) != 2 {
			return fmt.Errorf("invalid data byte %q", field)
		}
		b, err := hex.DecodeString(field)
		if err != nil {
			return fmt.Errorf("invalid hex data: %w", err)
		}
		p.current.Data = append(p.current.Data, b[0])
	}

	if p.current.End() > AddressSpace {
		return fmt.Errorf("segment at 0x%04X runs past the end of the address space", p.current.Address)
	}

	return nil
}
