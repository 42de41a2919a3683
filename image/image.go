package image

import "fmt"

// Format identifies the text format an image was parsed from.
type Format int

const (
	// FormatTITXT is the TI-TXT format produced by MSP430 toolchains
	FormatTITXT Format = iota

	// FormatIntelHex is Intel HEX restricted to the 16-bit address space
	FormatIntelHex
)

func (f Format) String() string {
	switch f {
	case FormatTITXT:
		return "ti-txt"
	case FormatIntelHex:
		return "intel-hex"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Image is a parsed application image.
type Image struct {
	// Format is the file format the image came from
	Format Format

	// Segments are the contiguous data runs, in file order
	Segments []*Segment
}

// Segment is a run of bytes to be placed at consecutive addresses.
type Segment struct {
	// Address is where the first byte goes
	Address uint16

	// Data is the segment content
	Data []byte
}

// End returns the address one past the segment's last byte, as an int so the
// top of the address space is representable.
func (s *Segment) End() int {
	return int(s.Address) + len(s.Data)
}

// Block is one block-write worth of data.
type Block struct {
	Address uint16
	Data    []byte
}

// Size returns the total number of data bytes in the image.
func (img *Image) Size() int {
	n := 0
	for _, s := range img.Segments {
		n += len(s.Data)
	}
	return n
}

// Blocks splits every segment into blocks of at most maxPayload bytes.
// maxPayload above one is rounded down to an even number so blocks map onto
// whole payload words. Blocks share memory with the image.
func (img *Image) Blocks(maxPayload int) []Block {
	if maxPayload > 1 {
		maxPayload &^= 1
	}
	if maxPayload < 1 {
		maxPayload = 1
	}

	blocks := make([]Block, 0, img.Size()/maxPayload+len(img.Segments))
	for _, s := range img.Segments {
		for off := 0; off < len(s.Data); off += maxPayload {
			end := off + maxPayload
			if end > len(s.Data) {
				end = len(s.Data)
			}
			blocks = append(blocks, Block{
				Address: s.Address + uint16(off),
				Data:    s.Data[off:end],
			})
		}
	}
	return blocks
}
