package tag

// Memory is the tag's byte-addressable address space.
type Memory interface {
	// Load8 returns the byte at addr.
	Load8(addr uint16) byte

	// Store8 writes v at addr. Stores to read-only locations may be lost.
	Store8(addr uint16, v byte)
}

// Load16 reads a little-endian word at addr, the way the MCU fetches a vector.
func Load16(mem Memory, addr uint16) uint16 {
	return uint16(mem.Load8(addr)) | uint16(mem.Load8(addr+1))<<8
}

// Flat is a fully writable 64 KiB address space.
type Flat struct {
	data [1 << 16]byte
}

// NewFlat returns a zeroed address space.
func NewFlat() *Flat {
	return &Flat{}
}

func (f *Flat) Load8(addr uint16) byte { return f.data[addr] }

func (f *Flat) Store8(addr uint16, v byte) { f.data[addr] = v }

// Load copies data into memory starting at addr, wrapping at the top of the
// address space. It is meant for preloading images and vectors.
func (f *Flat) Load(addr uint16, data []byte) {
	for i, b := range data {
		f.data[addr+uint16(i)] = b
	}
}

// Bytes returns a copy of n bytes starting at addr.
func (f *Flat) Bytes(addr uint16, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = f.data[addr+uint16(i)]
	}
	return out
}

// Region is an inclusive address range.
type Region struct {
	Name  string
	Start uint16
	End   uint16
}

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uint16) bool {
	return addr >= r.Start && addr <= r.End
}

// Protected wraps a Memory and silently discards stores that fall inside any
// of its read-only regions, like writes to mask ROM. Loads pass through.
type Protected struct {
	mem      Memory
	readOnly []Region
}

// NewProtected returns mem with the given regions made read-only.
func NewProtected(mem Memory, readOnly ...Region) *Protected {
	return &Protected{mem: mem, readOnly: readOnly}
}

func (p *Protected) Load8(addr uint16) byte { return p.mem.Load8(addr) }

func (p *Protected) Store8(addr uint16, v byte) {
	for _, r := range p.readOnly {
		if r.Contains(addr) {
			return
		}
	}
	p.mem.Store8(addr, v)
}
