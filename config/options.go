package config

import (
	"encoding/hex"

	"github.com/moffa90/go-wisp/programmer"
	"github.com/moffa90/go-wisp/sim"
	"github.com/moffa90/go-wisp/tag"
)

// SimOptions turns the tag section into options for sim.NewReader.
// cfg must be validated and normalized.
func (c *Config) SimOptions(extra ...tag.Option) []sim.Option {
	t := c.Tag

	opts := []sim.Option{
		sim.WithBlockWriteCapacity(t.BlockWriteWords),
		sim.WithResponseSize(t.ResponseBytes),
		sim.WithTagOptions(append([]tag.Option{tag.WithJumpVector(*t.JumpVector)}, extra...)...),
	}

	if epc, err := hex.DecodeString(t.EPC); err == nil && len(epc) > 0 {
		opts = append(opts, sim.WithEPC(epc))
	}

	for _, r := range t.ReadOnly {
		opts = append(opts, sim.WithReadOnly(tag.Region{Name: r.Name, Start: r.Start, End: r.End}))
	}

	for _, p := range t.Preload {
		if data, err := hex.DecodeString(p.Data); err == nil {
			opts = append(opts, sim.WithPreload(p.Address, data))
		}
	}

	return opts
}

// ProgrammerOptions turns the programmer section into options for
// programmer.New. The tag's block-write buffer size comes from the tag
// section. cfg must be validated and normalized.
func (c *Config) ProgrammerOptions(extra ...programmer.Option) []programmer.Option {
	p := c.Programmer

	opts := []programmer.Option{
		programmer.WithBlockWriteCapacity(c.Tag.BlockWriteWords),
		programmer.WithChunkSize(p.ChunkSize),
	}
	if p.Retries != nil {
		opts = append(opts, programmer.WithRetries(*p.Retries))
	}
	if p.VerifyAck != nil {
		opts = append(opts, programmer.WithVerifyAck(*p.VerifyAck))
	}
	if p.Launch != nil {
		opts = append(opts, programmer.WithLaunch(*p.Launch))
	}

	return append(opts, extra...)
}
