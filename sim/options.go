package sim

import (
	"github.com/moffa90/go-wisp/protocol"
	"github.com/moffa90/go-wisp/tag"
)

// Config holds the simulated tag's geometry and initial state.
type Config struct {
	// BlockWriteCapacity is the block-write buffer size in words
	BlockWriteCapacity int

	// ResponseSize is the EPC length in bytes
	ResponseSize int

	// EPC is the initial response content; zero-filled when shorter
	EPC []byte

	// ReadOnly regions drop stores, like mask ROM
	ReadOnly []tag.Region

	// Preload is copied into memory before the tag starts
	Preload []Preload

	// TagOptions configure the dispatcher
	TagOptions []tag.Option
}

// Preload is data present in memory at power-up.
type Preload struct {
	Address uint16
	Data    []byte
}

func defaultConfig() Config {
	return Config{
		BlockWriteCapacity: protocol.DefaultBlockWriteCapacity,
		ResponseSize:       protocol.ResponseSize,
	}
}

// Option is a functional option for configuring the simulated tag.
type Option func(*Config)

// WithBlockWriteCapacity sets the block-write buffer size in words.
func WithBlockWriteCapacity(words int) Option {
	return func(c *Config) {
		if words >= protocol.HeaderWords+protocol.TrailerWords {
			c.BlockWriteCapacity = words
		}
	}
}

// WithResponseSize sets the EPC length in bytes.
func WithResponseSize(size int) Option {
	return func(c *Config) {
		if size >= protocol.AckSize {
			c.ResponseSize = size
		}
	}
}

// WithEPC sets the initial response content.
func WithEPC(epc []byte) Option {
	return func(c *Config) {
		c.EPC = epc
	}
}

// WithReadOnly marks memory regions read-only.
func WithReadOnly(regions ...tag.Region) Option {
	return func(c *Config) {
		c.ReadOnly = append(c.ReadOnly, regions...)
	}
}

// WithPreload places data in memory before the tag starts, e.g. the jump
// vector of an application already installed.
//
// Example:
//
//	r := sim.NewReader(sim.WithPreload(0xFDFE, []byte{0x00, 0x44}))
func WithPreload(address uint16, data []byte) Option {
	return func(c *Config) {
		c.Preload = append(c.Preload, Preload{Address: address, Data: data})
	}
}

// WithTagOptions passes options through to the dispatcher.
func WithTagOptions(opts ...tag.Option) Option {
	return func(c *Config) {
		c.TagOptions = append(c.TagOptions, opts...)
	}
}
