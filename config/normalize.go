package config

import (
	"github.com/moffa90/go-wisp/link"
	"github.com/moffa90/go-wisp/protocol"
)

// Normalize fills defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	t := &cfg.Tag
	if t.BlockWriteWords == 0 {
		t.BlockWriteWords = protocol.DefaultBlockWriteCapacity
	}
	if t.ResponseBytes == 0 {
		t.ResponseBytes = protocol.ResponseSize
	}
	if t.JumpVector == nil {
		vector := protocol.DefaultJumpVector
		t.JumpVector = &vector
	}

	if cfg.Link.Baud == 0 {
		cfg.Link.Baud = link.DefaultBaudRate
	}

	p := &cfg.Programmer
	if p.Retries == nil {
		retries := 3
		p.Retries = &retries
	}

	// the programmer also limits chunks to the tag's buffer
	if limit := protocol.MaxPayloadSize(t.BlockWriteWords); p.ChunkSize == 0 || p.ChunkSize > limit {
		p.ChunkSize = limit
	}

	if p.VerifyAck == nil {
		verify := true
		p.VerifyAck = &verify
	}
	if p.Launch == nil {
		launch := true
		p.Launch = &launch
	}
}
