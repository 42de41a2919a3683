package config

import (
	"encoding/hex"
	"fmt"

	"github.com/moffa90/go-wisp/protocol"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	t := cfg.Tag

	// ------------------------------------------------------------
	// TAG GEOMETRY
	// ------------------------------------------------------------

	// zero means default; a word count byte cannot reach past 256 words
	minWords := protocol.HeaderWords + 1 + protocol.TrailerWords
	if t.BlockWriteWords != 0 {
		if t.BlockWriteWords < minWords || t.BlockWriteWords > protocol.MaxSize+1 {
			return fmt.Errorf(
				"tag: block_write_words must be between %d and %d, got %d",
				minWords,
				protocol.MaxSize+1,
				t.BlockWriteWords,
			)
		}
	}

	if t.ResponseBytes != 0 && t.ResponseBytes < protocol.AckSize {
		return fmt.Errorf(
			"tag: response_bytes must be at least %d, got %d",
			protocol.AckSize,
			t.ResponseBytes,
		)
	}

	if t.EPC != "" {
		epc, err := hex.DecodeString(t.EPC)
		if err != nil {
			return fmt.Errorf("tag: epc is not hex: %w", err)
		}

		size := t.ResponseBytes
		if size == 0 {
			size = protocol.ResponseSize
		}
		if len(epc) > size {
			return fmt.Errorf("tag: epc is %d bytes, response holds %d", len(epc), size)
		}
	}

	// ------------------------------------------------------------
	// MEMORY MAP
	// ------------------------------------------------------------

	for i, r := range t.ReadOnly {
		if r.Start > r.End {
			return fmt.Errorf(
				"tag: read_only[%d] %q: start 0x%04X is above end 0x%04X",
				i,
				r.Name,
				r.Start,
				r.End,
			)
		}
	}

	for i, p := range t.Preload {
		data, err := hex.DecodeString(p.Data)
		if err != nil {
			return fmt.Errorf("tag: preload[%d]: data is not hex: %w", i, err)
		}
		if len(data) == 0 {
			return fmt.Errorf("tag: preload[%d]: data is empty", i)
		}
		if int(p.Address)+len(data) > 0x10000 {
			return fmt.Errorf(
				"tag: preload[%d]: %d bytes at 0x%04X run past the address space",
				i,
				len(data),
				p.Address,
			)
		}
	}

	// ------------------------------------------------------------
	// LINK
	// ------------------------------------------------------------

	if cfg.Link.Baud < 0 {
		return fmt.Errorf("link: baud must not be negative, got %d", cfg.Link.Baud)
	}

	// ------------------------------------------------------------
	// PROGRAMMER
	// ------------------------------------------------------------

	p := cfg.Programmer

	if p.Retries != nil && *p.Retries < 0 {
		return fmt.Errorf("programmer: retries must not be negative, got %d", *p.Retries)
	}

	if p.ChunkSize < 0 || p.ChunkSize > protocol.MaxSize {
		return fmt.Errorf(
			"programmer: chunk_size must be between 0 and %d, got %d",
			protocol.MaxSize,
			p.ChunkSize,
		)
	}

	return nil
}
