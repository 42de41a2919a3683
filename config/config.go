// Package config loads the YAML profile shared by the commands: the
// simulated tag's geometry and initial memory, the serial link, and
// programmer tuning.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Tag        TagConfig        `yaml:"tag"`
	Link       LinkConfig       `yaml:"link"`
	Programmer ProgrammerConfig `yaml:"programmer"`
}

// ---- TAG ----

type TagConfig struct {
	BlockWriteWords int     `yaml:"block_write_words"`
	ResponseBytes   int     `yaml:"response_bytes"`
	JumpVector      *uint16 `yaml:"jump_vector"` // nil selects 0xFDFE

	// EPC is the initial response field, in hex
	EPC string `yaml:"epc"`

	ReadOnly []RegionConfig  `yaml:"read_only"`
	Preload  []PreloadConfig `yaml:"preload"`
}

type RegionConfig struct {
	Name  string `yaml:"name"`
	Start uint16 `yaml:"start"`
	End   uint16 `yaml:"end"` // inclusive
}

type PreloadConfig struct {
	Address uint16 `yaml:"address"`
	Data    string `yaml:"data"` // hex
}

// ---- LINK ----

type LinkConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// ---- PROGRAMMER ----

type ProgrammerConfig struct {
	Retries   *int  `yaml:"retries"`
	ChunkSize int   `yaml:"chunk_size"`
	VerifyAck *bool `yaml:"verify_ack"`
	Launch    *bool `yaml:"launch"`
}

// Load reads and decodes a profile. Unknown keys are errors.
// The result is neither validated nor normalized.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a profile from memory.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}
