// Command tagsim runs a simulated tag behind a serial port, so a reader-side
// programmer can be tested on the bench without RF hardware.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moffa90/go-wisp/config"
	"github.com/moffa90/go-wisp/internal/logging"
	"github.com/moffa90/go-wisp/link"
	"github.com/moffa90/go-wisp/sim"
	"github.com/moffa90/go-wisp/tag"
)

var (
	flagConfig string
	flagPort   string
	flagBaud   int
	flagDebug  bool
)

func init() {
	flag.StringVar(&flagConfig, "config", "", "YAML profile (tag geometry, memory, link)")
	flag.StringVar(&flagPort, "port", "", "Serial port to serve on (overrides link.port)")
	flag.IntVar(&flagBaud, "baud", 0, "Baud rate (overrides link.baud)")
	flag.BoolVar(&flagDebug, "debug", false, "Log every line and dropped frame")
}

func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if flagConfig != "" {
		var err error
		if cfg, err = config.Load(flagConfig); err != nil {
			return nil, err
		}
	}

	if flagPort != "" {
		cfg.Link.Port = flagPort
	}
	if flagBaud != 0 {
		cfg.Link.Baud = flagBaud
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	if cfg.Link.Port == "" {
		return nil, errors.New("no serial port: set -port or link.port")
	}
	return cfg, nil
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.NewText(os.Stderr, flagDebug)

	r := sim.NewReader(cfg.SimOptions(tag.WithLogger(logger.With("side", "tag")))...)

	port, err := link.OpenSerial(cfg.Link.Port, cfg.Link.Baud)
	if err != nil {
		return err
	}
	defer func() { _ = port.Close() }()

	logger.Info("tag ready",
		"port", cfg.Link.Port,
		"baud", cfg.Link.Baud,
		"block_write_words", cfg.Tag.BlockWriteWords,
		"jump_vector", fmt.Sprintf("0x%04X", *cfg.Tag.JumpVector))

	err = link.Serve(ctx, port, r, link.WithLogger(logger.With("side", "link")))

	if h, ok := r.Handoff(); ok {
		logger.Info("tag handed off", "target", fmt.Sprintf("0x%04X", h.Target))
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tagsim: %v\n", err)
		os.Exit(1)
	}
}
