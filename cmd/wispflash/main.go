// Command wispflash installs an application image on a tag through a serial
// link, or on an in-process simulated tag with -sim.
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
	"github.com/moffa90/go-wisp/image"
	"github.com/moffa90/go-wisp/internal/logging"
	"github.com/moffa90/go-wisp/link"
	"github.com/moffa90/go-wisp/programmer"
	"github.com/moffa90/go-wisp/sim"
	"github.com/moffa90/go-wisp/tag"
)

type options struct {
	imagePath string
	config    string
	port      string
	baud      int
	simulate  bool
	retries   int
	chunk     int
	noLaunch  bool
	noVerify  bool
	debug     bool
}

func parseFlags() (*options, error) {
	o := &options{}
	flag.StringVar(&o.config, "config", "", "YAML profile (tag geometry, link, programmer)")
	flag.StringVar(&o.port, "port", "", "Serial port of the reader link (overrides link.port)")
	flag.IntVar(&o.baud, "baud", 0, "Baud rate (overrides link.baud)")
	flag.BoolVar(&o.simulate, "sim", false, "Program an in-process simulated tag")
	flag.IntVar(&o.retries, "retries", -1, "Retransmissions per block (overrides programmer.retries)")
	flag.IntVar(&o.chunk, "chunk", 0, "Maximum bytes per block write (overrides programmer.chunk_size)")
	flag.BoolVar(&o.noLaunch, "no-launch", false, "Do not request the jump after programming")
	flag.BoolVar(&o.noVerify, "no-verify", false, "Accept acknowledgments without checking read-back checksums")
	flag.BoolVar(&o.debug, "debug", false, "Enable debug output")
	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "Usage: wispflash [flags] <image.txt|image.hex>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return nil, errors.New("exactly one image file is required")
	}
	o.imagePath = flag.Arg(0)
	return o, nil
}

func loadConfig(o *options) (*config.Config, error) {
	cfg := &config.Config{}
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return nil, err
		}
	}

	if o.port != "" {
		cfg.Link.Port = o.port
	}
	if o.baud != 0 {
		cfg.Link.Baud = o.baud
	}
	if o.retries >= 0 {
		cfg.Programmer.Retries = &o.retries
	}
	if o.chunk != 0 {
		cfg.Programmer.ChunkSize = o.chunk
	}
	if o.noLaunch {
		launch := false
		cfg.Programmer.Launch = &launch
	}
	if o.noVerify {
		verify := false
		cfg.Programmer.VerifyAck = &verify
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	if !o.simulate && cfg.Link.Port == "" {
		return nil, errors.New("no serial port: set -port, link.port or -sim")
	}
	return cfg, nil
}

func run(ctx context.Context, o *options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	logger := logging.NewText(os.Stderr, o.debug)

	img, err := image.Parse(o.imagePath)
	if err != nil {
		return fmt.Errorf("failed to parse image: %w", err)
	}
	_, _ = fmt.Printf("Image: %s, %d segments, %d bytes\n", img.Format, len(img.Segments), img.Size())

	var t programmer.Tag
	var simulated *sim.Reader
	if o.simulate {
		simulated = sim.NewReader(cfg.SimOptions(tag.WithLogger(logger.With("side", "tag")))...)
		t = simulated
	} else {
		port, err := link.OpenSerial(cfg.Link.Port, cfg.Link.Baud)
		if err != nil {
			return err
		}
		defer func() { _ = port.Close() }()
		t = link.NewClient(port, link.WithLogger(logger.With("side", "link")))
	}

	lastPhase := ""
	prog := programmer.New(t, cfg.ProgrammerOptions(
		programmer.WithLogger(logger.With("side", "reader")),
		programmer.WithProgressCallback(func(p programmer.Progress) {
			if p.Phase != lastPhase {
				_, _ = fmt.Printf("\n%s\n", p.Phase)
				lastPhase = p.Phase
			}
			if p.Phase == programmer.PhaseProgramming {
				_, _ = fmt.Printf("\r  %5.1f%%  block %d/%d  %d bytes  %d resent",
					p.Percentage, p.CurrentBlock, p.TotalBlocks, p.BytesWritten, p.Retransmissions)
			}
		}),
	)...)

	if err := prog.Program(ctx, img); err != nil {
		var mismatch *programmer.AckMismatchError
		if errors.As(err, &mismatch) {
			_, _ = fmt.Printf("\nblock at 0x%04X read back differently; is it writable?\n", mismatch.Expected.Address)
		}
		return err
	}

	_, _ = fmt.Println("\ndone")

	if simulated != nil {
		if h, ok := simulated.Handoff(); ok {
			_, _ = fmt.Printf("tag %s\n", h)
		}
	}
	return nil
}

func main() {
	o, err := parseFlags()
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "wispflash: %v\n", err)
		os.Exit(1)
	}
}
