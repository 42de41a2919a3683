package programmer

import (
	"context"
	"fmt"
	"time"

	"github.com/ansel1/merry/v2"

	"github.com/moffa90/go-wisp/image"
	"github.com/moffa90/go-wisp/protocol"
)

// Tag is the reader's view of a tag. Implementations carry commands over
// whatever link reaches the tag and return the tag's current EPC bytes.
type Tag interface {
	// SendWrite delivers a single-word WRITE command
	SendWrite(ctx context.Context, desc protocol.Word) error

	// SendBlockWrite delivers a BLOCKWRITE frame
	SendBlockWrite(ctx context.Context, frame []protocol.Word) error

	// ReadResponse returns the EPC the tag currently backscatters
	ReadResponse(ctx context.Context) ([]byte, error)
}

// Programmer installs application images on a tag.
type Programmer struct {
	tag    Tag
	config Config
}

// New creates a new Programmer instance.
//
// Example:
//
//	prog := programmer.New(t,
//	    programmer.WithProgressCallback(func(p programmer.Progress) {
//	        fmt.Printf("%s: %.1f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
func New(t Tag, opts ...Option) *Programmer {
	if t == nil {
		panic("tag cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if limit := protocol.MaxPayloadSize(cfg.BlockWriteCapacity); cfg.ChunkSize > limit {
		cfg.ChunkSize = limit
	}

	return &Programmer{
		tag:    t,
		config: cfg,
	}
}

// Program installs img on the tag: it arms write mode, writes every block
// with acknowledgment checks and, unless disabled, requests the jump to the
// new application.
//
// The operation can be cancelled via the context.
func (p *Programmer) Program(ctx context.Context, img *image.Image) (err error) {
	defer deferWrap(&err)

	if img == nil {
		return merry.New("image cannot be nil")
	}

	startTime := time.Now()
	blocks := img.Blocks(p.config.ChunkSize)
	if len(blocks) == 0 {
		return merry.New("image contains no data")
	}

	p.logInfo("starting programming",
		"format", img.Format.String(),
		"bytes", img.Size(),
		"blocks", len(blocks),
		"chunk", p.config.ChunkSize)

	progress := Progress{
		Phase:       PhaseEntering,
		TotalBlocks: len(blocks),
	}
	p.reportProgress(progress, startTime)

	if err := p.EnterWriteMode(ctx); err != nil {
		return err
	}

	progress.Phase = PhaseProgramming
	for i, b := range blocks {
		select {
		case <-ctx.Done():
			return fmt.Errorf("cancelled: %w", ctx.Err())
		default:
		}

		_, retries, err := p.writeBlock(ctx, b.Address, b.Data)
		progress.Retransmissions += retries
		if err != nil {
			return fmt.Errorf("block %d at 0x%04X: %w", i, b.Address, err)
		}

		progress.CurrentBlock = i + 1
		progress.BytesWritten += len(b.Data)
		progress.Percentage = float64(progress.CurrentBlock) * 100.0 / float64(progress.TotalBlocks)
		p.reportProgress(progress, startTime)
	}

	if p.config.Launch {
		progress.Phase = PhaseLaunching
		p.reportProgress(progress, startTime)

		if err := p.Launch(ctx); err != nil {
			return err
		}
	}

	progress.Phase = PhaseComplete
	progress.Percentage = 100.0
	p.reportProgress(progress, startTime)

	p.logInfo("programming completed",
		"bytes", progress.BytesWritten,
		"retransmissions", progress.Retransmissions,
		"duration", time.Since(startTime))

	return nil
}

// EnterWriteMode arms the tag for block writes.
func (p *Programmer) EnterWriteMode(ctx context.Context) (err error) {
	defer deferWrap(&err)

	p.logDebug("entering write mode")

	if err := p.tag.SendWrite(ctx, protocol.BuildEnterWriteModeCmd()); err != nil {
		return fmt.Errorf("failed to send enter write mode: %w", err)
	}

	epc, err := p.tag.ReadResponse(ctx)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	resp, err := protocol.ParseResponse(epc)
	if err != nil || resp.Kind != protocol.ResponseWriteArmed {
		return &UnexpectedResponseError{Operation: "enter write mode", Response: epc}
	}

	return nil
}

// WriteBlock writes data at address with a single block-write frame and
// returns the tag's acknowledgment. A frame the tag dropped leaves the
// previous response in place, so the frame is sent again up to the
// configured number of retries.
func (p *Programmer) WriteBlock(ctx context.Context, address uint16, data []byte) (ack protocol.Ack, err error) {
	defer deferWrap(&err)

	ack, _, err = p.writeBlock(ctx, address, data)
	return ack, err
}

// Launch requests the jump to the application whose entry point is in the
// tag's jump vector. The tag does not answer.
func (p *Programmer) Launch(ctx context.Context) (err error) {
	defer deferWrap(&err)

	p.logDebug("requesting jump")

	if err := p.tag.SendWrite(ctx, protocol.BuildJumpCmd()); err != nil {
		return fmt.Errorf("failed to send jump request: %w", err)
	}
	return nil
}

// writeBlock also returns the number of retransmissions it needed.
func (p *Programmer) writeBlock(ctx context.Context, address uint16, data []byte) (protocol.Ack, int, error) {
	frame, err := protocol.BuildBlockWriteFrame(address, data)
	if err != nil {
		return protocol.Ack{}, 0, err
	}
	if len(frame) > p.config.BlockWriteCapacity {
		return protocol.Ack{}, 0, &CapacityError{Size: len(data), Capacity: p.config.BlockWriteCapacity}
	}

	want := protocol.ComputeAck(address, data)
	attempts := p.config.Retries + 1

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return protocol.Ack{}, attempt, fmt.Errorf("cancelled: %w", err)
		}

		if attempt > 0 {
			p.logDebug("retransmitting block",
				"address", fmt.Sprintf("0x%04X", address),
				"attempt", attempt+1)
		}

		if err := p.tag.SendBlockWrite(ctx, frame); err != nil {
			return protocol.Ack{}, attempt, fmt.Errorf("failed to send block write: %w", err)
		}

		epc, err := p.tag.ReadResponse(ctx)
		if err != nil {
			return protocol.Ack{}, attempt, fmt.Errorf("failed to read response: %w", err)
		}

		resp, err := protocol.ParseResponse(epc)
		if err != nil || resp.Kind != protocol.ResponseAck {
			continue
		}

		got := resp.Ack
		if got.WordCount != want.WordCount || got.Size != want.Size || got.Address != want.Address {
			continue
		}

		if p.config.VerifyAck && got.Checksum != want.Checksum {
			p.logError("acknowledgment mismatch",
				"address", fmt.Sprintf("0x%04X", address),
				"expected", fmt.Sprintf("0x%02X", want.Checksum),
				"actual", fmt.Sprintf("0x%02X", got.Checksum))
			return got, attempt, &AckMismatchError{Expected: want, Actual: got}
		}

		p.logDebug("block acknowledged", "ack", got.String())
		return got, attempt, nil
	}

	p.logError("block not acknowledged",
		"address", fmt.Sprintf("0x%04X", address),
		"attempts", attempts)
	return protocol.Ack{}, attempts - 1, &StaleAckError{Address: address, Attempts: attempts}
}

// reportProgress calls the progress callback if one is configured.
func (p *Programmer) reportProgress(progress Progress, startTime time.Time) {
	if p.config.ProgressCallback != nil {
		progress.ElapsedTime = time.Since(startTime)
		p.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (p *Programmer) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Programmer) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (p *Programmer) logError(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Error(msg, keysAndValues...)
	}
}
