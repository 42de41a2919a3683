package link

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/moffa90/go-wisp/programmer"
	"github.com/moffa90/go-wisp/sim"
	"github.com/moffa90/go-wisp/tag"
)

// Serve answers command lines from rw by forwarding them to t, one at a time,
// until the stream ends or ctx is cancelled. The end of the stream is not an
// error.
//
// Cancellation is noticed between lines and on read timeouts; a stream whose
// Read blocks indefinitely has to be closed to stop Serve.
func Serve(ctx context.Context, rw io.ReadWriter, t programmer.Tag, opts ...Option) (err error) {
	defer deferWrap(&err)

	cfg := newConfig(opts)
	lr := newLineReader(rw)

	cfg.logInfo("serving tag")

	for {
		line, err := lr.readLine(ctx)
		if errors.Is(err, io.EOF) {
			cfg.logInfo("link closed")
			return nil
		}
		if errors.Is(err, ErrLineTooLong) {
			if err := writeLine(rw, formatError(err)); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		cfg.logDebug("rx", "line", line)
		reply := handle(ctx, t, line)
		cfg.logDebug("tx", "line", reply)

		if err := writeLine(rw, reply); err != nil {
			return err
		}
	}
}

func handle(ctx context.Context, t programmer.Tag, line string) string {
	cmd, err := ParseCommand(line)
	if err != nil {
		return formatError(err)
	}

	var epc []byte
	switch cmd.Kind {
	case sim.CommandWrite:
		err = t.SendWrite(ctx, cmd.Desc)
	case sim.CommandBlockWrite:
		err = t.SendBlockWrite(ctx, cmd.Frame)
	case sim.CommandRead:
		epc, err = t.ReadResponse(ctx)
	}

	var handoff *tag.HandoffError
	switch {
	case errors.As(err, &handoff):
		return formatHandoff(handoff.Handoff)
	case err != nil:
		return formatError(err)
	case cmd.Kind == sim.CommandRead:
		return formatEPC(epc)
	default:
		return replyOK
	}
}

func writeLine(w io.Writer, line string) error {
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}
