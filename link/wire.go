package link

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/moffa90/go-wisp/protocol"
	"github.com/moffa90/go-wisp/sim"
	"github.com/moffa90/go-wisp/tag"
)

// MaxLineLength bounds a single line. A full 255-word block write fits easily.
const MaxLineLength = 4096

// Line prefixes.
const (
	cmdWrite      = "W"
	cmdBlockWrite = "B"
	cmdRead       = "R"

	replyOK      = "K"
	replyEPC     = "E"
	replyHandoff = "H"
	replyError   = "X"
)

// FormatCommand renders a reader command as a line without the newline.
func FormatCommand(cmd sim.Command) string {
	switch cmd.Kind {
	case sim.CommandWrite:
		return fmt.Sprintf("%s %04X", cmdWrite, uint16(cmd.Desc))
	case sim.CommandBlockWrite:
		var sb strings.Builder
		sb.WriteString(cmdBlockWrite)
		for _, w := range cmd.Frame {
			fmt.Fprintf(&sb, " %04X", uint16(w))
		}
		return sb.String()
	default:
		return cmdRead
	}
}

// ParseCommand parses a command line.
func ParseCommand(line string) (sim.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return sim.Command{}, fmt.Errorf("%w: empty command", ErrMalformed)
	}

	args := fields[1:]
	switch strings.ToUpper(fields[0]) {
	case cmdWrite:
		if len(args) != 1 {
			return sim.Command{}, fmt.Errorf("%w: W takes one word, got %d", ErrMalformed, len(args))
		}
		w, err := parseWord(args[0])
		if err != nil {
			return sim.Command{}, err
		}
		return sim.Command{Kind: sim.CommandWrite, Desc: w}, nil

	case cmdBlockWrite:
		if len(args) == 0 {
			return sim.Command{}, fmt.Errorf("%w: B needs a frame", ErrMalformed)
		}
		frame := make([]protocol.Word, len(args))
		for i, a := range args {
			w, err := parseWord(a)
			if err != nil {
				return sim.Command{}, err
			}
			frame[i] = w
		}
		return sim.Command{Kind: sim.CommandBlockWrite, Frame: frame}, nil

	case cmdRead:
		if len(args) != 0 {
			return sim.Command{}, fmt.Errorf("%w: R takes no arguments", ErrMalformed)
		}
		return sim.Command{Kind: sim.CommandRead}, nil

	default:
		return sim.Command{}, fmt.Errorf("%w: unknown command %q", ErrMalformed, fields[0])
	}
}

func parseWord(s string) (protocol.Word, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: bad word %q", ErrMalformed, s)
	}
	return protocol.Word(v), nil
}

func formatEPC(epc []byte) string {
	return replyEPC + " " + strings.ToUpper(hex.EncodeToString(epc))
}

func formatHandoff(h tag.Handoff) string {
	return fmt.Sprintf("%s %04X %04X", replyHandoff, h.Target, h.Vector)
}

func formatError(err error) string {
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	return replyError + " " + msg
}

// parseReply decodes a reply line. An E reply returns its bytes, K returns
// nil, H and X come back as errors.
func parseReply(command, line string) ([]byte, error) {
	kind, rest, _ := strings.Cut(line, " ")
	switch kind {
	case replyOK:
		return nil, nil

	case replyEPC:
		epc, err := hex.DecodeString(rest)
		if err != nil {
			return nil, &UnexpectedReplyError{Command: command, Reply: line}
		}
		return epc, nil

	case replyHandoff:
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return nil, &UnexpectedReplyError{Command: command, Reply: line}
		}
		target, err1 := parseWord(fields[0])
		vector, err2 := parseWord(fields[1])
		if err1 != nil || err2 != nil {
			return nil, &UnexpectedReplyError{Command: command, Reply: line}
		}
		return nil, &tag.HandoffError{Handoff: tag.Handoff{Target: uint16(target), Vector: uint16(vector)}}

	case replyError:
		return nil, &RemoteError{Message: rest}

	default:
		return nil, &UnexpectedReplyError{Command: command, Reply: line}
	}
}

// lineReader splits a byte stream into lines. A read returning no data and
// no error is a serial read timeout; the context is checked on every one.
// An over-long line is reported once and then skipped up to its newline.
type lineReader struct {
	r          io.Reader
	buf        []byte
	pending    []byte
	err        error
	discarding bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: r, buf: make([]byte, 256)}
}

func (lr *lineReader) readLine(ctx context.Context) (string, error) {
	for {
		if i := bytes.IndexByte(lr.pending, '\n'); i >= 0 {
			line := lr.pending[:i]
			lr.pending = lr.pending[i+1:]
			if lr.discarding {
				lr.discarding = false
				continue
			}
			if len(line) > MaxLineLength {
				return "", ErrLineTooLong
			}
			return string(bytes.TrimRight(line, "\r")), nil
		}
		if len(lr.pending) > MaxLineLength {
			lr.pending = lr.pending[:0]
			if !lr.discarding {
				lr.discarding = true
				return "", ErrLineTooLong
			}
		}
		if lr.err != nil {
			return "", lr.err
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := lr.r.Read(lr.buf)
		lr.pending = append(lr.pending, lr.buf[:n]...)
		lr.err = err
	}
}
