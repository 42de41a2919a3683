package link

import (
	"context"
	"fmt"
	"io"

	"github.com/moffa90/go-wisp/internal/syncutil"
	"github.com/moffa90/go-wisp/protocol"
	"github.com/moffa90/go-wisp/sim"
)

// Client is the reader end of a link. It implements programmer.Tag, so a
// programmer can install images on a tag served elsewhere. Client is safe for
// concurrent use; commands are serialised.
//
// An exchange that fails between sending a command and reading its reply
// leaves the reply in the stream, so the client refuses further commands
// with ErrOutOfStep. Reopen the port and create a new Client.
type Client struct {
	mu     syncutil.Mutex
	w      io.Writer
	lr     *lineReader
	config Config
	broken error
}

// NewClient returns a client speaking over rw.
func NewClient(rw io.ReadWriter, opts ...Option) *Client {
	if rw == nil {
		panic("stream cannot be nil")
	}
	return &Client{
		w:      rw,
		lr:     newLineReader(rw),
		config: newConfig(opts),
	}
}

// SendWrite delivers a single-word WRITE.
func (c *Client) SendWrite(ctx context.Context, desc protocol.Word) error {
	_, err := c.roundTrip(ctx, sim.Command{Kind: sim.CommandWrite, Desc: desc})
	return err
}

// SendBlockWrite delivers a BLOCKWRITE frame.
func (c *Client) SendBlockWrite(ctx context.Context, frame []protocol.Word) error {
	_, err := c.roundTrip(ctx, sim.Command{Kind: sim.CommandBlockWrite, Frame: frame})
	return err
}

// ReadResponse returns the tag's EPC.
func (c *Client) ReadResponse(ctx context.Context) ([]byte, error) {
	epc, err := c.roundTrip(ctx, sim.Command{Kind: sim.CommandRead})
	if err != nil {
		return nil, err
	}
	if epc == nil {
		return nil, &UnexpectedReplyError{Command: cmdRead, Reply: replyOK}
	}
	return epc, nil
}

func (c *Client) roundTrip(ctx context.Context, cmd sim.Command) (epc []byte, err error) {
	defer deferWrap(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfStep, c.broken)
	}

	line := FormatCommand(cmd)
	c.config.logDebug("tx", "line", line)
	if err := writeLine(c.w, line); err != nil {
		c.broken = err
		return nil, err
	}

	reply, err := c.lr.readLine(ctx)
	if err != nil {
		c.broken = err
		return nil, err
	}
	c.config.logDebug("rx", "line", reply)

	epc, err = parseReply(line, reply)
	if err != nil {
		return nil, err
	}
	if epc != nil && cmd.Kind != sim.CommandRead {
		return nil, &UnexpectedReplyError{Command: line, Reply: reply}
	}
	return epc, nil
}
