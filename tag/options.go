package tag

import "github.com/moffa90/go-wisp/protocol"

// Logger is an optional logging interface for the dispatcher.
// Only dropped frames, mode changes and the handoff are logged.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Config holds the dispatcher configuration.
type Config struct {
	// Logger is used for logging (optional)
	Logger Logger

	// JumpVector is the address of the word holding the next application's
	// entry point
	JumpVector uint16
}

func defaultConfig() Config {
	return Config{
		JumpVector: protocol.DefaultJumpVector,
	}
}

// Option is a functional option for configuring the Dispatcher.
type Option func(*Config)

// WithLogger sets a logger for the dispatcher.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithJumpVector changes the slot the handoff target is read from.
//
// Example:
//
//	d := tag.New(bufs, mem, tag.WithJumpVector(0xFFFE))
func WithJumpVector(addr uint16) Option {
	return func(c *Config) {
		c.JumpVector = addr
	}
}
