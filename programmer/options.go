package programmer

import "github.com/moffa90/go-wisp/protocol"

// Config holds the programmer configuration.
type Config struct {
	// ProgressCallback is called during programming to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ChunkSize is the maximum payload per block write, in bytes
	ChunkSize int

	// BlockWriteCapacity is the tag's block-write buffer size, in words
	BlockWriteCapacity int

	// Retries is the number of retransmissions after a stale acknowledgment
	Retries int

	// VerifyAck compares the acknowledgment checksum with the data sent.
	// Without it only the frame metadata has to match.
	VerifyAck bool

	// Launch requests the jump to the new application after programming
	Launch bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ChunkSize:          protocol.DefaultMaxPayloadSize,
		BlockWriteCapacity: protocol.DefaultBlockWriteCapacity,
		Retries:            3,
		VerifyAck:          true,
		Launch:             true,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithProgressCallback sets a callback function to track programming progress.
//
// Example:
//
//	prog := programmer.New(t,
//	    programmer.WithProgressCallback(func(p programmer.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the programmer operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithChunkSize sets the maximum payload per block write. It is further
// limited to what fits the tag's block-write buffer.
//
// Example:
//
//	prog := programmer.New(t, programmer.WithChunkSize(32))
func WithChunkSize(size int) Option {
	return func(c *Config) {
		if size > 0 && size <= protocol.MaxSize {
			c.ChunkSize = size
		}
	}
}

// WithBlockWriteCapacity declares the tag's block-write buffer size in words.
func WithBlockWriteCapacity(words int) Option {
	return func(c *Config) {
		if protocol.MaxPayloadSize(words) > 0 {
			c.BlockWriteCapacity = words
		}
	}
}

// WithRetries sets the number of retransmissions per block.
//
// Example:
//
//	prog := programmer.New(t, programmer.WithRetries(10))
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.Retries = retries
		}
	}
}

// WithVerifyAck enables or disables acknowledgment checksum verification.
// Default is true.
func WithVerifyAck(verify bool) Option {
	return func(c *Config) {
		c.VerifyAck = verify
	}
}

// WithLaunch enables or disables the jump request after programming.
// Default is true.
func WithLaunch(launch bool) Option {
	return func(c *Config) {
		c.Launch = launch
	}
}
