package link

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate is the bench link speed.
const DefaultBaudRate = 115200

// ReadPollInterval is the serial read timeout. Every expiry lets a blocked
// reader check its context.
const ReadPollInterval = 50 * time.Millisecond

// OpenSerial opens a serial port in 8N1 mode for use with Serve or NewClient.
func OpenSerial(name string, baud int) (serial.Port, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}

	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}

	if err := port.SetReadTimeout(ReadPollInterval); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set serial read timeout: %w", err)
	}

	return port, nil
}
