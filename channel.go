package smartscreen

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Channel is the duplex byte stream to the panel. It is owned by the caller:
// the driver never opens, configures, or closes it.
//
// Reads must honor a bounded timeout configured by the caller. A Read that
// returns (0, nil) is taken as a timeout with no data, which is how
// go.bug.st/serial ports behave after SetReadTimeout. serial.Port satisfies
// Channel directly.
type Channel interface {
	io.Reader
	io.Writer
}

// OpenPort opens a serial port with the configuration these panels use:
// 115200 baud, 8 data bits, no parity, one stop bit, 1s read timeout.
//
// It is a convenience only; any Channel works with Probe. The returned port
// remains the caller's to close.
func OpenPort(name string) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("smartscreen: open %s: %w", name, err)
	}

	if err := port.SetReadTimeout(time.Second); err != nil {
		port.Close()
		return nil, fmt.Errorf("smartscreen: set read timeout: %w", err)
	}

	return port, nil
}

// drain discards stale bytes sitting on the channel, stopping at the first
// timed-out read. Used before a handshake so a previous session's leftovers
// cannot be mistaken for a probe response.
func drain(ch Channel) {
	buf := make([]byte, 64)
	for {
		n, err := ch.Read(buf)
		if n == 0 || err != nil {
			return
		}
	}
}

// readFull reads exactly len(buf) bytes from the channel, honoring its read
// timeout. A zero-byte read before any data is ErrResponseTimeout; one after
// partial data is ErrShortRead.
func readFull(ch Channel, buf []byte) error {
	got := 0
	for got < len(buf) {
		n, err := ch.Read(buf[got:])
		if err != nil {
			return fmt.Errorf("smartscreen: read: %w", err)
		}
		if n == 0 {
			if got == 0 {
				return ErrResponseTimeout
			}
			return ErrShortRead
		}
		got += n
	}
	return nil
}
