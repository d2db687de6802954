package smartscreen

import (
	"errors"
	"fmt"
	"image"
)

// Protocol and channel errors.
var (
	// ErrResponseTimeout is returned when the device sends nothing within the
	// channel's read timeout.
	ErrResponseTimeout = errors.New("smartscreen: response timeout")

	// ErrShortRead is returned when the device stops mid-response.
	ErrShortRead = errors.New("smartscreen: short response")

	// ErrChecksumMismatch is returned when a response checksum does not match
	// its contents.
	ErrChecksumMismatch = errors.New("smartscreen: response checksum mismatch")

	// ErrBadFraming is returned when a response does not carry the expected
	// opcode framing.
	ErrBadFraming = errors.New("smartscreen: bad response framing")

	// ErrNoDeviceRecognized is returned by Probe when no candidate variant
	// answered its handshake. The channel must be reopened before probing
	// again: a half-consumed handshake may have left the device mid-protocol.
	ErrNoDeviceRecognized = errors.New("smartscreen: no device recognized")

	// ErrUnsupportedOrientation is returned when the bound device cannot
	// represent the requested orientation or inversion mode.
	ErrUnsupportedOrientation = errors.New("smartscreen: orientation not supported by this device")

	// ErrUnsupportedCommand is returned when the bound device has no opcode
	// for the requested operation.
	ErrUnsupportedCommand = errors.New("smartscreen: command not supported by this device")

	// ErrHalted is returned for operations on a halted display.
	ErrHalted = errors.New("smartscreen: halted")
)

// RegionError reports an update region that does not fit the display.
// It is returned before any byte is written to the channel.
type RegionError struct {
	Region image.Rectangle
	Bounds image.Rectangle
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("smartscreen: region %v outside display bounds %v", e.Region, e.Bounds)
}
