// Package smartscreen drives serial-attached smart screen status panels.
//
// These are small USB-C LCD panels (typically 3.5", 320×480) that present
// themselves as a serial port and take framed commands plus raw RGB565 pixel
// data. They update slowly, so they suit static or slowly changing status
// displays. Two protocol generations exist and do not share framing,
// addressing, or pixel byte order; this package hides the differences behind
// one driver.
//
// # Architecture
//
// Every device model is a Descriptor: a pure data table of frame layout,
// resolution, opcode values, window addressing, pixel byte order, payload
// bound, and handshake. A single layout-driven frame codec and a single
// pixel transcoder serve every model, so supporting a new panel means
// declaring a descriptor, not writing protocol code.
//
// The serial port is owned by the caller. Probe takes any open Channel (an
// io.ReadWriter with a bounded read timeout; go.bug.st/serial ports qualify
// as-is), identifies the attached model by trying each candidate handshake
// in priority order, and returns a bound Display.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/gerph/smartscreen"
//	)
//
//	func main() {
//		port, err := smartscreen.OpenPort("/dev/ttyACM0")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer port.Close()
//
//		disp, err := smartscreen.Probe(port, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Hide the panel while drawing
//		disp.Enable(false)
//
//		img := loadImageSomehow() // any image.Image
//		if err := disp.UpdateRegion(0, 0, img); err != nil {
//			log.Fatal(err)
//		}
//
//		disp.Brightness(128)
//		disp.Enable(true)
//	}
//
// # Probing
//
// Probe drains stale bytes, sends each candidate's handshake, and matches
// the response against a per-variant pattern (with wildcard bytes for
// firmware fields). Candidate failures are logged and skipped; only when no
// candidate answers does Probe return ErrNoDeviceRecognized. That error is
// terminal for the channel: reopen the device before probing again, since a
// half-consumed handshake can leave it mid-protocol.
//
// # Pixel Format
//
// The panels take packed 16-bit RGB565 (the byte order differs per model).
// Any image.Image works with UpdateRegion; colors are converted through the
// pixel565 package by channel truncation, so repeated updates of the same
// source are byte-identical on the wire. Supplying a pixel565.Image in the
// bound model's byte order skips conversion entirely.
//
// # Regions and Chunking
//
// UpdateRegion validates bounds before any I/O, then splits the region into
// chunks no larger than the model's payload limit, each framed with its own
// destination window. Chunks are written strictly in sequence; a failure
// stops the update and leaves already-sent chunks on the panel. Updates are
// idempotent, so retrying a failed region is simply calling UpdateRegion
// again.
//
// # Orientation and Inversion
//
// Invert mirrors content along X, Y, or both, for panels mounted upside
// down or mirrored. Models without a hardware flip implement it host-side
// during transcoding, taking effect on the next update. SetOrientation
// switches portrait/landscape on models that support it, swapping Width and
// Height.
//
// # Concurrency
//
// A Display performs no internal locking. One goroutine per display; to
// share a display across goroutines, serialize calls externally. Separate
// displays on separate ports are fully independent.
//
// # Error Handling
//
// The driver never retries internally. Channel I/O failures, protocol errors
// (ErrResponseTimeout, ErrShortRead, ErrChecksumMismatch, ErrBadFraming),
// and validation failures (RegionError, ErrUnsupportedOrientation) all
// surface to the caller. Validation happens before any write, so a rejected
// call has no device-side effect. After a timeout mid-operation the driver's
// state stays consistent, but the panel's is unknown; a re-probe after
// reopening the port is the safe recovery.
//
// # Compatibility with periph.io
//
// Display implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a Drawer.
package smartscreen
