package smartscreen

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"

	"github.com/gerph/smartscreen/pixel565"
)

// StatusOK is the success status byte in acknowledged responses.
const StatusOK byte = 0

// Display is the handle for one bound panel. It is returned by Probe and
// stays bound to the same Descriptor for its whole lifetime.
//
// A Display performs no internal locking: every operation blocks until its
// wire traffic completes, and one logical thread of control must own the
// Display (and its Channel) per call. Independent panels on independent
// channels are fully concurrent.
//
// Display implements display.Drawer from periph.io, so the panel can be used
// with any tool expecting one.
type Display struct {
	ch   Channel
	desc *Descriptor
	log  zerolog.Logger

	// Logical state
	orientation Orientation
	invert      InvertMode
	brightness  uint8
	enabled     bool
	halted      bool

	// Pacing between bitmap data and the next command
	interFrameDelay time.Duration
	lastBitmap      time.Time
}

func newDisplay(ch Channel, desc *Descriptor, opts *Opts) *Display {
	return &Display{
		ch:              ch,
		desc:            desc,
		log:             opts.logger(),
		orientation:     Portrait,
		enabled:         true,
		interFrameDelay: opts.interFrameDelay(),
	}
}

// Descriptor returns the bound variant's parameter set.
func (d *Display) Descriptor() *Descriptor {
	return d.desc
}

// Width returns the display width in the selected orientation.
func (d *Display) Width() int {
	if d.orientation == Landscape {
		return d.desc.Height
	}
	return d.desc.Width
}

// Height returns the display height in the selected orientation.
func (d *Display) Height() int {
	if d.orientation == Landscape {
		return d.desc.Width
	}
	return d.desc.Height
}

// Bounds returns the image bounds of the display.
func (d *Display) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width(), d.Height())
}

// ColorModel returns the color model of the display.
func (d *Display) ColorModel() color.Model {
	return pixel565.Model
}

// Enable controls whether the panel shows its content. Models without
// screen on/off opcodes emulate disable by driving brightness to zero and
// restore the remembered level on re-enable. Re-applying the current state
// produces no wire traffic.
func (d *Display) Enable(on bool) error {
	if d.halted {
		return ErrHalted
	}
	if d.enabled == on {
		return nil
	}

	var err error
	switch {
	case d.desc.EnableViaBrightness:
		level := d.brightness
		if !on {
			level = 0
		}
		err = d.sendCommand(OpBrightness, []byte{d.wireBrightness(level)})
	case on:
		err = d.sendCommand(OpScreenOn, nil)
	default:
		err = d.sendCommand(OpScreenOff, nil)
	}
	if err != nil {
		return err
	}

	d.enabled = on
	return nil
}

// Brightness sets the panel brightness (0 = off, 255 = brightest). On models
// that emulate enable through brightness, the level is remembered while
// disabled and applied on the next Enable(true).
func (d *Display) Brightness(level uint8) error {
	if d.halted {
		return ErrHalted
	}
	d.brightness = level
	if d.desc.EnableViaBrightness && !d.enabled {
		return nil
	}
	return d.sendCommand(OpBrightness, []byte{d.wireBrightness(level)})
}

// wireBrightness maps a logical level to the variant's wire scale.
func (d *Display) wireBrightness(level uint8) byte {
	if d.desc.BrightnessInverted {
		return 255 - level
	}
	return level
}

// Backlight sets the rear light color on models that have one.
func (d *Display) Backlight(r, g, b uint8) error {
	if d.halted {
		return ErrHalted
	}
	return d.sendCommand(OpBacklight, []byte{r, g, b})
}

// SetOrientation selects the mounting orientation. Width and Height swap
// accordingly. Models with a hardware orientation opcode are told; on the
// rest only the host-side coordinate system changes.
func (d *Display) SetOrientation(o Orientation) error {
	if d.halted {
		return ErrHalted
	}
	if !d.desc.SupportsOrientation(o) {
		return ErrUnsupportedOrientation
	}
	if d.desc.Supports(OpOrientation) {
		if err := d.sendCommand(OpOrientation, []byte{byte(o)}); err != nil {
			return err
		}
	}
	d.orientation = o
	return nil
}

// Invert selects content mirroring. On host-side variants the change takes
// effect on the next region update with no immediate wire traffic;
// device-side variants are sent their inversion opcode once. Re-applying the
// current mode is a no-op.
func (d *Display) Invert(mode InvertMode) error {
	if d.halted {
		return ErrHalted
	}
	if !d.desc.SupportsInversion(mode) {
		return ErrUnsupportedOrientation
	}
	if mode == d.invert {
		return nil
	}
	if d.desc.Inversion == InvertDeviceSide {
		if err := d.sendCommand(OpInvert, []byte{byte(mode)}); err != nil {
			return err
		}
	}
	d.invert = mode
	return nil
}

// UpdateRegion draws src with its top-left corner at (x, y). The region must
// lie fully within Bounds or a RegionError is returned before any byte is
// written.
//
// The region is transcoded into chunks bounded by the variant's payload
// limit and sent strictly in sequence. On the first failed chunk the update
// stops and the error is returned; chunks already sent stay on the panel.
// Re-sending the same region is safe: transcoding is deterministic.
func (d *Display) UpdateRegion(x, y int, src image.Image) error {
	if d.halted {
		return ErrHalted
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	region := image.Rect(x, y, x+w, y+h)
	bounds := d.Bounds()
	if w <= 0 || h <= 0 || !region.In(bounds) {
		return &RegionError{Region: region, Bounds: bounds}
	}
	return d.updateRegion(region, src, src.Bounds().Min)
}

// Draw draws src at rectangle r, clipped to the display bounds and to the
// pixels src actually has from sp. It implements display.Drawer.
func (d *Display) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	clipped := r.Intersect(d.Bounds())
	clipped = clipped.Intersect(src.Bounds().Sub(sp).Add(r.Min))
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))
	return d.updateRegion(clipped, src, sp)
}

func (d *Display) updateRegion(dst image.Rectangle, src image.Image, sp image.Point) error {
	op, ok := d.desc.Op(OpBitmap)
	if !ok {
		return ErrUnsupportedCommand
	}

	mode := d.invert
	if d.desc.Inversion == InvertDeviceSide {
		mode = InvertNone
	}
	enc := newRegionEncoder(d.desc, mode, d.Width(), d.Height(), dst, src, sp)

	// Chunks stream back-to-back; the quiet gap is only needed between
	// bitmap data and the next command.
	d.pace()

	for {
		chunk, more := enc.Next()
		if !more {
			return nil
		}

		frame, err := EncodeFrame(d.desc.Layout, op.Code, d.desc.Window(chunk.Window), chunk.Payload)
		if err != nil {
			return err
		}

		if _, err := d.ch.Write(frame); err != nil {
			return fmt.Errorf("smartscreen: write: %w", err)
		}
		d.lastBitmap = time.Now()

		if op.AckLen > 0 {
			if err := d.readAck(op); err != nil {
				return err
			}
		}

		d.log.Debug().
			Str("window", chunk.Window.String()).
			Int("bytes", len(chunk.Payload)).
			Msg("chunk sent")
	}
}

// Clear blanks the display to black, using the hardware clear opcode when
// the variant has one and a full-screen black region write otherwise.
func (d *Display) Clear() error {
	if d.halted {
		return ErrHalted
	}
	if d.desc.Supports(OpClear) {
		return d.sendCommand(OpClear, nil)
	}
	blank := pixel565.NewImage(d.Bounds(), d.desc.Order)
	return d.updateRegion(d.Bounds(), blank, image.Point{})
}

// Reset reboots the panel on variants with a reset opcode. The device drops
// off the bus while rebooting; the caller must reopen the channel and probe
// again afterwards.
func (d *Display) Reset() error {
	if d.halted {
		return ErrHalted
	}
	return d.sendCommand(OpReset, nil)
}

// Halt blanks the display and refuses further operations.
// It implements conn.Resource.
func (d *Display) Halt() error {
	if err := d.Enable(false); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// String returns a string representation of the display.
func (d *Display) String() string {
	return fmt.Sprintf("smartscreen.Display{%s %dx%d}", d.desc.Name, d.Width(), d.Height())
}

// sendCommand frames and writes one payload-free command, then reads and
// validates the acknowledgement when the opcode table declares one.
func (d *Display) sendCommand(code OpCode, params []byte) error {
	op, ok := d.desc.Op(code)
	if !ok {
		return ErrUnsupportedCommand
	}

	frame, err := EncodeFrame(d.desc.Layout, op.Code, params, nil)
	if err != nil {
		return err
	}

	d.pace()
	if _, err := d.ch.Write(frame); err != nil {
		return fmt.Errorf("smartscreen: write: %w", err)
	}

	if op.AckLen > 0 {
		return d.readAck(op)
	}
	return nil
}

func (d *Display) readAck(op Op) error {
	ack := make([]byte, op.AckLen)
	if err := readFull(d.ch, ack); err != nil {
		return err
	}
	status, err := DecodeResponse(d.desc.Layout, op.Code, ack)
	if err != nil {
		return err
	}
	if status != StatusOK {
		return fmt.Errorf("smartscreen: device rejected command %#02x: status %#02x", op.Code, status)
	}
	return nil
}

// pace waits out the remaining quiet gap after the last bitmap write.
func (d *Display) pace() {
	if d.interFrameDelay <= 0 || d.lastBitmap.IsZero() {
		return
	}
	if elapsed := time.Since(d.lastBitmap); elapsed < d.interFrameDelay {
		time.Sleep(d.interFrameDelay - elapsed)
	}
}

var _ display.Drawer = (*Display)(nil)
