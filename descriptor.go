package smartscreen

import (
	"encoding/binary"
	"fmt"
	"image"
)

// Orientation selects how the panel is mounted.
type Orientation int

// Supported orientations. Portrait is the power-on default on every known
// model.
const (
	Portrait Orientation = iota
	Landscape
)

// InvertMode selects content mirroring applied to region updates.
type InvertMode int

// Supported inversion modes.
const (
	InvertNone InvertMode = iota
	InvertX               // mirror along the X axis (columns reversed)
	InvertY               // mirror along the Y axis (rows reversed)
	InvertXY              // both, equivalent to 180° rotation
)

// InversionStyle declares where a variant implements inversion.
type InversionStyle int

const (
	// InvertHostSide reorders pixels on the host before encoding. No wire
	// traffic happens until the next region update.
	InvertHostSide InversionStyle = iota

	// InvertDeviceSide sends the variant's inversion opcode once and passes
	// pixels through unchanged.
	InvertDeviceSide
)

// OpCode names a logical command in a variant's opcode table. Variants that
// lack a command simply omit the table entry.
type OpCode int

const (
	OpReset OpCode = iota
	OpClear
	OpScreenOn
	OpScreenOff
	OpBrightness
	OpOrientation
	OpInvert
	OpBacklight
	OpBitmap
)

// Op describes one wire command of a variant.
type Op struct {
	Code   byte // opcode byte on the wire
	AckLen int  // response bytes expected after the frame, 0 for none
}

// ChecksumKind selects the checksum appended after header and payload.
type ChecksumKind int

const (
	ChecksumNone ChecksumKind = iota
	ChecksumSum8            // additive, low 8 bits
	ChecksumXor8            // byte-wise XOR
)

// Layout describes a variant's frame shape. The codec is driven entirely by
// this table; variants never implement framing themselves.
type Layout struct {
	ParamLen    int  // fixed parameter field width, zero-padded
	OpcodeFirst bool // opcode before the parameters (else after)
	TrailerEcho bool // opcode repeated after the parameters as an end marker
	Checksum    ChecksumKind
}

// headerLen is the fixed frame length before any payload.
func (l Layout) headerLen() int {
	n := 1 + l.ParamLen
	if l.TrailerEcho {
		n++
	}
	return n
}

// ProbeSpec is a variant's handshake: the frame to send and the response
// pattern that identifies the device. Mask bytes of zero are wildcards
// (firmware version fields and the like); positions past the end of a short
// or nil Mask compare exactly.
type ProbeSpec struct {
	Request []byte
	Expect  []byte
	Mask    []byte
}

// Matches reports whether resp matches the expected pattern.
func (p ProbeSpec) Matches(resp []byte) bool {
	if len(resp) != len(p.Expect) {
		return false
	}
	for i, want := range p.Expect {
		mask := byte(0xff)
		if i < len(p.Mask) {
			mask = p.Mask[i]
		}
		if resp[i]&mask != want&mask {
			return false
		}
	}
	return true
}

// Descriptor is the immutable parameter set of one device variant. Adding a
// device model is a pure data change: declare a Descriptor and list it in
// Variants.
type Descriptor struct {
	// Name identifies the model in logs and String().
	Name string

	// Width and Height are the panel resolution in portrait orientation.
	Width, Height int

	// Order is the byte order of each packed RGB565 pixel on the wire.
	Order binary.ByteOrder

	// MaxPayload bounds the pixel bytes sent under a single bitmap frame.
	MaxPayload int

	// Layout drives the frame codec.
	Layout Layout

	// Ops is the opcode table. Missing entries mean the command is
	// unsupported on this model.
	Ops map[OpCode]Op

	// Window encodes a destination rectangle into the bitmap command's
	// parameter bytes. Indirection here is what lets one transcoder serve
	// every addressing scheme.
	Window func(r image.Rectangle) []byte

	// Inversion declares where this model implements content mirroring.
	Inversion InversionStyle

	// Orientations lists the mounting orientations the model accepts.
	Orientations []Orientation

	// Inversions lists the inversion modes the model accepts.
	Inversions []InvertMode

	// Probe is the auto-detection handshake.
	Probe ProbeSpec

	// BrightnessInverted is set when the wire scale runs 255=dark..0=bright.
	BrightnessInverted bool

	// EnableViaBrightness is set when the model has no screen on/off opcodes
	// and display enable is emulated through the brightness command.
	EnableViaBrightness bool
}

// Op looks up a command in the opcode table.
func (d *Descriptor) Op(code OpCode) (Op, bool) {
	op, ok := d.Ops[code]
	return op, ok
}

// Supports reports whether the variant has an opcode for the command.
func (d *Descriptor) Supports(code OpCode) bool {
	_, ok := d.Ops[code]
	return ok
}

// SupportsOrientation reports whether the variant accepts the orientation.
func (d *Descriptor) SupportsOrientation(o Orientation) bool {
	for _, s := range d.Orientations {
		if s == o {
			return true
		}
	}
	return false
}

// SupportsInversion reports whether the variant accepts the inversion mode.
func (d *Descriptor) SupportsInversion(m InvertMode) bool {
	for _, s := range d.Inversions {
		if s == m {
			return true
		}
	}
	return false
}

// String returns a string representation of the descriptor.
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s %dx%d", d.Name, d.Width, d.Height)
}
