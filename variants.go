package smartscreen

import (
	"encoding/binary"
	"image"
)

// The known device variants. Opcode values and frame shapes follow the
// decoded wire protocols of the two panel generations; the probe response
// patterns leave firmware revision bytes as wildcards.

// Rev A command opcodes.
const (
	revAReset      = 101
	revAClear      = 102
	revAScreenOff  = 108
	revAScreenOn   = 109
	revABrightness = 110
	revABitmap     = 197

	revAHello = 0x45
)

// Rev B command opcodes.
const (
	revBHello       = 0xca
	revBOrientation = 0xcb
	revBBitmap      = 0xcc
	revBBacklight   = 0xcd
	revBBrightness  = 0xce
)

// maxBitmapPayload is the pixel bytes streamed under one bitmap frame: eight
// full portrait rows. Larger writes risk outrunning the panel's buffer.
const maxBitmapPayload = 320 * 8 * 2

// RevA is the original model with the exposed rear PCB.
//
// Frames are six bytes, parameters first and opcode last, no checksum and no
// acknowledgement. Window coordinates are bit-packed into five bytes. Pixels
// travel little-endian. The wire brightness scale is inverted (0 brightest).
var RevA = &Descriptor{
	Name:       "Rev A",
	Width:      320,
	Height:     480,
	Order:      binary.LittleEndian,
	MaxPayload: maxBitmapPayload,
	Layout: Layout{
		ParamLen:    5,
		OpcodeFirst: false,
		TrailerEcho: false,
		Checksum:    ChecksumNone,
	},
	Ops: map[OpCode]Op{
		OpReset:      {Code: revAReset},
		OpClear:      {Code: revAClear},
		OpScreenOff:  {Code: revAScreenOff},
		OpScreenOn:   {Code: revAScreenOn},
		OpBrightness: {Code: revABrightness},
		OpBitmap:     {Code: revABitmap},
	},
	Window:       packedWindow,
	Inversion:    InvertHostSide,
	Orientations: []Orientation{Portrait},
	Inversions:   []InvertMode{InvertNone, InvertX, InvertY, InvertXY},
	Probe: ProbeSpec{
		Request: []byte{revAHello, revAHello, revAHello, revAHello, revAHello, revAHello},
		// Ident echo; the last three bytes carry panel/firmware identifiers.
		Expect: []byte{revAHello, revAHello, revAHello, 0, 0, 0},
		Mask:   []byte{0xff, 0xff, 0xff, 0, 0, 0},
	},
	BrightnessInverted: true,
}

// RevB is the second model, sold as the "flagship" revision with the
// enclosed rear and RGB backlight.
//
// Frames are ten bytes, opcode first and echoed as an end marker around
// eight parameter bytes. The HELLO handshake is answered with a ten byte
// echo. Window coordinates are plain 16-bit big-endian pairs and pixels
// travel big-endian. There are no screen on/off opcodes; enable is emulated
// through brightness.
var RevB = &Descriptor{
	Name:       "Rev B",
	Width:      320,
	Height:     480,
	Order:      binary.BigEndian,
	MaxPayload: maxBitmapPayload,
	Layout: Layout{
		ParamLen:    8,
		OpcodeFirst: true,
		TrailerEcho: true,
		Checksum:    ChecksumNone,
	},
	Ops: map[OpCode]Op{
		OpOrientation: {Code: revBOrientation},
		OpBitmap:      {Code: revBBitmap},
		OpBacklight:   {Code: revBBacklight},
		OpBrightness:  {Code: revBBrightness},
	},
	Window:       wideWindow,
	Inversion:    InvertHostSide,
	Orientations: []Orientation{Portrait, Landscape},
	Inversions:   []InvertMode{InvertNone, InvertX, InvertY, InvertXY},
	Probe: ProbeSpec{
		Request: []byte{revBHello, 'H', 'E', 'L', 'L', 'O', 0, 0, 0, revBHello},
		// The device echoes the frame; bytes 6-8 carry the firmware version.
		Expect: []byte{revBHello, 'H', 'E', 'L', 'L', 'O', 0, 0, 0, revBHello},
		Mask:   []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0xff},
	},
	EnableViaBrightness: true,
}

// Variants returns the candidate descriptors in probe priority order. Rev B
// goes first: its handshake identifies the device positively, while Rev A's
// ident pattern is more permissive.
func Variants() []*Descriptor {
	return []*Descriptor{RevB, RevA}
}

// packedWindow encodes an inclusive window into Rev A's five byte bit-packed
// coordinate form: 10 bits per coordinate, most significant bits first.
func packedWindow(r image.Rectangle) []byte {
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	return []byte{
		byte(x0 >> 2),
		byte((x0&3)<<6 | y0>>4),
		byte((y0&15)<<4 | x1>>6),
		byte((x1&63)<<2 | y1>>8),
		byte(y1),
	}
}

// wideWindow encodes an inclusive window as four 16-bit big-endian
// coordinates, Rev B's form.
func wideWindow(r image.Rectangle) []byte {
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	return []byte{
		byte(x0 >> 8), byte(x0),
		byte(y0 >> 8), byte(y0),
		byte(x1 >> 8), byte(x1),
		byte(y1 >> 8), byte(y1),
	}
}
