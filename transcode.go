package smartscreen

import (
	"image"

	"github.com/gerph/smartscreen/pixel565"
)

// Pixel transcoder. Converts a caller-supplied image region into the bound
// variant's native wire encoding, split into chunks the variant can accept.

// Chunk is one frameable unit of a region update: a destination window on
// the panel and the packed pixel bytes that fill it.
type Chunk struct {
	Window  image.Rectangle
	Payload []byte
}

// regionEncoder produces the chunk sequence for one region update.
//
// The sequence is deterministic and restartable: encoding the same region
// twice yields byte-identical chunks, so a failed update can simply be sent
// again. Chunk boundaries fall on whole rows whenever a row fits within the
// variant's payload bound, otherwise mid-row on a pixel boundary. A packed
// pixel is never split across chunks.
type regionEncoder struct {
	desc   *Descriptor
	invert InvertMode
	dst    image.Rectangle // mirrored for non-identity inversion
	src    image.Image
	sp     image.Point
	w, h   int
	next   int // next output pixel index, row-major over dst
}

// newRegionEncoder prepares the chunk sequence for drawing src (starting at
// sp, dst.Dx() by dst.Dy() pixels) at dst on a dispW by dispH panel. invert
// must be InvertNone when the variant mirrors device-side.
//
// Mirroring reverses pixel iteration order along the affected axes and
// reflects the destination window, so content drawn at a corner lands at the
// opposite corner, matching a physically rotated panel.
func newRegionEncoder(desc *Descriptor, invert InvertMode, dispW, dispH int, dst image.Rectangle, src image.Image, sp image.Point) *regionEncoder {
	mirrored := dst
	if invert == InvertX || invert == InvertXY {
		mirrored.Min.X = dispW - dst.Max.X
		mirrored.Max.X = dispW - dst.Min.X
	}
	if invert == InvertY || invert == InvertXY {
		mirrored.Min.Y = dispH - dst.Max.Y
		mirrored.Max.Y = dispH - dst.Min.Y
	}

	return &regionEncoder{
		desc:   desc,
		invert: invert,
		dst:    mirrored,
		src:    src,
		sp:     sp,
		w:      dst.Dx(),
		h:      dst.Dy(),
	}
}

// Reset rewinds the encoder to the first chunk.
func (e *regionEncoder) Reset() {
	e.next = 0
}

// Next returns the next chunk, or false when the region is exhausted.
func (e *regionEncoder) Next() (Chunk, bool) {
	total := e.w * e.h
	if e.next >= total {
		return Chunk{}, false
	}

	maxPixels := e.desc.MaxPayload / 2
	if maxPixels < 1 {
		maxPixels = 1
	}

	row := e.next / e.w
	col := e.next % e.w

	var window image.Rectangle
	var n int
	if e.w <= maxPixels {
		// Whole-row bands. col is always zero on this path.
		rows := maxPixels / e.w
		if rows > e.h-row {
			rows = e.h - row
		}
		n = rows * e.w
		window = image.Rect(e.dst.Min.X, e.dst.Min.Y+row, e.dst.Max.X, e.dst.Min.Y+row+rows)
	} else {
		// A single row exceeds the payload bound; split it at a pixel
		// boundary.
		n = e.w - col
		if n > maxPixels {
			n = maxPixels
		}
		window = image.Rect(e.dst.Min.X+col, e.dst.Min.Y+row, e.dst.Min.X+col+n, e.dst.Min.Y+row+1)
	}

	payload := make([]byte, n*2)
	filled := 0
	for filled < n {
		r := (e.next + filled) / e.w
		c := (e.next + filled) % e.w
		run := e.w - c
		if run > n-filled {
			run = n - filled
		}
		e.encodeRun(payload[filled*2:], r, c, run)
		filled += run
	}
	e.next += n

	return Chunk{Window: window, Payload: payload}, true
}

// encodeRun packs run pixels of output row r starting at output column c.
// Output coordinates are post-mirror: the source pixel is looked up through
// the inverse of the inversion mapping.
func (e *regionEncoder) encodeRun(buf []byte, r, c, run int) {
	sy := r
	if e.invert == InvertY || e.invert == InvertXY {
		sy = e.h - 1 - r
	}
	flipX := e.invert == InvertX || e.invert == InvertXY

	// Fast path: the source already holds packed pixels in our byte order
	// and no column mirroring is needed.
	if native, ok := e.src.(*pixel565.Image); ok && native.Order == e.desc.Order && !flipX {
		srcX := e.sp.X + c
		srcY := e.sp.Y + sy
		off := (srcY-native.Rect.Min.Y)*native.Stride + (srcX-native.Rect.Min.X)*2
		copy(buf[:run*2], native.Pix[off:off+run*2])
		return
	}

	for i := 0; i < run; i++ {
		sx := c + i
		if flipX {
			sx = e.w - 1 - (c + i)
		}
		c565 := pixel565.Model.Convert(e.src.At(e.sp.X+sx, e.sp.Y+sy)).(pixel565.RGB565)
		e.desc.Order.PutUint16(buf[i*2:i*2+2], uint16(c565))
	}
}
