// Package pixel565 provides the packed 16-bit RGB565 pixel format that the
// smart screen panels use on the wire.
//
// Each pixel is two bytes: 5 bits red, 6 bits green, 5 bits blue. The byte
// order of the two bytes differs between device models, so Image carries its
// own binary.ByteOrder. This package provides the RGB565 color type and the
// Image implementation.
package pixel565

import (
	"encoding/binary"
	"image"
	"image/color"
)

// RGB565 is a packed 16-bit color: bits 15-11 red, 10-5 green, 4-0 blue.
type RGB565 uint16

// New packs 8-bit channels into an RGB565 value. Channels are truncated, not
// rounded, so repacking the same input always yields identical wire bytes.
func New(r, g, b uint8) RGB565 {
	return RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGBA converts the RGB565 color to standard 16-bit RGBA.
// Channels are expanded by bit replication so full-scale maps to full-scale.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1f
	g6 := uint32(c>>5) & 0x3f
	b5 := uint32(c) & 0x1f
	r = (r5<<3 | r5>>2) * 0x101
	g = (g6<<2 | g6>>4) * 0x101
	b = (b5<<3 | b5>>2) * 0x101
	return r, g, b, 0xffff
}

// toRGB565 converts any color.Color to RGB565.
func toRGB565(c color.Color) color.Color {
	if c565, ok := c.(RGB565); ok {
		return c565
	}
	r, g, b, _ := c.RGBA()
	return New(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts colors to RGB565.
var Model = color.ModelFunc(toRGB565)

// Image is a packed RGB565 image. Each pixel occupies two bytes in Order
// byte order.
type Image struct {
	Pix    []byte           // Pixel data (2 bytes per pixel)
	Stride int              // Bytes per row
	Rect   image.Rectangle  // Image bounds
	Order  binary.ByteOrder // Byte order of each pixel
}

// NewImage creates a new Image with the specified bounds and byte order.
func NewImage(r image.Rectangle, order binary.ByteOrder) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r, Order: order}
	}
	stride := w * 2
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
		Order:  order,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the RGB565 color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) RGB565 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return RGB565(0)
	}
	offset := p.pixOffset(x, y)
	return RGB565(p.Order.Uint16(p.Pix[offset : offset+2]))
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, Model.Convert(c).(RGB565))
}

// SetRGB565 sets the RGB565 color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB565(x, y int, c RGB565) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset := p.pixOffset(x, y)
	p.Order.PutUint16(p.Pix[offset:offset+2], uint16(c))
}

// pixOffset returns the byte offset of the pixel at (x, y).
func (p *Image) pixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}
