// Package pixel565 provides the packed RGB565 pixel format for smart screen panels.
//
// The panels take 16-bit color: 5 bits red, 6 bits green, 5 bits blue. Device
// models disagree on the byte order of the two pixel bytes, so Image carries
// its own binary.ByteOrder rather than fixing one.
//
// Memory layout example for a 2-pixel row in little-endian order:
//
//	Pixels: 0       1
//	Colors: red     green
//	Packed: 0xF800  0x07E0
//	Bytes:  0x00 0xF8  0xE0 0x07
//
// Packing truncates the low bits of each 8-bit channel (no rounding), so
// converting the same source color twice always yields identical bytes.
//
// This package provides:
//
// - RGB565: A color type holding one packed pixel value
// - Model: A color model for converting standard Go colors to RGB565
// - Image: An image.Image implementation in the panel's wire layout
//
// Example usage:
//
//	// Create a 320x480 image in little-endian pixel order
//	img := pixel565.NewImage(image.Rect(0, 0, 320, 480), binary.LittleEndian)
//
//	// Set a pixel to pure red
//	img.SetRGB565(10, 20, pixel565.New(255, 0, 0))
//
//	// Get a pixel back
//	c := img.RGB565At(10, 20)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(pixel565.New(0, 0, 255)), image.Point{}, draw.Src)
package pixel565
