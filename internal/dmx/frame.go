package dmx

import (
	"fmt"

	"github.com/idralyuk/GradienTea-sub001/internal/color"
	"github.com/idralyuk/GradienTea-sub001/internal/pixel"
)

// Frame is one complete output: every channel of every universe.
// The zero Frame is all black.
type Frame [Universes][ChannelsPerUniverse]byte

// Universe returns a copy of universe n (1-based).
func (f *Frame) Universe(n int) ([]byte, error) {
	if n < 1 || n > Universes {
		return nil, fmt.Errorf("universe %d not in [1,%d]: %w", n, Universes, ErrInvalidAddress)
	}
	out := make([]byte, ChannelsPerUniverse)
	copy(out, f[n-1][:])
	return out, nil
}

// Set writes rgb, clamped to bytes, into p's three channels.
func (f *Frame) Set(p pixel.Pixel, rgb color.RGB) error {
	if err := ValidatePixel(p); err != nil {
		return err
	}
	b := rgb.Bytes()
	copy(f[p.Universe-1][p.Channel-1:p.Channel-1+ChannelsPerPixel], b[:])
	return nil
}

// RGBAt returns the three channel bytes of p.
func (f *Frame) RGBAt(p pixel.Pixel) ([3]byte, error) {
	var out [3]byte
	if err := ValidatePixel(p); err != nil {
		return out, err
	}
	copy(out[:], f[p.Universe-1][p.Channel-1:])
	return out, nil
}

// PixelBytes flattens the frame into 3×len(pixels) bytes in pixel order,
// the single byte-array form consumed by preview transports.
func (f *Frame) PixelBytes(pixels []pixel.Pixel) ([]byte, error) {
	out := make([]byte, 0, len(pixels)*ChannelsPerPixel)
	for _, p := range pixels {
		rgb, err := f.RGBAt(p)
		if err != nil {
			return nil, err
		}
		out = append(out, rgb[:]...)
	}
	return out, nil
}
