package dmx

import "errors"

var (
	// ErrInvalidAddress is returned for a universe or channel outside the frame.
	ErrInvalidAddress = errors.New("dmx: invalid address")

	// ErrAddressOverflow is returned when an allocation would not fit in the
	// 4×512 channel space. Nothing is allocated in that case.
	ErrAddressOverflow = errors.New("dmx: address space overflow")

	// ErrUnknownPixel is returned when a PixelValue names a pixel the
	// renderer was not built with.
	ErrUnknownPixel = errors.New("dmx: unknown pixel")

	// ErrNilColor is returned when a PixelValue carries no color.
	ErrNilColor = errors.New("dmx: nil color")
)
