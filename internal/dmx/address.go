// Package dmx maps logical pixels onto fixed-size universes of one-byte
// channels and renders composited pixel colors into channel frames.
package dmx

import (
	"fmt"

	"github.com/idralyuk/GradienTea-sub001/internal/logging"
	"github.com/idralyuk/GradienTea-sub001/internal/pixel"
)

const (
	// Universes is the number of universes in a frame, numbered 1..Universes.
	Universes = 4
	// ChannelsPerUniverse is the channel count of one universe, numbered 1..512.
	ChannelsPerUniverse = 512
	// ChannelsPerPixel is the R, G, B triple.
	ChannelsPerPixel = 3
	// LastPixelChannel is the highest channel a pixel may start on without
	// its triple running past the end of the universe.
	LastPixelChannel = ChannelsPerUniverse - ChannelsPerPixel + 1
)

// ValidatePixel checks that p's whole triple lies inside one universe.
func ValidatePixel(p pixel.Pixel) error {
	if p.Universe < 1 || p.Universe > Universes {
		return fmt.Errorf("pixel %v: universe not in [1,%d]: %w", p, Universes, ErrInvalidAddress)
	}
	if p.Channel < 1 || p.Channel > LastPixelChannel {
		return fmt.Errorf("pixel %v: channel not in [1,%d]: %w", p, LastPixelChannel, ErrInvalidAddress)
	}
	return nil
}

// cursor walks the channel space three channels at a time. A triple that
// would cross the end of a universe moves whole to channel 1 of the next.
type cursor struct {
	universe, channel int
}

func (c *cursor) next() pixel.Pixel {
	if c.channel > LastPixelChannel {
		c.universe++
		c.channel = 1
	}
	p := pixel.Pixel{Universe: c.universe, Channel: c.channel}
	c.channel += ChannelsPerPixel
	return p
}

// Capacity returns how many pixels fit from firstChannel of universe 1 to the
// end of the last universe.
func Capacity(firstChannel int) int {
	if firstChannel < 1 || firstChannel > ChannelsPerUniverse {
		return 0
	}
	perUniverse := (LastPixelChannel-1)/ChannelsPerPixel + 1
	first := 0
	if firstChannel <= LastPixelChannel {
		first = (LastPixelChannel-firstChannel)/ChannelsPerPixel + 1
	}
	return first + (Universes-1)*perUniverse
}

// AssignAddresses gives pixelCount consecutive pixels their addresses,
// starting at firstChannel of universe 1. The whole request is rejected
// with ErrAddressOverflow if any pixel would land past the last universe.
func AssignAddresses(firstChannel, pixelCount int) ([]pixel.Pixel, error) {
	if firstChannel < 1 || firstChannel > ChannelsPerUniverse {
		return nil, fmt.Errorf("assign addresses: first channel %d not in [1,%d]: %w", firstChannel, ChannelsPerUniverse, ErrInvalidAddress)
	}
	if pixelCount < 0 {
		return nil, fmt.Errorf("assign addresses: negative pixel count %d: %w", pixelCount, ErrInvalidAddress)
	}
	if room := Capacity(firstChannel); pixelCount > room {
		return nil, fmt.Errorf("assign addresses: %d pixels from channel %d, room for %d: %w", pixelCount, firstChannel, room, ErrAddressOverflow)
	}

	out := make([]pixel.Pixel, pixelCount)
	c := cursor{universe: 1, channel: firstChannel}
	for i := range out {
		out[i] = c.next()
	}
	if pixelCount > 0 {
		logging.Logger().Debug("addresses assigned",
			"pixels", pixelCount,
			"first", out[0].String(),
			"last", out[pixelCount-1].String())
	}
	return out, nil
}
