// Package dome describes a physical geodesic dome: its specification,
// the closed-form face counts that follow from it, and the built dome with
// the pixel tree laid over its lighted faces.
package dome

import (
	"errors"
	"fmt"
	"math"

	"github.com/idralyuk/GradienTea-sub001/internal/geodesic"
)

// LayersPerFrequency is the number of face rings per unit of frequency on a
// full sphere: F rings in each cap plus F in the middle band.
const LayersPerFrequency = 3

// icosaChord is the edge length of an icosahedron inscribed in the unit sphere.
var icosaChord = 4 / math.Sqrt(10+2*math.Sqrt(5))

// Spec is the physical description of a dome. Lengths are in feet.
type Spec struct {
	Frequency      int     `mapstructure:"frequency" json:"frequency"`
	TotalLayers    int     `mapstructure:"total_layers" json:"total_layers"`
	LightedLayers  int     `mapstructure:"lighted_layers" json:"lighted_layers"`
	Radius         float64 `mapstructure:"radius" json:"radius"`
	MaxPanelHeight float64 `mapstructure:"max_panel_height" json:"max_panel_height"`
	PanelThickness float64 `mapstructure:"panel_thickness" json:"panel_thickness"`
}

// Validate checks every field and reports all violations joined together.
func (s Spec) Validate() error {
	var errs []error
	if s.Frequency < 1 || s.Frequency > geodesic.MaxFrequency {
		errs = append(errs, fmt.Errorf("frequency %d not in [1,%d]: %w", s.Frequency, geodesic.MaxFrequency, ErrInvalidSpec))
	}
	if s.TotalLayers < 0 || (s.Frequency >= 1 && s.TotalLayers > s.MaxLayers()) {
		errs = append(errs, fmt.Errorf("total layers %d not in [0,%d]: %w", s.TotalLayers, s.MaxLayers(), ErrInvalidSpec))
	}
	if s.LightedLayers < 0 || s.LightedLayers > s.TotalLayers {
		errs = append(errs, fmt.Errorf("lighted layers %d not in [0,%d]: %w", s.LightedLayers, s.TotalLayers, ErrInvalidSpec))
	}
	if !(s.Radius > 0) {
		errs = append(errs, fmt.Errorf("radius %g must be positive: %w", s.Radius, ErrInvalidSpec))
	}
	if !(s.MaxPanelHeight > 0) {
		errs = append(errs, fmt.Errorf("max panel height %g must be positive: %w", s.MaxPanelHeight, ErrInvalidSpec))
	}
	if !(s.PanelThickness > 0) {
		errs = append(errs, fmt.Errorf("panel thickness %g must be positive: %w", s.PanelThickness, ErrInvalidSpec))
	}
	return errors.Join(errs...)
}

// MaxLayers is the number of rings on the full sphere.
func (s Spec) MaxLayers() int { return LayersPerFrequency * s.Frequency }

// PanelSideLength is the nominal edge of one triangular panel.
func (s Spec) PanelSideLength() float64 {
	return s.Radius * icosaChord / float64(s.Frequency)
}

// PanelHeight is the altitude of an equilateral panel with PanelSideLength.
func (s Spec) PanelHeight() float64 {
	return s.PanelSideLength() * math.Sqrt(3) / 2
}

// FitsPanelHeight reports whether panels stay within MaxPanelHeight.
func (s Spec) FitsPanelHeight() bool {
	return s.PanelHeight() <= s.MaxPanelHeight
}

// AveragePanelArea is the sphere area shared evenly by all 20F² faces.
func (s Spec) AveragePanelArea() float64 {
	f := float64(s.Frequency)
	return 4 * math.Pi * s.Radius * s.Radius / (20 * f * f)
}

// InnerRadius is the radius at the inside surface of the panels.
func (s Spec) InnerRadius() float64 {
	return s.Radius - s.PanelThickness
}

// PredictedFaceCount returns how many faces the first layers rings hold,
// without building any geometry. Layers are split into the top cap, the
// middle band and the bottom cap, each a quadratic in layers and frequency:
//
//	top    (L ≤ F):   5L²
//	middle (L ≤ 2F):  5F² + 10F(L−F)
//	bottom (L ≤ 3F):  15F² + 5m(2F−m), m = L−2F
func (s Spec) PredictedFaceCount(layers int) (int, error) {
	return PredictedFaceCount(s.Frequency, layers)
}

// PredictedFaceCount is the Spec-free form of Spec.PredictedFaceCount.
func PredictedFaceCount(frequency, layers int) (int, error) {
	if frequency < 1 {
		return 0, fmt.Errorf("predict faces: frequency %d: %w", frequency, ErrInvalidSpec)
	}
	f := frequency
	if layers < 0 || layers > LayersPerFrequency*f {
		return 0, fmt.Errorf("predict faces: layers %d not in [0,%d]: %w", layers, LayersPerFrequency*f, ErrLayerOutOfRange)
	}
	switch {
	case layers <= f:
		return 5 * layers * layers, nil
	case layers <= 2*f:
		return 5*f*f + 10*f*(layers-f), nil
	default:
		m := layers - 2*f
		return 15*f*f + 5*m*(2*f-m), nil
	}
}

// PredictedRingSize returns the number of faces in ring layer (0-based).
func PredictedRingSize(frequency, layer int) (int, error) {
	hi, err := PredictedFaceCount(frequency, layer+1)
	if err != nil {
		return 0, err
	}
	lo, err := PredictedFaceCount(frequency, layer)
	if err != nil {
		return 0, err
	}
	return hi - lo, nil
}

// FrequencyForPanelHeight returns the smallest frequency whose panels on a
// dome of the given radius are no taller than maxPanelHeight.
func FrequencyForPanelHeight(radius, maxPanelHeight float64) (int, error) {
	if !(radius > 0) || !(maxPanelHeight > 0) {
		return 0, fmt.Errorf("frequency for radius %g, panel height %g: %w", radius, maxPanelHeight, ErrInvalidSpec)
	}
	f := int(math.Ceil(radius * icosaChord * math.Sqrt(3) / 2 / maxPanelHeight))
	if f < 1 {
		f = 1
	}
	if f > geodesic.MaxFrequency {
		return 0, fmt.Errorf("frequency %d for panel height %g exceeds %d: %w", f, maxPanelHeight, geodesic.MaxFrequency, ErrInvalidSpec)
	}
	return f, nil
}
