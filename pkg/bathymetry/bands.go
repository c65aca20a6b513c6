package bathymetry

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNoBands        = errors.New("bathymetry: at least one depth band is required")
	ErrBandMismatch   = errors.New("bathymetry: depth and color counts differ")
	ErrBandsUnordered = errors.New("bathymetry: band depths must be strictly ascending")
	ErrBadColor       = errors.New("bathymetry: invalid hex color")
)

// Band is a depth breakpoint in meters and the color used to paint it
type Band struct {
	Depth float64
	Color color.NRGBA
}

// Label returns the legend text for the band, e.g. "13m"
func (b Band) Label() string {
	return strconv.FormatFloat(b.Depth, 'f', -1, 64) + "m"
}

// Bands is an ordered list of depth bands, shallowest first
type Bands []Band

// DefaultBands returns the five bands of the Isesjøen survey
func DefaultBands() Bands {
	return Bands{
		{Depth: 3, Color: RGB(0.7, 0.9, 1.0)},
		{Depth: 8, Color: RGB(0.6, 0.8, 1.0)},
		{Depth: 13, Color: RGB(0.5, 0.7, 0.9)},
		{Depth: 18, Color: RGB(0.3, 0.5, 0.8)},
		{Depth: 23, Color: RGB(0.1, 0.2, 0.5)},
	}
}

// NewBands pairs depths with hex colors and validates the result
func NewBands(depths []float64, colors []string) (Bands, error) {
	if len(depths) == 0 {
		return nil, ErrNoBands
	}
	if len(depths) != len(colors) {
		return nil, fmt.Errorf("%w: %d depths, %d colors", ErrBandMismatch, len(depths), len(colors))
	}

	bands := make(Bands, len(depths))
	for i, d := range depths {
		if i > 0 && d <= depths[i-1] {
			return nil, fmt.Errorf("%w: %v after %v", ErrBandsUnordered, d, depths[i-1])
		}
		c, err := ParseColor(colors[i])
		if err != nil {
			return nil, err
		}
		bands[i] = Band{Depth: d, Color: c}
	}
	return bands, nil
}

// Nearest returns the index of the band whose depth is closest to depth.
// On an exact tie the shallower band wins.
func (b Bands) Nearest(depth float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, band := range b {
		if d := math.Abs(band.Depth - depth); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ColorFor returns the color of the band nearest to depth
func (b Bands) ColorFor(depth float64) color.NRGBA {
	return b[b.Nearest(depth)].Color
}

// RGB builds an opaque color from unit-interval components
func RGB(r, g, b float64) color.NRGBA {
	return color.NRGBA{R: unit(r), G: unit(g), B: unit(b), A: 0xff}
}

func unit(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA"
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
