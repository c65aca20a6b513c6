package bathymetry

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearest(t *testing.T) {
	bands := DefaultBands()

	testCases := []struct {
		name     string
		depth    float64
		expected int
	}{
		{"exact first", 3, 0},
		{"shallower than all", 0.5, 0},
		{"closer to 8 than 13", 10, 1},
		{"tie between 8 and 13", 10.5, 1},
		{"tie between 3 and 8", 5.5, 0},
		{"just past tie", 10.51, 2},
		{"exact 18", 18, 3},
		{"deeper than all", 40, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, bands.Nearest(tc.depth))
		})
	}
}

func TestDefaultBandColors(t *testing.T) {
	bands := DefaultBands()
	require.Len(t, bands, 5)

	assert.Equal(t, color.NRGBA{R: 179, G: 230, B: 255, A: 255}, bands[0].Color)
	assert.Equal(t, color.NRGBA{R: 26, G: 51, B: 128, A: 255}, bands[4].Color)
	assert.Equal(t, bands[1].Color, bands.ColorFor(10.5))
}

func TestBandLabel(t *testing.T) {
	assert.Equal(t, "3m", Band{Depth: 3}.Label())
	assert.Equal(t, "2.5m", Band{Depth: 2.5}.Label())
}

func TestNewBands(t *testing.T) {
	bands, err := NewBands(
		[]float64{3, 8, 13, 18, 23},
		[]string{"#B3E6FF", "#99CCFF", "#80B3E6", "#4D80CC", "#1A3380"},
	)
	require.NoError(t, err)
	assert.Equal(t, DefaultBands(), bands)
}

func TestNewBandsErrors(t *testing.T) {
	testCases := []struct {
		name   string
		depths []float64
		colors []string
		want   error
	}{
		{"empty", nil, nil, ErrNoBands},
		{"count mismatch", []float64{1, 2}, []string{"#000000"}, ErrBandMismatch},
		{"unordered", []float64{5, 3}, []string{"#000000", "#ffffff"}, ErrBandsUnordered},
		{"duplicate", []float64{3, 3}, []string{"#000000", "#ffffff"}, ErrBandsUnordered},
		{"bad color", []float64{3}, []string{"blue"}, ErrBadColor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBands(tc.depths, tc.colors)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#90A955")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x90, G: 0xA9, B: 0x55, A: 0xff}, c)

	c, err = ParseColor("d35f5f80")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xd3, G: 0x5f, B: 0x5f, A: 0x80}, c)

	_, err = ParseColor("#12345")
	assert.ErrorIs(t, err, ErrBadColor)
	_, err = ParseColor("#zzzzzz")
	assert.ErrorIs(t, err, ErrBadColor)
}
