// Package render draws a bathymetric lake map with labeled markers.
//
// The figure is composed bottom-up: the shoreline ring filled with the
// shallowest band, depth contours from shallow to deep so deeper areas
// cover shallower ones, island borders filled with the land color, the
// grid, and finally the markers and their labels.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kass/lakemap/pkg/bathymetry"
	"github.com/kass/lakemap/pkg/models"
)

// Options controls the look of the figure
type Options struct {
	Title      string
	Width      vg.Length
	Height     vg.Length
	Background color.Color
	Marker     color.Color
	Bands      bathymetry.Bands
}

// DefaultOptions returns the Isesjøen map style
func DefaultOptions() Options {
	return Options{
		Title:      "Isesjøen - Water Depth Contours",
		Width:      15 * vg.Inch,
		Height:     15 * vg.Inch,
		Background: color.NRGBA{R: 0x90, G: 0xA9, B: 0x55, A: 0xff},
		Marker:     color.NRGBA{R: 0xD3, G: 0x5F, B: 0x5F, A: 0xff},
		Bands:      bathymetry.DefaultBands(),
	}
}

// Stats counts what went into a figure
type Stats struct {
	Shorelines        int
	SkippedShorelines int
	Contours          int
	Islands           int
	Markers           int
}

// Figure is a composed map ready to be written out
type Figure struct {
	Plot   *plot.Plot
	Width  vg.Length
	Height vg.Length
	Stats  Stats
}

// Save writes the figure to path; the image format follows the extension
func (f *Figure) Save(path string) error {
	if err := f.Plot.Save(f.Width, f.Height, path); err != nil {
		return fmt.Errorf("failed to save figure: %w", err)
	}
	return nil
}

// Encode writes the figure to w in the given format ("png", "svg", "pdf", ...)
func (f *Figure) Encode(w io.Writer, format string) error {
	wt, err := f.Plot.WriterTo(f.Width, f.Height, format)
	if err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}
	return nil
}

var (
	black    = color.Black
	gridLine = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 77}
)

// Render composes the depth map of ds with coords marked on top
func Render(ds *bathymetry.Dataset, coords []models.Coordinate, opts Options) (*Figure, error) {
	if len(opts.Bands) == 0 {
		return nil, bathymetry.ErrNoBands
	}

	p := plot.New()
	p.BackgroundColor = opts.Background
	p.Title.Text = opts.Title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	fig := &Figure{Plot: p, Width: opts.Width, Height: opts.Height}

	layers, err := depthLayers(ds, opts, &fig.Stats)
	if err != nil {
		return nil, err
	}
	p.Add(layers...)
	fitBound(p, ds)

	p.Add(newGrid())

	addLegend(p, opts.Bands)

	if len(coords) > 0 {
		if err := addMarkers(p, coords, opts.Marker); err != nil {
			return nil, err
		}
		fig.Stats.Markers = len(coords)
	}

	return fig, nil
}

// depthLayers returns the geometry plotters of ds in drawing order:
// shoreline rings, contours from shallow to deep, then islands.
func depthLayers(ds *bathymetry.Dataset, opts Options, stats *Stats) ([]plot.Plotter, error) {
	var layers []plot.Plotter

	rings, skipped := ds.ShorelineRings()
	stats.SkippedShorelines = skipped
	for _, ring := range rings {
		poly, err := newPolygon([]plotter.XYer{ringXYs(ring)}, opts.Bands[0].Color, edge(black, 0.5))
		if err != nil {
			return nil, fmt.Errorf("failed to draw shoreline: %w", err)
		}
		layers = append(layers, poly)
		stats.Shorelines++
	}

	for _, f := range ds.Contours() {
		c := opts.Bands.ColorFor(f.Depth)
		layer, err := featurePlotters(f.Geometry, c, edge(c, 1))
		if err != nil {
			return nil, fmt.Errorf("failed to draw %vm contour: %w", f.Depth, err)
		}
		layers = append(layers, layer...)
		stats.Contours++
	}

	for _, f := range ds.Islands() {
		layer, err := featurePlotters(f.Geometry, opts.Background, edge(black, 0.5))
		if err != nil {
			return nil, fmt.Errorf("failed to draw island: %w", err)
		}
		layers = append(layers, layer...)
		stats.Islands++
	}

	return layers, nil
}

// fitBound widens the axes to the whole dataset, including features that
// were not drawn.
func fitBound(p *plot.Plot, ds *bathymetry.Dataset) {
	if len(ds.Features) == 0 {
		return
	}
	b := ds.Bound()
	p.X.Min = math.Min(p.X.Min, b.Min.X())
	p.X.Max = math.Max(p.X.Max, b.Max.X())
	p.Y.Min = math.Min(p.Y.Min, b.Min.Y())
	p.Y.Max = math.Max(p.Y.Max, b.Max.Y())
}

func addMarkers(p *plot.Plot, coords []models.Coordinate, fill color.Color) error {
	xys := make(plotter.XYs, len(coords))
	for i, c := range coords {
		xys[i] = plotter.XY{X: c.Location.Lon, Y: c.Location.Lat}
	}

	dots, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("failed to draw markers: %w", err)
	}
	dots.GlyphStyle = draw.GlyphStyle{Color: fill, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}

	rims, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("failed to draw markers: %w", err)
	}
	rims.GlyphStyle = draw.GlyphStyle{Color: black, Radius: vg.Points(3), Shape: draw.RingGlyph{}}

	p.Add(dots, rims, newLabels(coords))
	return nil
}

func newGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	grid.Vertical = dashed(gridLine)
	grid.Horizontal = dashed(gridLine)
	return grid
}

func edge(c color.Color, width float64) draw.LineStyle {
	return draw.LineStyle{Color: c, Width: vg.Points(width)}
}

func dashed(c color.Color) draw.LineStyle {
	return draw.LineStyle{
		Color:  c,
		Width:  vg.Points(0.5),
		Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
	}
}
