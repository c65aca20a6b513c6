package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kass/lakemap/pkg/bathymetry"
	"github.com/kass/lakemap/pkg/models"
)

func square(lo, hi float64) orb.Polygon {
	return orb.Polygon{{{lo, lo}, {hi, lo}, {hi, hi}, {lo, hi}, {lo, lo}}}
}

func testLake() *bathymetry.Dataset {
	attrs := bathymetry.DefaultAttributes()
	return bathymetry.NewDataset([]models.DepthFeature{
		{Depth: 0, ObjectType: attrs.ShorelineType, Geometry: orb.MultiLineString{
			{{10.70, 59.20}, {10.80, 59.20}, {10.80, 59.25}},
			{{10.70, 59.25}},
		}},
		{Depth: 0, ObjectType: attrs.ShorelineType, Geometry: orb.LineString{{10.7, 59.2}, {10.8, 59.2}}},
		{Depth: 13, ObjectType: "Dybdekurve", Geometry: orb.Polygon{{{10.74, 59.22}, {10.76, 59.22}, {10.76, 59.23}, {10.74, 59.22}}}},
		{Depth: 3, ObjectType: "Dybdekurve", Geometry: orb.MultiPolygon{
			{{{10.71, 59.21}, {10.79, 59.21}, {10.79, 59.24}, {10.71, 59.21}}},
		}},
		{Depth: 8, ObjectType: "Dybdekurve", Geometry: orb.LineString{{10.72, 59.21}, {10.78, 59.24}}},
		{Depth: 0, ObjectType: attrs.IslandType, Geometry: orb.Polygon{{{10.72, 59.23}, {10.73, 59.23}, {10.73, 59.24}, {10.72, 59.23}}}},
	}, attrs)
}

func testCoords() []models.Coordinate {
	return []models.Coordinate{
		{Label: "Dock", Location: models.Location{Lat: 59.2083333, Lon: 10.7543056}},
		{Label: "Reef", Location: models.Location{Lat: 59.22, Lon: 10.76}},
	}
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width = 4 * vg.Inch
	opts.Height = 4 * vg.Inch
	return opts
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "Isesjøen - Water Depth Contours", opts.Title)
	assert.Equal(t, 15*vg.Inch, opts.Width)
	assert.Equal(t, color.NRGBA{R: 0x90, G: 0xA9, B: 0x55, A: 0xff}, opts.Background)
	assert.Len(t, opts.Bands, 5)
}

func TestRender(t *testing.T) {
	fig, err := Render(testLake(), testCoords(), smallOptions())
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Shorelines:        1,
		SkippedShorelines: 1,
		Contours:          3,
		Islands:           1,
		Markers:           2,
	}, fig.Stats)

	p := fig.Plot
	assert.Equal(t, "Isesjøen - Water Depth Contours", p.Title.Text)
	assert.Equal(t, "Longitude", p.X.Label.Text)
	assert.Equal(t, "Latitude", p.Y.Label.Text)
	assert.InDelta(t, 10.70, p.X.Min, 1e-9)
	assert.InDelta(t, 10.80, p.X.Max, 1e-9)
	assert.InDelta(t, 59.20, p.Y.Min, 1e-9)
	assert.InDelta(t, 59.25, p.Y.Max, 1e-9)
}

func TestDepthLayers(t *testing.T) {
	opts := smallOptions()
	var stats Stats
	layers, err := depthLayers(testLake(), opts, &stats)
	require.NoError(t, err)
	require.Len(t, layers, 5)

	// shoreline ring under everything
	shore, ok := layers[0].(*plotter.Polygon)
	require.True(t, ok)
	assert.Equal(t, opts.Bands[0].Color, shore.Color)
	assert.Equal(t, edge(black, 0.5), shore.LineStyle)

	// contours shallow to deep: 3m polygon, 8m line, 13m polygon
	shallow, ok := layers[1].(*plotter.Polygon)
	require.True(t, ok)
	assert.Equal(t, opts.Bands[0].Color, shallow.Color)
	assert.Equal(t, edge(opts.Bands[0].Color, 1), shallow.LineStyle)

	mid, ok := layers[2].(*plotter.Line)
	require.True(t, ok)
	assert.Equal(t, edge(opts.Bands[1].Color, 1), mid.LineStyle)

	deep, ok := layers[3].(*plotter.Polygon)
	require.True(t, ok)
	assert.Equal(t, opts.Bands[2].Color, deep.Color)
	assert.Equal(t, edge(opts.Bands[2].Color, 1), deep.LineStyle)

	// island on top, filled with land
	island, ok := layers[4].(*plotter.Polygon)
	require.True(t, ok)
	assert.Equal(t, opts.Background, island.Color)
	assert.Equal(t, edge(black, 0.5), island.LineStyle)

	assert.Equal(t, Stats{Shorelines: 1, SkippedShorelines: 1, Contours: 3, Islands: 1}, stats)
}

func TestRenderFitsDatasetBound(t *testing.T) {
	attrs := bathymetry.DefaultAttributes()
	ds := bathymetry.NewDataset([]models.DepthFeature{
		{Depth: 0, ObjectType: attrs.ShorelineType, Geometry: orb.LineString{{10.6, 59.1}, {10.9, 59.3}}},
		{Depth: 5, ObjectType: "Dybdekurve", Geometry: orb.Polygon{{{10.7, 59.15}, {10.8, 59.15}, {10.8, 59.25}, {10.7, 59.15}}}},
	}, attrs)

	fig, err := Render(ds, nil, smallOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, fig.Stats.SkippedShorelines)

	p := fig.Plot
	assert.InDelta(t, 10.6, p.X.Min, 1e-9)
	assert.InDelta(t, 10.9, p.X.Max, 1e-9)
	assert.InDelta(t, 59.1, p.Y.Min, 1e-9)
	assert.InDelta(t, 59.3, p.Y.Max, 1e-9)
}

func TestGridStyle(t *testing.T) {
	grid := newGrid()
	want := color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 77}
	assert.Equal(t, want, grid.Vertical.Color)
	assert.Equal(t, want, grid.Horizontal.Color)
	assert.NotEmpty(t, grid.Vertical.Dashes)
}

func TestRenderEncodesPNG(t *testing.T) {
	fig, err := Render(testLake(), testCoords(), smallOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fig.Encode(&buf, "png"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestRenderSave(t *testing.T) {
	fig, err := Render(testLake(), nil, smallOptions())
	require.NoError(t, err)
	assert.Zero(t, fig.Stats.Markers)

	path := filepath.Join(t.TempDir(), "map.png")
	require.NoError(t, fig.Save(path))
	assert.FileExists(t, path)

	assert.Error(t, fig.Save(filepath.Join(t.TempDir(), "map.unknown")))
}

func TestRenderRequiresBands(t *testing.T) {
	opts := smallOptions()
	opts.Bands = nil
	_, err := Render(testLake(), testCoords(), opts)
	assert.ErrorIs(t, err, bathymetry.ErrNoBands)
}

func TestRenderRejectsBadGeometry(t *testing.T) {
	ds := bathymetry.NewDataset([]models.DepthFeature{
		{Depth: 5, ObjectType: "Dybdekurve", Geometry: square(0, math.Inf(1))},
	}, bathymetry.DefaultAttributes())

	_, err := Render(ds, nil, smallOptions())
	assert.Error(t, err)
}

func TestFeaturePlotters(t *testing.T) {
	fill := color.White
	outline := draw.LineStyle{Color: color.Black, Width: vg.Points(1)}

	testCases := []struct {
		name  string
		geom  orb.Geometry
		count int
	}{
		{"polygon", square(0, 1), 1},
		{"empty polygon", orb.Polygon{}, 0},
		{"multipolygon", orb.MultiPolygon{square(0, 1), square(2, 3)}, 2},
		{"ring", orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, 1},
		{"line", orb.LineString{{0, 0}, {1, 1}}, 1},
		{"degenerate line", orb.LineString{{0, 0}}, 0},
		{"multiline", orb.MultiLineString{{{0, 0}, {1, 1}}, {{2, 2}, {3, 3}}}, 2},
		{"collection", orb.Collection{square(0, 1), orb.LineString{{0, 0}, {1, 1}}, orb.Point{1, 1}}, 2},
		{"point", orb.Point{0, 0}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			layer, err := featurePlotters(tc.geom, fill, outline)
			require.NoError(t, err)
			assert.Len(t, layer, tc.count)
		})
	}
}

func TestFeaturePlottersStyles(t *testing.T) {
	outline := draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}

	layer, err := featurePlotters(square(0, 1), color.White, outline)
	require.NoError(t, err)
	poly, ok := layer[0].(*plotter.Polygon)
	require.True(t, ok)
	assert.Equal(t, color.White, poly.Color)
	assert.Equal(t, outline, poly.LineStyle)

	layer, err = featurePlotters(orb.LineString{{0, 0}, {1, 1}}, color.White, outline)
	require.NoError(t, err)
	line, ok := layer[0].(*plotter.Line)
	require.True(t, ok)
	assert.Equal(t, outline, line.LineStyle)
	assert.Nil(t, line.FillColor)
}

func TestLineXYs(t *testing.T) {
	xys := lineXYs(orb.LineString{{10.7, 59.2}, {10.8, 59.25}})
	assert.Equal(t, plotter.XYs{{X: 10.7, Y: 59.2}, {X: 10.8, Y: 59.25}}, xys)
}
