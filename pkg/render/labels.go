package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kass/lakemap/pkg/bathymetry"
	"github.com/kass/lakemap/pkg/models"
)

// haloOffsets are the unit directions the outline copies are drawn at
var haloOffsets = []vg.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// labels draws marker names above their points in white with a black
// outline so they stay readable on every band color. Overlapping labels
// are not moved apart.
type labels struct {
	coords []models.Coordinate
	style  text.Style
	halo   color.Color
	offset vg.Length
	stroke vg.Length
}

func newLabels(coords []models.Coordinate) *labels {
	return &labels{
		coords: coords,
		style: text.Style{
			Color:   color.White,
			Font:    font.From(plot.DefaultFont, vg.Points(10)),
			XAlign:  text.XCenter,
			YAlign:  text.YBottom,
			Handler: plot.DefaultTextHandler,
		},
		halo:   color.Black,
		offset: vg.Points(10),
		stroke: vg.Points(1),
	}
}

// Plot implements plot.Plotter
func (l *labels) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)

	halo := l.style
	halo.Color = l.halo

	for _, coord := range l.coords {
		at := vg.Point{
			X: trX(coord.Location.Lon),
			Y: trY(coord.Location.Lat) + l.offset,
		}
		for _, d := range haloOffsets {
			c.FillText(halo, at.Add(d.Scale(l.stroke)), coord.Label)
		}
		c.FillText(l.style, at, coord.Label)
	}
}

// swatch is a legend thumbnail filled with a single band color
type swatch struct {
	color color.Color
}

// Thumbnail implements plot.Thumbnailer
func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonXY(pts))
}

// addLegend lists one swatch per depth band under a "Depth" heading
func addLegend(p *plot.Plot, bands bathymetry.Bands) {
	p.Legend.Top = true
	p.Legend.Add("Depth")
	for _, b := range bands {
		p.Legend.Add(b.Label(), swatch{color: b.Color})
	}
}
