package render

import (
	"image/color"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// featurePlotters turns a geometry into filled polygons and outlined lines.
// Points have no area or length and draw nothing.
func featurePlotters(g orb.Geometry, fill color.Color, outline draw.LineStyle) ([]plot.Plotter, error) {
	switch geom := g.(type) {
	case orb.Polygon:
		rings := polygonXYs(geom)
		if len(rings) == 0 {
			return nil, nil
		}
		poly, err := newPolygon(rings, fill, outline)
		if err != nil {
			return nil, err
		}
		return []plot.Plotter{poly}, nil
	case orb.MultiPolygon:
		var out []plot.Plotter
		for _, pg := range geom {
			layer, err := featurePlotters(pg, fill, outline)
			if err != nil {
				return nil, err
			}
			out = append(out, layer...)
		}
		return out, nil
	case orb.Ring:
		return featurePlotters(orb.Polygon{geom}, fill, outline)
	case orb.LineString:
		if len(geom) < 2 {
			return nil, nil
		}
		line, err := plotter.NewLine(lineXYs(geom))
		if err != nil {
			return nil, err
		}
		line.LineStyle = outline
		return []plot.Plotter{line}, nil
	case orb.MultiLineString:
		var out []plot.Plotter
		for _, ls := range geom {
			layer, err := featurePlotters(ls, fill, outline)
			if err != nil {
				return nil, err
			}
			out = append(out, layer...)
		}
		return out, nil
	case orb.Collection:
		var out []plot.Plotter
		for _, sub := range geom {
			layer, err := featurePlotters(sub, fill, outline)
			if err != nil {
				return nil, err
			}
			out = append(out, layer...)
		}
		return out, nil
	}
	return nil, nil
}

func newPolygon(rings []plotter.XYer, fill color.Color, outline draw.LineStyle) (*plotter.Polygon, error) {
	poly, err := plotter.NewPolygon(rings...)
	if err != nil {
		return nil, err
	}
	poly.Color = fill
	poly.LineStyle = outline
	return poly, nil
}

func polygonXYs(p orb.Polygon) []plotter.XYer {
	rings := make([]plotter.XYer, 0, len(p))
	for _, r := range p {
		if len(r) == 0 {
			continue
		}
		rings = append(rings, ringXYs(r))
	}
	return rings
}

func ringXYs(r orb.Ring) plotter.XYs {
	return lineXYs(orb.LineString(r))
}

func lineXYs(ls orb.LineString) plotter.XYs {
	xys := make(plotter.XYs, len(ls))
	for i, pt := range ls {
		xys[i] = plotter.XY{X: pt.X(), Y: pt.Y()}
	}
	return xys
}
