// Package rtree indexes the polygons of a depth dataset in an R-Tree so the
// depth under a marked location can be looked up without scanning every
// feature.
package rtree

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/kass/lakemap/pkg/bathymetry"
	"github.com/kass/lakemap/pkg/models"
)

const (
	tolerance   = 1e-9
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// Zone classifies what lies under a location
type Zone int

const (
	ZoneOutside Zone = iota
	ZoneWater
	ZoneIsland
)

func (z Zone) String() string {
	switch z {
	case ZoneWater:
		return "water"
	case ZoneIsland:
		return "island"
	default:
		return "outside"
	}
}

type itemKind int

const (
	kindShoreline itemKind = iota
	kindContour
	kindIsland
)

// Sounding is the result of a depth lookup. Band and Label are only
// meaningful in ZoneWater.
type Sounding struct {
	Zone  Zone
	Depth float64
	Band  int
	Label string
}

// spatialItem wraps an area polygon to implement rtreego.Spatial
type spatialItem struct {
	kind  itemKind
	depth float64
	area  orb.MultiPolygon
	rect  *rtreego.Rect
}

var _ rtreego.Spatial = (*spatialItem)(nil)

func (si *spatialItem) Bounds() *rtreego.Rect {
	return si.rect
}

// DepthIndex answers "how deep is it here" for a single dataset
type DepthIndex struct {
	tree  *rtreego.Rtree
	bands bathymetry.Bands
	count int
}

// NewDepthIndex indexes the shoreline rings, contour polygons and island
// polygons of ds. Open line features cannot contain a point and are left
// out.
func NewDepthIndex(ds *bathymetry.Dataset, bands bathymetry.Bands) *DepthIndex {
	idx := &DepthIndex{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		bands: bands,
	}

	rings, _ := ds.ShorelineRings()
	for _, ring := range rings {
		idx.insert(kindShoreline, 0, orb.MultiPolygon{{ring}})
	}
	for _, f := range ds.Contours() {
		idx.insert(kindContour, f.Depth, areaOf(f.Geometry))
	}
	for _, f := range ds.Islands() {
		idx.insert(kindIsland, 0, areaOf(f.Geometry))
	}

	return idx
}

func (d *DepthIndex) insert(kind itemKind, depth float64, area orb.MultiPolygon) {
	if len(area) == 0 {
		return
	}
	rect, err := toRect(area.Bound())
	if err != nil {
		return
	}
	d.tree.Insert(&spatialItem{kind: kind, depth: depth, area: area, rect: rect})
	d.count++
}

// DepthAt classifies loc. Islands take precedence over water; among the
// contours containing loc the deepest wins; inside a shoreline ring but
// outside every contour counts as the shallowest band.
func (d *DepthIndex) DepthAt(loc models.Location) Sounding {
	pt := orb.Point{loc.Lon, loc.Lat}
	results := d.tree.SearchIntersect(rtreego.Point{pt[0], pt[1]}.ToRect(tolerance))

	var (
		inShore   bool
		inContour bool
		deepest   float64
	)
	for _, result := range results {
		item, ok := result.(*spatialItem)
		if !ok || !planar.MultiPolygonContains(item.area, pt) {
			continue
		}

		switch item.kind {
		case kindIsland:
			return Sounding{Zone: ZoneIsland, Band: -1, Label: ZoneIsland.String()}
		case kindShoreline:
			inShore = true
		case kindContour:
			if !inContour || item.depth > deepest {
				deepest = item.depth
			}
			inContour = true
		}
	}

	switch {
	case inContour:
		band := d.bands.Nearest(deepest)
		return Sounding{Zone: ZoneWater, Depth: deepest, Band: band, Label: d.bands[band].Label()}
	case inShore:
		return Sounding{Zone: ZoneWater, Band: 0, Label: d.bands[0].Label()}
	default:
		return Sounding{Zone: ZoneOutside, Band: -1, Label: ZoneOutside.String()}
	}
}

// Count returns the number of indexed areas
func (d *DepthIndex) Count() int {
	return d.count
}

// areaOf returns the polygonal area of g; closed lines count as rings
func areaOf(g orb.Geometry) orb.MultiPolygon {
	switch geom := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{geom}
	case orb.MultiPolygon:
		return geom
	case orb.Ring:
		return orb.MultiPolygon{{geom}}
	case orb.LineString:
		if closed(geom) {
			return orb.MultiPolygon{{orb.Ring(geom)}}
		}
	case orb.MultiLineString:
		var mp orb.MultiPolygon
		for _, ls := range geom {
			if closed(ls) {
				mp = append(mp, orb.Polygon{orb.Ring(ls)})
			}
		}
		return mp
	}
	return nil
}

func closed(ls orb.LineString) bool {
	return len(ls) > 3 && ls[0] == ls[len(ls)-1]
}

func toRect(b orb.Bound) (*rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{b.Max[0] - b.Min[0] + tolerance, b.Max[1] - b.Min[1] + tolerance},
	)
}
