package bathymetry

import (
	"github.com/paulmach/orb"
)

// ShorelineRing closes a shoreline that the survey delivers as a
// MultiLineString of exactly two parts: part 0, then part 1, then the first
// point of part 0 again. Any other shape is reported as not ok; there is no
// fallback for shorelines split differently.
func ShorelineRing(g orb.Geometry) (orb.Ring, bool) {
	mls, ok := g.(orb.MultiLineString)
	if !ok || len(mls) != 2 || len(mls[0]) == 0 {
		return nil, false
	}

	ring := make(orb.Ring, 0, len(mls[0])+len(mls[1])+1)
	ring = append(ring, mls[0]...)
	ring = append(ring, mls[1]...)
	ring = append(ring, mls[0][0])
	return ring, true
}

// ShorelineRings returns the closed rings of every shoreline feature that
// fits the two-part shape, and how many shoreline features did not.
func (d *Dataset) ShorelineRings() (rings []orb.Ring, skipped int) {
	for _, f := range d.Shorelines() {
		ring, ok := ShorelineRing(f.Geometry)
		if !ok {
			skipped++
			continue
		}
		rings = append(rings, ring)
	}
	return rings, skipped
}
