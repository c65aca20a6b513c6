package models

import (
	"math"

	"github.com/paulmach/orb"
)

// Location represents a geographic location in decimal degrees
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinate is a labeled location parsed from one line of the coordinates file
type Coordinate struct {
	Label    string   `json:"label"`
	Location Location `json:"location"`
}

// DepthFeature is one feature of the bathymetry dataset
type DepthFeature struct {
	Depth      float64      `json:"depth"`
	ObjectType string       `json:"objectType"`
	Geometry   orb.Geometry `json:"-"`
}

// HasDepth reports whether the feature carried a numeric depth attribute
func (f DepthFeature) HasDepth() bool {
	return !math.IsNaN(f.Depth)
}
