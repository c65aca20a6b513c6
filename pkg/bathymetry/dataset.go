// Package bathymetry reads lake depth datasets and classifies their
// features into depth bands.
package bathymetry

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/kass/lakemap/pkg/models"
)

// Attributes names the feature properties and type tags of a dataset
type Attributes struct {
	Depth         string
	Type          string
	ShorelineType string
	IslandType    string
}

// DefaultAttributes matches the Norwegian lake depth datasets
func DefaultAttributes() Attributes {
	return Attributes{
		Depth:         "dybde_m",
		Type:          "objektType",
		ShorelineType: "InnsjoKant",
		IslandType:    "ØyInnsjøGrense",
	}
}

// Dataset is a read-only set of depth features
type Dataset struct {
	Features []models.DepthFeature
	attrs    Attributes
}

// NewDataset wraps already decoded features
func NewDataset(features []models.DepthFeature, attrs Attributes) *Dataset {
	return &Dataset{Features: features, attrs: attrs}
}

// LoadFile reads a GeoJSON FeatureCollection from path
func LoadFile(path string, attrs Attributes) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Load(f, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ds, nil
}

// Load decodes a GeoJSON FeatureCollection from r
func Load(r io.Reader, attrs Attributes) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode feature collection: %w", err)
	}

	features := make([]models.DepthFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		features = append(features, models.DepthFeature{
			Depth:      depthValue(f.Properties[attrs.Depth]),
			ObjectType: f.Properties.MustString(attrs.Type, ""),
			Geometry:   f.Geometry,
		})
	}

	return NewDataset(features, attrs), nil
}

// depthValue returns NaN when the attribute is absent or not numeric
func depthValue(v interface{}) float64 {
	switch d := v.(type) {
	case float64:
		return d
	case int:
		return float64(d)
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// Shorelines returns the zero-depth outer lake boundaries
func (d *Dataset) Shorelines() []models.DepthFeature {
	return d.zeroDepth(d.attrs.ShorelineType)
}

// Islands returns the zero-depth island boundaries
func (d *Dataset) Islands() []models.DepthFeature {
	return d.zeroDepth(d.attrs.IslandType)
}

func (d *Dataset) zeroDepth(objectType string) []models.DepthFeature {
	var out []models.DepthFeature
	for _, f := range d.Features {
		if f.HasDepth() && f.Depth == 0 && f.ObjectType == objectType {
			out = append(out, f)
		}
	}
	return out
}

// Contours returns every feature deeper than zero, shallowest first.
// Features of equal depth keep their dataset order.
func (d *Dataset) Contours() []models.DepthFeature {
	var out []models.DepthFeature
	for _, f := range d.Features {
		if f.HasDepth() && f.Depth > 0 {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth < out[j].Depth
	})
	return out
}

// Bound returns the bounding box of all features
func (d *Dataset) Bound() orb.Bound {
	if len(d.Features) == 0 {
		return orb.Bound{}
	}
	b := d.Features[0].Geometry.Bound()
	for _, f := range d.Features[1:] {
		b = b.Union(f.Geometry.Bound())
	}
	return b
}
