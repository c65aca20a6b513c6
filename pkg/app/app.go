// Package app wires the coordinate loader, the depth dataset and the
// renderer into the lakemap commands.
package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gonum.org/v1/plot/vg"

	"github.com/kass/lakemap/pkg/bathymetry"
	"github.com/kass/lakemap/pkg/config"
	"github.com/kass/lakemap/pkg/dms"
	"github.com/kass/lakemap/pkg/models"
	"github.com/kass/lakemap/pkg/render"
	"github.com/kass/lakemap/pkg/report"
	"github.com/kass/lakemap/pkg/rtree"
)

// NoCoordinatesMessage is printed instead of rendering when the
// coordinates file yields no records.
const NoCoordinatesMessage = "No valid coordinates found in coordinates file"

// RenderMap loads the coordinates and the dataset, renders the map and
// writes it to cfg.OutputFile. With no valid coordinates it prints
// NoCoordinatesMessage and returns without reading the dataset.
func RenderMap(cfg *config.Config, log zerolog.Logger, out io.Writer) error {
	coords, ds, err := loadInputs(cfg, log, out)
	if err != nil || coords == nil {
		return err
	}

	opts, err := RenderOptions(cfg)
	if err != nil {
		return err
	}

	fig, err := render.Render(ds, coords, opts)
	if err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	if fig.Stats.SkippedShorelines > 0 {
		log.Debug().
			Int("skipped", fig.Stats.SkippedShorelines).
			Msg("shoreline features not split into two parts were not drawn")
	}

	if err := fig.Save(cfg.OutputFile); err != nil {
		return err
	}

	log.Info().
		Str("path", cfg.OutputFile).
		Int("contours", fig.Stats.Contours).
		Int("islands", fig.Stats.Islands).
		Int("markers", fig.Stats.Markers).
		Msg("map written")
	return nil
}

// Report prints the depth and H3 cell under every marked location
func Report(cfg *config.Config, log zerolog.Logger, out io.Writer) error {
	coords, ds, err := loadInputs(cfg, log, out)
	if err != nil || coords == nil {
		return err
	}

	bands, err := cfg.DepthBands()
	if err != nil {
		return err
	}

	idx := rtree.NewDepthIndex(ds, bands)
	log.Debug().Int("areas", idx.Count()).Msg("depth index built")

	rows, err := report.Build(coords, idx, cfg.H3Resolution)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, report.Table(rows))
	return nil
}

// loadInputs returns nil coordinates, and no error, when there is
// nothing to draw.
func loadInputs(cfg *config.Config, log zerolog.Logger, out io.Writer) ([]models.Coordinate, *bathymetry.Dataset, error) {
	coords := dms.LoadFile(cfg.CoordinatesFile, log)
	if len(coords) == 0 {
		fmt.Fprintln(out, NoCoordinatesMessage)
		return nil, nil, nil
	}
	fmt.Fprintf(out, "Found %d locations in coordinates file\n", len(coords))

	fmt.Fprintf(out, "Loading GeoJSON file: %s\n", cfg.DatasetFile)
	ds, err := bathymetry.LoadFile(cfg.DatasetFile, cfg.DatasetAttributes())
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Int("features", len(ds.Features)).Str("path", cfg.DatasetFile).Msg("dataset loaded")

	return coords, ds, nil
}

// RenderOptions converts the configuration into renderer options
func RenderOptions(cfg *config.Config) (render.Options, error) {
	opts := render.DefaultOptions()

	bands, err := cfg.DepthBands()
	if err != nil {
		return opts, err
	}
	background, err := bathymetry.ParseColor(cfg.Colors.Background)
	if err != nil {
		return opts, err
	}
	marker, err := bathymetry.ParseColor(cfg.Colors.Marker)
	if err != nil {
		return opts, err
	}

	opts.Title = cfg.Title
	opts.Width = vg.Length(cfg.WidthIn) * vg.Inch
	opts.Height = vg.Length(cfg.HeightIn) * vg.Inch
	opts.Background = background
	opts.Marker = marker
	opts.Bands = bands
	return opts, nil
}
