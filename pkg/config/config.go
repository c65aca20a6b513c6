// Package config loads lakemap settings from defaults, an optional YAML
// file, LAKEMAP_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kass/lakemap/pkg/bathymetry"
)

// Config holds all application configuration.
type Config struct {
	CoordinatesFile string           `mapstructure:"coordinates_file"`
	DatasetFile     string           `mapstructure:"dataset_file"`
	OutputFile      string           `mapstructure:"output_file"`
	Title           string           `mapstructure:"title"`
	WidthIn         float64          `mapstructure:"width_in"`
	HeightIn        float64          `mapstructure:"height_in"`
	H3Resolution    int              `mapstructure:"h3_resolution"`
	Colors          ColorsConfig     `mapstructure:"colors"`
	Attributes      AttributesConfig `mapstructure:"attributes"`
	Types           TypesConfig      `mapstructure:"types"`
	Bands           BandsConfig      `mapstructure:"bands"`
	Log             LogConfig        `mapstructure:"log"`
}

type ColorsConfig struct {
	Background string `mapstructure:"background"`
	Marker     string `mapstructure:"marker"`
}

type AttributesConfig struct {
	Depth string `mapstructure:"depth"`
	Type  string `mapstructure:"type"`
}

type TypesConfig struct {
	Shoreline string `mapstructure:"shoreline"`
	Island    string `mapstructure:"island"`
}

type BandsConfig struct {
	Depths []float64 `mapstructure:"depths"`
	Colors []string  `mapstructure:"colors"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// New returns a viper instance with defaults and environment binding.
// Flags can be bound to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	attrs := bathymetry.DefaultAttributes()

	v.SetDefault("coordinates_file", "coordinates.txt")
	v.SetDefault("dataset_file", "isesjo_kart.geojson")
	v.SetDefault("output_file", "isesjo_kart.png")
	v.SetDefault("title", "Isesjøen - Water Depth Contours")
	v.SetDefault("width_in", 15.0)
	v.SetDefault("height_in", 15.0)
	v.SetDefault("h3_resolution", 9)
	v.SetDefault("colors.background", "#90A955")
	v.SetDefault("colors.marker", "#D35F5F")
	v.SetDefault("attributes.depth", attrs.Depth)
	v.SetDefault("attributes.type", attrs.Type)
	v.SetDefault("types.shoreline", attrs.ShorelineType)
	v.SetDefault("types.island", attrs.IslandType)
	v.SetDefault("bands.depths", []float64{3, 8, 13, 18, 23})
	v.SetDefault("bands.colors", []string{"#B3E6FF", "#99CCFF", "#80B3E6", "#4D80CC", "#1A3380"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)

	// LAKEMAP_DATASET_FILE → dataset_file, LAKEMAP_LOG_LEVEL → log.level
	v.SetEnvPrefix("LAKEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file, if any, and unmarshals v. An explicit file
// must exist; otherwise lakemap.yaml is looked up in . and ./configs and
// may be absent.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("lakemap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.CoordinatesFile == "" {
		errs = append(errs, "coordinates_file is required")
	}
	if c.DatasetFile == "" {
		errs = append(errs, "dataset_file is required")
	}
	if c.OutputFile == "" {
		errs = append(errs, "output_file is required")
	}
	if c.WidthIn <= 0 || c.HeightIn <= 0 {
		errs = append(errs, fmt.Sprintf("width_in and height_in must be positive, got %vx%v", c.WidthIn, c.HeightIn))
	}
	if c.H3Resolution < 0 || c.H3Resolution > 15 {
		errs = append(errs, fmt.Sprintf("h3_resolution must be 0-15, got %d", c.H3Resolution))
	}
	if c.Attributes.Depth == "" {
		errs = append(errs, "attributes.depth is required")
	}
	if c.Attributes.Type == "" {
		errs = append(errs, "attributes.type is required")
	}
	if _, err := bathymetry.ParseColor(c.Colors.Background); err != nil {
		errs = append(errs, "colors.background: "+err.Error())
	}
	if _, err := bathymetry.ParseColor(c.Colors.Marker); err != nil {
		errs = append(errs, "colors.marker: "+err.Error())
	}
	if _, err := c.DepthBands(); err != nil {
		errs = append(errs, "bands: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// DepthBands builds the configured depth bands
func (c *Config) DepthBands() (bathymetry.Bands, error) {
	return bathymetry.NewBands(c.Bands.Depths, c.Bands.Colors)
}

// DatasetAttributes returns the configured feature attribute names
func (c *Config) DatasetAttributes() bathymetry.Attributes {
	return bathymetry.Attributes{
		Depth:         c.Attributes.Depth,
		Type:          c.Attributes.Type,
		ShorelineType: c.Types.Shoreline,
		IslandType:    c.Types.Island,
	}
}
