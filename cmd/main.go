package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kass/lakemap/pkg/app"
	"github.com/kass/lakemap/pkg/config"
	"github.com/kass/lakemap/pkg/logger"
)

var (
	configFile string
	verbose    bool
	v          = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "lakemap",
	Short: "Render lake depth maps with marked locations",
	Long: `Render a bathymetric map of a lake from a GeoJSON depth dataset and mark
the labeled DMS coordinates listed in a text file. Without a subcommand the
map is rendered.

The map is not shown on screen: it is written to isesjo_kart.png in the
working directory unless --output or output_file names another path. The
extension picks the format (png, svg, pdf, jpg).`,
	SilenceUsage: true,
	RunE:         runRender,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the depth map",
	Long: `Draw shoreline, depth contours, islands and the marked locations, and write
the image to isesjo_kart.png, or to the path given with --output.`,
	SilenceUsage: true,
	RunE:         runRender,
}

var pointsCmd = &cobra.Command{
	Use:          "points",
	Short:        "List marked locations with their depth band",
	Long:         `Look up the depth band and H3 cell under every marked location.`,
	SilenceUsage: true,
	RunE:         runPoints,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./lakemap.yaml or ./configs/lakemap.yaml)")
	rootCmd.PersistentFlags().StringP("coords", "c", "coordinates.txt", "Coordinates file path")
	rootCmd.PersistentFlags().StringP("dataset", "d", "isesjo_kart.geojson", "GeoJSON depth dataset path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringP("output", "o", "isesjo_kart.png", "Output image path")
	renderCmd.Flags().StringP("output", "o", "isesjo_kart.png", "Output image path")
	pointsCmd.Flags().Int("h3-res", 9, "H3 resolution of the cell column")

	_ = v.BindPFlag("coordinates_file", rootCmd.PersistentFlags().Lookup("coords"))
	_ = v.BindPFlag("dataset_file", rootCmd.PersistentFlags().Lookup("dataset"))

	rootCmd.AddCommand(renderCmd, pointsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := v.BindPFlag("output_file", cmd.Flags().Lookup("output")); err != nil {
		return err
	}

	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	return app.RenderMap(cfg, newLogger(cfg, "render"), cmd.OutOrStdout())
}

func runPoints(cmd *cobra.Command, args []string) error {
	if err := v.BindPFlag("h3_resolution", cmd.Flags().Lookup("h3-res")); err != nil {
		return err
	}

	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	return app.Report(cfg, newLogger(cfg, "points"), cmd.OutOrStdout())
}

func newLogger(cfg *config.Config, component string) zerolog.Logger {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logger.Build(logger.Config{
		Level:     level,
		Console:   cfg.Log.Console,
		Component: component,
	}, os.Stdout)
}
