// Package report tabulates marked locations with the depth found under
// each of them and the H3 cell they fall in.
package report

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	h3 "github.com/uber/h3-go/v4"

	"github.com/kass/lakemap/pkg/models"
	"github.com/kass/lakemap/pkg/rtree"
)

// Row is one marked location in the report
type Row struct {
	Label    string
	Location models.Location
	Sounding rtree.Sounding
	Cell     string
}

// Build looks up every coordinate in idx and resolves its H3 cell
func Build(coords []models.Coordinate, idx *rtree.DepthIndex, resolution int) ([]Row, error) {
	rows := make([]Row, 0, len(coords))
	for _, c := range coords {
		cell, err := h3.LatLngToCell(h3.NewLatLng(c.Location.Lat, c.Location.Lon), resolution)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve h3 cell for %q: %w", c.Label, err)
		}
		rows = append(rows, Row{
			Label:    c.Label,
			Location: c.Location,
			Sounding: idx.DepthAt(c.Location),
			Cell:     cell.String(),
		})
	}
	return rows, nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	landStyle = cellStyle.Foreground(lipgloss.Color("#50FA7B"))

	outsideStyle = cellStyle.Foreground(lipgloss.Color("#FF5555"))
)

const depthColumn = 3

// Table renders rows as a bordered table
func Table(rows []Row) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			r.Label,
			strconv.FormatFloat(r.Location.Lat, 'f', 6, 64),
			strconv.FormatFloat(r.Location.Lon, 'f', 6, 64),
			r.Sounding.Label,
			r.Cell,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9"))).
		Headers("LABEL", "LATITUDE", "LONGITUDE", "DEPTH", "H3 CELL").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == depthColumn && row >= 0 && row < len(rows) {
				switch rows[row].Sounding.Zone {
				case rtree.ZoneIsland:
					return landStyle
				case rtree.ZoneOutside:
					return outsideStyle
				}
			}
			return cellStyle
		}).
		String()
}
