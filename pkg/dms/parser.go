// Package dms parses labeled degree-minute-second coordinates into decimal
// degrees.
package dms

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kass/lakemap/pkg/models"
)

var (
	ErrNoSeparator = errors.New(`dms: missing ": " separator`)
	ErrNoMatch     = errors.New("dms: coordinates not in DMS format")
)

const separator = ": "

var pairPattern = regexp.MustCompile(`(\d+)°(\d+)'([\d.]+)"([NS])\s+(\d+)°(\d+)'([\d.]+)"([EW])`)

// DMSToDecimal converts degrees, minutes and seconds to decimal degrees.
// The result is negative for the southern and western hemispheres.
func DMSToDecimal(degrees, minutes, seconds float64, direction string) float64 {
	decimal := degrees + minutes/60 + seconds/3600
	if direction == "S" || direction == "W" {
		decimal = -decimal
	}
	return decimal
}

// ParseLine parses a line of the form `<label>: <lat DMS> <lon DMS>`
func ParseLine(line string) (models.Coordinate, error) {
	label, coords, ok := strings.Cut(strings.TrimSpace(line), separator)
	if !ok {
		return models.Coordinate{}, ErrNoSeparator
	}

	m := pairPattern.FindStringSubmatch(coords)
	if m == nil {
		return models.Coordinate{}, ErrNoMatch
	}

	lat, err := component(m[1], m[2], m[3], m[4])
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to parse latitude: %w", err)
	}
	lon, err := component(m[5], m[6], m[7], m[8])
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to parse longitude: %w", err)
	}

	return models.Coordinate{
		Label:    label,
		Location: models.Location{Lat: lat, Lon: lon},
	}, nil
}

func component(deg, mins, secs, dir string) (float64, error) {
	d, err := strconv.ParseFloat(deg, 64)
	if err != nil {
		return 0, err
	}
	m, err := strconv.ParseFloat(mins, 64)
	if err != nil {
		return 0, err
	}
	s, err := strconv.ParseFloat(secs, 64)
	if err != nil {
		return 0, err
	}
	return DMSToDecimal(d, m, s, dir), nil
}
