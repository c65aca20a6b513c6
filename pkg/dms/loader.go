package dms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kass/lakemap/pkg/models"
)

// Load reads coordinates from r, one per line. Blank lines are skipped
// silently and malformed lines are skipped with a warning. The returned
// error only reports a failure of the reader itself; the records parsed
// before it are still returned.
func Load(r io.Reader, log zerolog.Logger) ([]models.Coordinate, error) {
	var coords []models.Coordinate

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			lineNo++
			if c, ok := parseRecord(line, lineNo, log); ok {
				coords = append(coords, c)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return coords, nil
		}
		if readErr != nil {
			return coords, fmt.Errorf("failed to read coordinates: %w", readErr)
		}
	}
}

func parseRecord(line string, lineNo int, log zerolog.Logger) (models.Coordinate, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return models.Coordinate{}, false
	}

	c, err := ParseLine(line)
	if err != nil {
		log.Warn().
			Err(err).
			Int("line_no", lineNo).
			Str("line", line).
			Msg("could not parse coordinates in line")
		return models.Coordinate{}, false
	}
	return c, true
}

// LoadFile reads and parses the coordinates file at path. A missing file is
// not an error: a warning is logged and no records are returned.
func LoadFile(path string, log zerolog.Logger) []models.Coordinate {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", path).Msg("coordinates file not found")
		} else {
			log.Error().Err(err).Str("path", path).Msg("error reading coordinates file")
		}
		return nil
	}
	defer f.Close()

	coords, err := Load(f, log)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("error reading coordinates file")
	}
	return coords
}
