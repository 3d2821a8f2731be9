package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wildpath/migration-zones/internal/core/domain"
)

const utf8BOM = "\ufeff"

// LoadResult is the outcome of parsing one upload.
type LoadResult struct {
	Columns []string
	Records []domain.TrackRecord
	// Dropped counts malformed rows skipped while parsing.
	Dropped int
}

// Load parses a tracking CSV. The header row is normalized with
// NormalizeColumns and every data row becomes a TrackRecord with its season
// already derived.
//
// Malformed rows (CSV syntax errors, wrong field count, non-numeric
// coordinates) are dropped and counted. A missing or unparseable timestamp on
// a kept row aborts the whole load.
func Load(r io.Reader) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyUpload
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	columns, err := NormalizeColumns(header)
	if err != nil {
		return nil, err
	}
	idx, err := indexColumns(columns)
	if err != nil {
		return nil, err
	}

	res := &LoadResult{Columns: columns}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.Dropped++
				continue
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) != len(columns) {
			res.Dropped++
			continue
		}

		lon, okLon := parseCoordinate(row[idx.longitude])
		lat, okLat := parseCoordinate(row[idx.latitude])
		if !okLon || !okLat {
			res.Dropped++
			continue
		}

		ts, err := ParseTimestamp(row[idx.timestamp])
		if err != nil {
			line, _ := reader.FieldPos(idx.timestamp)
			return nil, fmt.Errorf("%w: line %d: %q", domain.ErrInvalidTimestamp, line, row[idx.timestamp])
		}

		rec := domain.TrackRecord{
			Longitude: lon,
			Latitude:  lat,
			Species:   row[idx.species],
			Timestamp: ts,
			Season:    domain.SeasonOf(ts),
		}
		if idx.animalID >= 0 {
			rec.AnimalID = row[idx.animalID]
		}
		if len(idx.extra) > 0 {
			rec.Attributes = make(map[string]string, len(idx.extra))
			for _, i := range idx.extra {
				rec.Attributes[columns[i]] = row[i]
			}
		}
		res.Records = append(res.Records, rec)
	}

	if len(res.Records) == 0 {
		return nil, domain.ErrEmptyUpload
	}
	return res, nil
}

// parseCoordinate accepts any finite number. There is no range check;
// out-of-range values flow through to the zone builder.
func parseCoordinate(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
