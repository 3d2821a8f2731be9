// Package pipeline turns an uploaded tracking CSV into per-season migration
// zones. Every step is a plain function over records; nothing here keeps state
// between calls.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/wildpath/migration-zones/internal/core/domain"
)

// columnAliases maps Movebank-style source headers onto canonical names.
var columnAliases = map[string]string{
	"location-long":                   domain.ColumnLongitude,
	"location-lat":                    domain.ColumnLatitude,
	"individual-local-identifier":     domain.ColumnAnimalID,
	"individual-taxon-canonical-name": domain.ColumnSpecies,
}

// CanonicalName returns the canonical name for a known source column, or the
// column unchanged.
func CanonicalName(column string) string {
	if name, ok := columnAliases[column]; ok {
		return name
	}
	return column
}

// NormalizeColumns renames the known source columns and leaves every other
// column as is. Running it on an already normalized header is a no-op.
// A header in which two columns end up with the same name is rejected.
func NormalizeColumns(header []string) ([]string, error) {
	out := make([]string, len(header))
	seen := make(map[string]string, len(header))
	for i, col := range header {
		name := CanonicalName(col)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q and %q both map to %q", domain.ErrDuplicateColumn, prev, col, name)
		}
		seen[name] = col
		out[i] = name
	}
	return out, nil
}

// columnIndex resolves canonical column positions in a normalized header.
type columnIndex struct {
	longitude int
	latitude  int
	animalID  int // -1 when absent
	species   int
	timestamp int
	extra     []int
}

func indexColumns(columns []string) (columnIndex, error) {
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		pos[c] = i
	}

	if _, ok := pos[domain.ColumnTimestamp]; !ok {
		return columnIndex{}, domain.ErrMissingTimestamp
	}
	var missing []string
	for _, name := range []string{domain.ColumnLongitude, domain.ColumnLatitude, domain.ColumnSpecies} {
		if _, ok := pos[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}

	idx := columnIndex{
		longitude: pos[domain.ColumnLongitude],
		latitude:  pos[domain.ColumnLatitude],
		animalID:  -1,
		species:   pos[domain.ColumnSpecies],
		timestamp: pos[domain.ColumnTimestamp],
	}
	if i, ok := pos[domain.ColumnAnimalID]; ok {
		idx.animalID = i
	}
	for i, c := range columns {
		switch c {
		case domain.ColumnLongitude, domain.ColumnLatitude, domain.ColumnAnimalID,
			domain.ColumnSpecies, domain.ColumnTimestamp:
			continue
		}
		idx.extra = append(idx.extra, i)
	}
	return idx, nil
}
