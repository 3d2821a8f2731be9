package domain

import (
	"errors"
	"time"
)

// Canonical column names produced by the schema normalizer.
const (
	ColumnLongitude = "longitude"
	ColumnLatitude  = "latitude"
	ColumnAnimalID  = "animal_id"
	ColumnSpecies   = "species"
	ColumnTimestamp = "timestamp"
)

var (
	ErrDatasetNotFound  = errors.New("dataset not found")
	ErrEmptyUpload      = errors.New("uploaded file contains no data rows")
	ErrMissingColumn    = errors.New("required column missing")
	ErrDuplicateColumn  = errors.New("column mapped more than once")
	ErrMissingTimestamp = errors.New("timestamp column missing")
	ErrInvalidTimestamp = errors.New("timestamp could not be parsed")
)

// TrackRecord is one observation of a tagged animal. Records are built once
// by the loader and never mutated afterwards.
type TrackRecord struct {
	Longitude float64   `json:"longitude" bson:"longitude"`
	Latitude  float64   `json:"latitude" bson:"latitude"`
	AnimalID  string    `json:"animal_id" bson:"animal_id"`
	Species   string    `json:"species" bson:"species"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Season    Season    `json:"season" bson:"season"`

	// Attributes holds every non-canonical column of the source row, untouched.
	Attributes map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"`
}

// Dataset is a parsed upload. It lives for one upload session and is dropped
// once its TTL runs out.
type Dataset struct {
	ID          string        `json:"id" bson:"_id"`
	Filename    string        `json:"filename" bson:"filename"`
	Checksum    string        `json:"checksum" bson:"checksum"`
	Columns     []string      `json:"columns" bson:"columns"`
	Records     []TrackRecord `json:"records" bson:"records"`
	Species     []string      `json:"species" bson:"species"`
	DroppedRows int           `json:"dropped_rows" bson:"dropped_rows"`
	UploadedAt  time.Time     `json:"uploaded_at" bson:"uploaded_at"`
}

// RowCount is the number of rows that survived parsing.
func (d *Dataset) RowCount() int { return len(d.Records) }
