package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type datasetRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

type zonesRequest struct {
	ID      string `param:"id"      validate:"required,uuid"`
	Species string `query:"species" validate:"required,max=256"`
}

// --- Response types ---

type datasetLinks struct {
	Self    string `json:"self"`
	Species string `json:"species"`
	Zones   string `json:"zones"`
	Map     string `json:"map"`
}

type recordResponse struct {
	Longitude  float64           `json:"longitude"`
	Latitude   float64           `json:"latitude"`
	AnimalID   string            `json:"animal_id,omitempty"`
	Species    string            `json:"species"`
	Timestamp  time.Time         `json:"timestamp"`
	Season     string            `json:"season"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type datasetResponse struct {
	ID             string           `json:"id"`
	Filename       string           `json:"filename"`
	Checksum       string           `json:"checksum"`
	Columns        []string         `json:"columns"`
	Species        []string         `json:"species"`
	RowCount       int              `json:"row_count"`
	DroppedRows    int              `json:"dropped_rows"`
	Preview        []recordResponse `json:"preview"`
	UploadedAt     time.Time        `json:"uploaded_at"`
	ExpiresAt      time.Time        `json:"expires_at"`
	AlreadyExisted bool             `json:"already_existed"`
	Links          datasetLinks     `json:"_links"`
}

type speciesResponse struct {
	DatasetID string   `json:"dataset_id"`
	Species   []string `json:"species"`
}

type coordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type zoneResponse struct {
	Season         string  `json:"season"`
	Shape          string  `json:"shape"`
	Color          string  `json:"color"`
	PointCount     int     `json:"point_count"`
	DistinctPoints int     `json:"distinct_points"`

	// AreaKm2 is 0 for degenerate zones and for zones with out-of-range coordinates.
	AreaKm2 float64 `json:"area_km2"`

	// Ring holds the polygon vertices as [lng, lat] pairs, closing vertex included.
	Ring [][2]float64 `json:"ring"`
}

type zoneFailureResponse struct {
	Season string `json:"season"`
	Reason string `json:"reason"`
}

type zoneReportResponse struct {
	DatasetID   string                `json:"dataset_id"`
	Species     string                `json:"species"`
	RecordCount int                   `json:"record_count"`
	Center      *coordinatesResponse  `json:"center"`
	Zones       []zoneResponse        `json:"zones"`
	Failures    []zoneFailureResponse `json:"failures"`
}
