package domain

import (
	"encoding/json"
	"time"
)

// DateOnly is a custom type for handling date-only strings in JSON
type DateOnly struct {
	time.Time
}

// NewDateOnly creates a DateOnly from a time value, truncating any time-of-day component
func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	// Handle null/empty dates
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Parse date-only format
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// String returns the date in YYYY-MM-DD form
func (d DateOnly) String() string {
	return d.Time.Format("2006-01-02")
}

// Record is a single canonical sales row. Every record held in the store
// satisfies: Date is a valid calendar date, Product is non-empty trimmed
// text, Sales is a non-negative number.
type Record struct {
	Date    DateOnly `json:"date"`
	Product string   `json:"product"`
	Sales   float64  `json:"sales"`
}

// OutcomeKind classifies the result of a normalization attempt
type OutcomeKind string

const (
	// OutcomeSuccess means records were accepted into the store
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeParseFailure means the upload had an unsupported extension or malformed content
	OutcomeParseFailure OutcomeKind = "parse_failure"
	// OutcomeValidationFailure means a manual entry had a missing or invalid field
	OutcomeValidationFailure OutcomeKind = "validation_failure"
	// OutcomeEmptyResult means a file parsed but yielded zero valid rows after filtering
	OutcomeEmptyResult OutcomeKind = "empty_result"
)

// Outcome is the discriminated result of a normalization attempt
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Count is the number of accepted records on success
	Count int `json:"count,omitempty"`

	// Source is the original filename for uploads, empty for manual entries
	Source string `json:"source,omitempty"`

	// Reason carries the validation failure detail
	Reason string `json:"reason,omitempty"`
}

// Success builds a success outcome for an upload or manual entry
func Success(count int, source string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Count: count, Source: source}
}

// ParseFailure builds a parse failure outcome for a rejected upload
func ParseFailure(filename string) Outcome {
	return Outcome{Kind: OutcomeParseFailure, Source: filename}
}

// ValidationFailure builds a validation failure outcome for a rejected manual entry
func ValidationFailure(reason string) Outcome {
	return Outcome{Kind: OutcomeValidationFailure, Reason: reason}
}

// EmptyResult builds an outcome for a file that parsed but kept no rows
func EmptyResult(filename string) Outcome {
	return Outcome{Kind: OutcomeEmptyResult, Source: filename}
}

// OK reports whether the outcome permits a store mutation
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// DailyTotal is one point of the daily sales series
type DailyTotal struct {
	Date  DateOnly `json:"date"`
	Total float64  `json:"total"`
}

// ProductTotal is one bar of the top-products ranking
type ProductTotal struct {
	Product string  `json:"product"`
	Total   float64 `json:"total"`
}

// Stats summarizes the current record set
type Stats struct {
	TotalSales       float64 `json:"totalSales"`
	AverageSale      float64 `json:"averageSale"`
	DistinctProducts int     `json:"distinctProducts"`
	RecordCount      int     `json:"recordCount"`
}

// Summary bundles all derived views computed from one store snapshot
type Summary struct {
	Daily     []DailyTotal   `json:"daily"`
	ByProduct []ProductTotal `json:"byProduct"`
	Stats     Stats          `json:"stats"`
}
