package model

import (
	"errors"
	"fmt"
)

// Source tags where a saved configuration was submitted from.
type Source string

const (
	SourceSalesPoints Source = "sales-points"
	SourceDealer      Source = "dealer"
)

// ErrInvalidSource is returned for any source outside the enumeration.
var ErrInvalidSource = errors.New("invalid configuration source")

// ParseSource validates a raw source tag.
func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case SourceSalesPoints, SourceDealer:
		return src, nil
	default:
		return "", fmt.Errorf("%w %q, must be %q or %q", ErrInvalidSource, s, SourceSalesPoints, SourceDealer)
	}
}

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Ref is an id/label pair; both are null when nothing was selected.
type Ref struct {
	ID    *string `json:"id"`
	Label *string `json:"label"`
}

// NewRef returns a populated pair.
func NewRef(id, label string) Ref {
	return Ref{ID: &id, Label: &label}
}

// IsNull reports whether the pair stands for "no selection".
func (r Ref) IsNull() bool {
	return r.ID == nil
}

// Option is a selected add-on as stored in a record.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SavedConfigurationRecord is an immutable snapshot appended to the
// durable selections log.
type SavedConfigurationRecord struct {
	Timestamp string   `json:"timestamp"`
	Source    Source   `json:"source"`
	ModelID   string   `json:"modelId"`
	ModelName string   `json:"modelName"`
	Version   Ref      `json:"version"`
	Color     Ref      `json:"color"`
	Addons    []Option `json:"addons"`
	Price     int64    `json:"price"`
}
