package googlecloud

import (
	"time"
)

const (
	ExportStatusSucceeded = "succeeded"
	ExportStatusFailed    = "failed"
)

// ExportRecord is one audit entry per generated (or failed) export.
type ExportRecord struct {
	ID        int64     `datastore:"-" json:"id"` // Key ID (auto-generated)
	Filename  string    `datastore:"filename" json:"filename"`
	Format    string    `datastore:"format" json:"format"`
	Preset    string    `datastore:"preset" json:"preset,omitempty"`
	Title     string    `datastore:"title" json:"title"`
	Renderer  string    `datastore:"renderer" json:"renderer,omitempty"`
	Rows      int       `datastore:"rows" json:"rows"`
	Bytes     int       `datastore:"bytes" json:"bytes"`
	Status    string    `datastore:"status" json:"status"`
	Error     string    `datastore:"error,noindex" json:"error,omitempty"`
	CreatedAt time.Time `datastore:"created_at" json:"created_at"`

	// Section is the ancestor key name, copied out for JSON.
	Section string `datastore:"-" json:"section"`
}
