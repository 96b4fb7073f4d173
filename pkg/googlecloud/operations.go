package googlecloud

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
)

const (
	KindReportSection = "ReportSection"
	KindExportRecord  = "ExportRecord"

	defaultHistoryLimit = 20
)

func sectionKey(section string) *datastore.Key {
	if section == "" {
		section = "default"
	}
	return datastore.NameKey(KindReportSection, section, nil)
}

// normalizeRecord fills the fields RecordExport relies on.
func normalizeRecord(rec *ExportRecord, now time.Time) error {
	if rec.Format == "" {
		return fmt.Errorf("export record format cannot be empty")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.Status == "" {
		rec.Status = ExportStatusSucceeded
		if rec.Error != "" {
			rec.Status = ExportStatusFailed
		}
	}
	if rec.Section == "" {
		rec.Section = "default"
	}
	return nil
}

// RecordExport stores rec under its section, assigning rec.ID.
func (c *Client) RecordExport(ctx context.Context, rec *ExportRecord) error {
	if err := normalizeRecord(rec, time.Now()); err != nil {
		return err
	}

	key := datastore.IncompleteKey(KindExportRecord, sectionKey(rec.Section))
	newKey, err := c.ds.Put(ctx, key, rec)
	if err != nil {
		return err
	}
	rec.ID = newKey.ID
	return nil
}

// ListRecentExports returns the newest records across all sections.
func (c *Client) ListRecentExports(ctx context.Context, limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := datastore.NewQuery(KindExportRecord).Order("-created_at").Limit(limit)
	return c.getAll(ctx, query)
}

// ListSectionExports returns the newest records of one section using an ancestor query.
func (c *Client) ListSectionExports(ctx context.Context, section string, limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := datastore.NewQuery(KindExportRecord).
		Ancestor(sectionKey(section)).
		Order("-created_at").
		Limit(limit)
	return c.getAll(ctx, query)
}

func (c *Client) getAll(ctx context.Context, query *datastore.Query) ([]ExportRecord, error) {
	var records []ExportRecord
	keys, err := c.ds.GetAll(ctx, query, &records)
	if err != nil {
		return nil, err
	}

	for i, key := range keys {
		records[i].ID = key.ID
		if key.Parent != nil {
			records[i].Section = key.Parent.Name
		}
	}
	return records, nil
}
