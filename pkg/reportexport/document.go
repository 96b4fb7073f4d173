package reportexport

import (
	"context"
	"fmt"
)

// RenderDocument lays the request out as a paginated PDF. Input is validated
// before any rendering starts; a failing layout engine falls back to the
// next one and only the last failure reaches the caller.
func (e *Exporter) RenderDocument(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, exportError(FormatPDF, err)
	}

	now := e.now()
	table := BuildTable(req, now)
	if req.ImageKey != "" {
		table.Images = e.loadImages(ctx, req.Rows, req.ImageKey)
	}

	var lastErr error
	for _, r := range e.renderers {
		if err := r.Available(table); err != nil {
			e.logger.Debug().Str("renderer", r.Name()).Err(err).Msg("renderer skipped")
			if lastErr == nil {
				lastErr = err
			}
			continue
		}

		data, pages, err := r.Render(table)
		if err != nil {
			e.logger.Warn().Str("renderer", r.Name()).Err(err).Msg("layout failed, trying next renderer")
			lastErr = err
			continue
		}

		e.logger.Info().
			Str("renderer", r.Name()).
			Int("rows", table.RowCount()).
			Int("pages", pages).
			Msg("document rendered")
		return &Result{
			Filename:    ResolveFilename(req.Filename, req.Title, FormatPDF, now),
			ContentType: ContentTypePDF,
			Bytes:       data,
			Renderer:    r.Name(),
			Pages:       pages,
			Table:       table,
		}, nil
	}

	if lastErr == nil {
		lastErr = ErrLayoutUnavailable
	}
	return nil, exportError(FormatPDF, fmt.Errorf("%w: %v", ErrSerialization, lastErr))
}
