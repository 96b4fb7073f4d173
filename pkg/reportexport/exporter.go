package reportexport

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
)

const (
	LayoutAuto   = "auto"
	LayoutManual = "manual"
)

// TableRenderer is one way of laying a Table out as a PDF.
type TableRenderer interface {
	Name() string
	// Available reports why the renderer cannot draw t, or nil if it can.
	Available(t *Table) error
	// Render returns the finished document and its page count.
	Render(t *Table) ([]byte, int, error)
}

// Exporter turns rows into documents and spreadsheets. It holds no state
// between calls and is safe for concurrent use.
type Exporter struct {
	logger       zerolog.Logger
	renderers    []TableRenderer
	images       ImageLoader
	imageWorkers int
	now          func() time.Time
}

type Option func(*Exporter)

// WithLogger sets the logger used for fallbacks and image failures.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithLayout selects the layout strategy: LayoutAuto tries the grid engine
// first and falls back to the manual one, LayoutManual skips the grid.
func WithLayout(mode string) Option {
	return func(e *Exporter) {
		if mode == LayoutManual {
			e.renderers = []TableRenderer{NewManualRenderer()}
		}
	}
}

// WithRenderers replaces the renderer chain; they are tried in order.
func WithRenderers(r ...TableRenderer) Option {
	return func(e *Exporter) {
		if len(r) > 0 {
			e.renderers = r
		}
	}
}

func WithImageLoader(l ImageLoader) Option {
	return func(e *Exporter) {
		if l != nil {
			e.images = l
		}
	}
}

func WithImageWorkers(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.imageWorkers = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		logger:       zerolog.Nop(),
		renderers:    []TableRenderer{NewGridRenderer(), NewManualRenderer()},
		images:       &HTTPImageLoader{Client: &http.Client{}},
		imageWorkers: 4,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResolveFilename returns name with ext, or a "<title-slug>-YYYY-MM-DD"
// name when none was given.
func ResolveFilename(name, title string, ext string, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		slug := slugify(title)
		if slug == "" {
			slug = "farmnex-report"
		}
		name = slug + "-" + now.Format(dateLayout)
	}
	name = filepath.Base(name)
	if strings.EqualFold(filepath.Ext(name), "."+ext) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name + "." + ext
}

func slugify(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
