package reportexport

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Tharakax/FarmNex-sub002/pkg/dataflow"
)

const maxImageBytes = 5 << 20

// Image is a decoded thumbnail ready to embed.
type Image struct {
	Data []byte
	// Type is "png" or "jpg".
	Type string
}

// ImageLoader fetches the image behind a row's image reference.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (*Image, error)
}

// HTTPImageLoader loads http(s) URLs and inline data: URIs.
type HTTPImageLoader struct {
	Client *http.Client
}

func (l *HTTPImageLoader) Load(ctx context.Context, ref string) (*Image, error) {
	if strings.HasPrefix(ref, "data:") {
		return decodeDataURI(ref)
	}
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return nil, fmt.Errorf("%w: unsupported reference %q", ErrImageLoad, ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrImageLoad, ref, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return sniffImage(data)
}

func decodeDataURI(ref string) (*Image, error) {
	idx := strings.Index(ref, ";base64,")
	if idx < 0 {
		return nil, fmt.Errorf("%w: data URI is not base64", ErrImageLoad)
	}
	data, err := base64.StdEncoding.DecodeString(ref[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return sniffImage(data)
}

func sniffImage(data []byte) (*Image, error) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return &Image{Data: data, Type: "png"}, nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return &Image{Data: data, Type: "jpg"}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported image format", ErrImageLoad)
	}
}

type imageJob struct {
	index int
	ref   string
}

type imageResult struct {
	index int
	image *Image
}

// rowImageError is a failed load together with the row it belongs to.
type rowImageError struct {
	row int
	err error
}

func (e *rowImageError) Error() string {
	return fmt.Sprintf("row %d: %v", e.row, e.err)
}

func (e *rowImageError) Unwrap() error {
	return e.err
}

// loadImages fetches every row's image concurrently. A failed load leaves a
// nil entry, which the layout engines draw as a placeholder.
func (e *Exporter) loadImages(ctx context.Context, rows []Row, key string) []*Image {
	images := make([]*Image, len(rows))
	jobs := make([]interface{}, 0, len(rows))
	for i, row := range rows {
		if ref := CellText(row[key]); ref != "" {
			jobs = append(jobs, imageJob{index: i, ref: ref})
		}
	}
	if len(jobs) == 0 {
		return images
	}

	results := dataflow.Map(ctx, dataflow.From(ctx, jobs...), func(msg interface{}) (interface{}, error) {
		job := msg.(imageJob)
		img, err := e.images.Load(ctx, job.ref)
		if err != nil {
			return nil, &rowImageError{row: job.index, err: err}
		}
		return imageResult{index: job.index, image: img}, nil
	},
		dataflow.WithWorkers(e.imageWorkers),
		dataflow.WithBufferSize(len(jobs)),
		dataflow.WithErrorHandler(func(err error) bool {
			var rowErr *rowImageError
			if errors.As(err, &rowErr) {
				e.logger.Warn().Err(rowErr.err).Int("row", rowErr.row).Msg("image unavailable, using placeholder")
			}
			return true
		}),
	)

	_ = dataflow.ForEach(ctx, results, func(msg interface{}) error {
		res := msg.(imageResult)
		images[res.index] = res.image
		return nil
	})
	return images
}
