package reportexport

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapImageLoader map[string]*Image

func (m mapImageLoader) Load(_ context.Context, ref string) (*Image, error) {
	if img, ok := m[ref]; ok {
		return img, nil
	}
	return nil, errors.New("no such image")
}

func TestHTTPImageLoader(t *testing.T) {
	ctx := context.Background()
	loader := &HTTPImageLoader{}

	t.Run("DataURI", func(t *testing.T) {
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t))
		img, err := loader.Load(ctx, uri)
		require.NoError(t, err)
		assert.Equal(t, "png", img.Type)
	})

	t.Run("JPEGMagic", func(t *testing.T) {
		img, err := sniffImage([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00})
		require.NoError(t, err)
		assert.Equal(t, "jpg", img.Type)
	})

	t.Run("UnsupportedScheme", func(t *testing.T) {
		_, err := loader.Load(ctx, "ftp://example.com/a.png")
		assert.ErrorIs(t, err, ErrImageLoad)
	})

	t.Run("NotAnImage", func(t *testing.T) {
		uri := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))
		_, err := loader.Load(ctx, uri)
		assert.ErrorIs(t, err, ErrImageLoad)
	})
}

func TestLoadImagesLogsFailedRows(t *testing.T) {
	var logs bytes.Buffer
	loader := mapImageLoader{"a.png": {Data: pngBytes(t), Type: "png"}, "c.png": {Data: pngBytes(t), Type: "png"}}
	exp := NewExporter(WithImageLoader(loader), WithImageWorkers(3), WithLogger(zerolog.New(&logs)))

	rows := []Row{{"img": "a.png"}, {"img": "missing.png"}, {"img": "c.png"}, {"img": ""}}
	images := exp.loadImages(context.Background(), rows, "img")

	require.Len(t, images, 4)
	assert.NotNil(t, images[0])
	assert.Nil(t, images[1])
	assert.NotNil(t, images[2])
	assert.Nil(t, images[3])

	assert.Contains(t, logs.String(), "image unavailable, using placeholder")
	assert.Contains(t, logs.String(), `"row":1`)
	assert.Contains(t, logs.String(), "no such image")
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("image unavailable")))
}
