package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggingWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	InitLogging(path, "debug")
	defer InitLogging("")

	ctx := WithRequestID(context.Background(), "req-42")
	InfoLog(ctx, "exported %s", "stock.pdf")
	DebugLog(context.Background(), "no context")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"request_id":"req-42"`)
	assert.Contains(t, string(data), `"message":"exported stock.pdf"`)
	assert.Contains(t, string(data), "no context")
}

func TestInitLoggingLevel(t *testing.T) {
	InitLogging("", "warn")
	defer InitLogging("")
	assert.Equal(t, zerolog.WarnLevel, Get().GetLevel())

	InitLogging("", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, Get().GetLevel())
}

func TestInitLoggingUnopenableFile(t *testing.T) {
	var console bytes.Buffer
	consoleOut = &console
	defer func() {
		consoleOut = os.Stdout
		InitLogging("")
	}()

	path := filepath.Join(t.TempDir(), "missing-dir", "app.log")
	InitLogging(path)

	assert.Contains(t, console.String(), "log file unavailable, logging to console only")
	assert.Contains(t, console.String(), "missing-dir")

	WarnLog(context.Background(), "still logging")
	assert.Contains(t, console.String(), "still logging")
}
