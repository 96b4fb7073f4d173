package googlecloud

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/datastore"

	"github.com/Tharakax/FarmNex-sub002/internal/logger"
)

// Client wraps the Datastore client with export audit operations.
type Client struct {
	ds *datastore.Client
}

// NewClient creates a Datastore client. The official client picks up
// DATASTORE_EMULATOR_HOST on its own.
func NewClient(ctx context.Context, projectID string) (*Client, error) {
	if emulatorHost := os.Getenv("DATASTORE_EMULATOR_HOST"); emulatorHost != "" {
		logger.InfoLog(ctx, "initializing datastore client against emulator %s", emulatorHost)
	}

	ds, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}

	return &Client{ds: ds}, nil
}

func (c *Client) Close() error {
	return c.ds.Close()
}
