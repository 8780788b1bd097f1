package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ncaufield/devportal/pkg/cache"
	"github.com/ncaufield/devportal/pkg/core/statustree"
)

// HealthFetcher retrieves the raw health payload for a component in a
// landscape. Implementations own transport concerns (HTTP, timeouts).
type HealthFetcher interface {
	FetchHealth(ctx context.Context, component, landscape string) ([]byte, error)
}

// StatusCache is the slice of the cache the health service needs
type StatusCache interface {
	GetJSON(ctx context.Context, key string, v interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}) error
}

// ComponentHealth returns the flattened health rows for a component in
// a landscape, served from the cache when a fresh entry exists.
func ComponentHealth(ctx context.Context, fetcher HealthFetcher, c StatusCache, logger *zap.Logger, component, landscape string) ([]statustree.Row, error) {
	key := cache.Key("health", component, landscape)

	if c != nil {
		var rows []statustree.Row
		hit, err := c.GetJSON(ctx, key, &rows)
		if err != nil {
			// A broken cache degrades to a fetch rather than an outage
			logger.Warn("Health cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			logger.Debug("Health served from cache", zap.String("key", key))
			return rows, nil
		}
	}

	payload, err := fetcher.FetchHealth(ctx, component, landscape)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch health for %s/%s: %w", component, landscape, err)
	}

	tree, err := statustree.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode health for %s/%s: %w", component, landscape, err)
	}

	rows := statustree.Flatten(tree)

	if c != nil {
		if err := c.SetJSON(ctx, key, rows); err != nil {
			logger.Warn("Health cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return rows, nil
}
