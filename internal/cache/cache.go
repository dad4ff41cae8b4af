// Package cache stores extraction results in redis keyed by the source
// file's checksum, so unchanged inputs are not reprocessed between runs.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	redisClient "github.com/go-redis/redis/v8"

	"github.com/mbarreto/hymnbook/internal/hymnal"
	"github.com/mbarreto/hymnbook/internal/utils"
)

// Manager wraps the redis client.
type Manager struct {
	client *redisClient.Client
}

// NewManager connects using REDIS_URL and REDIS_PASSWORD.
func NewManager() (*Manager, error) {
	env, err := utils.LoadEnv([]string{"REDIS_URL", "REDIS_PASSWORD"})
	if err != nil {
		return nil, fmt.Errorf("failed to load cache env: %w", err)
	}

	opt, err := redisClient.ParseURL(fmt.Sprintf("rediss://default:%s@%s", env["REDIS_PASSWORD"], env["REDIS_URL"]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return &Manager{client: redisClient.NewClient(opt)}, nil
}

// Lookup retrieves a cached document by checksum. The second return value is
// false when the checksum has not been seen.
func (m *Manager) Lookup(ctx context.Context, checksum string) (*hymnal.Document, bool, error) {
	data, err := m.client.Get(ctx, bookKey(checksum)).Bytes()
	if err != nil {
		if err == redisClient.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var doc hymnal.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached document: %w", err)
	}
	return &doc, true, nil
}

// Store caches a document under its checksum and records the checksum as the
// last one seen for the source path.
func (m *Manager) Store(ctx context.Context, path, checksum string, doc *hymnal.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := m.client.Set(ctx, bookKey(checksum), data, 0).Err(); err != nil {
		return err
	}
	return m.client.Set(ctx, sourceKey(path), checksum, 0).Err()
}

// LastChecksum returns the checksum recorded for a source path, or empty
// when the path has not been processed.
func (m *Manager) LastChecksum(ctx context.Context, path string) (string, error) {
	checksum, err := m.client.Get(ctx, sourceKey(path)).Result()
	if err != nil {
		if err == redisClient.Nil {
			return "", nil
		}
		return "", err
	}
	return checksum, nil
}

func bookKey(checksum string) string {
	return "book:" + checksum
}

func sourceKey(path string) string {
	return "source:" + path
}
