// Package redis stores state snapshots as plain string values in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// DefaultKeyPrefix namespaces every snapshot key.
const DefaultKeyPrefix = "skillswap:"

// DB implements domain.Database on a Redis server.
type DB struct {
	client *goredis.Client
	prefix string
}

// New connects to addr, which is either a redis:// URL or a host:port pair.
func New(addr, prefix string) (*DB, error) {
	var opts *goredis.Options
	if strings.Contains(addr, "://") {
		parsed, err := goredis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &goredis.Options{Addr: addr}
	}
	return NewFromClient(goredis.NewClient(opts), prefix), nil
}

// NewFromClient wraps an existing client. An empty prefix selects
// DefaultKeyPrefix.
func NewFromClient(client *goredis.Client, prefix string) *DB {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &DB{client: client, prefix: prefix}
}

// Client exposes the underlying client, e.g. to attach hooks.
func (d *DB) Client() *goredis.Client {
	return d.client
}

// Migrate has no schema to apply; it verifies the server is reachable.
func (d *DB) Migrate(ctx context.Context) error {
	if err := d.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.client.Close()
}

func (d *DB) key(k string) string {
	return d.prefix + k
}

func (d *DB) Get(ctx context.Context, key string) (json.RawMessage, error) {
	val, err := d.client.Get(ctx, d.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	return json.RawMessage(val), nil
}

func (d *DB) Put(ctx context.Context, key string, value json.RawMessage) error {
	if err := d.client.Set(ctx, d.key(key), []byte(value), 0).Err(); err != nil {
		return fmt.Errorf("set snapshot %s: %w", key, err)
	}
	return nil
}

func (d *DB) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = d.key(k)
	}
	if err := d.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	return nil
}
