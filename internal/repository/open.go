// Package repository selects the snapshot backend named by the configuration.
package repository

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/config"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository/memory"
	redisrepo "github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository/redis"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository/sqlite"
)

// Open connects to the configured backend and applies its migrations.
// Hooks are attached to the Redis client and ignored by other backends.
func Open(ctx context.Context, cfg *config.Config, hooks ...goredis.Hook) (domain.Database, error) {
	var db domain.Database
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		sq, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		db = sq
	case config.BackendRedis:
		rd, err := redisrepo.New(cfg.RedisURL, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, err
		}
		for _, h := range hooks {
			rd.Client().AddHook(h)
		}
		db = rd
	case config.BackendMemory:
		db = memory.New()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s backend: %w", cfg.StorageBackend, err)
	}
	return db, nil
}
