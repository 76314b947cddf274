package service

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/cache"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

// Search cache defaults.
const (
	SearchCacheTTL  = 2 * time.Minute
	SearchCacheSize = 20
)

// DirectorySource is the part of the store the directory reads.
type DirectorySource interface {
	Directory(viewerID string, q store.DirectoryQuery) []domain.User
	UserByID(id string) (domain.User, bool)
	Subscribe(fn store.Listener) func()
}

// DirectoryService serves the browse page from a short-lived cache that is
// invalidated whenever users change.
type DirectoryService struct {
	source      DirectorySource
	results     *cache.Cache[string, []domain.User]
	generation  atomic.Uint64
	unsubscribe func()
}

// NewDirectoryService subscribes to source. Call Close to detach.
func NewDirectoryService(source DirectorySource, opts ...cache.Option) *DirectoryService {
	opts = append([]cache.Option{
		cache.WithName("search"),
		cache.WithTTL(SearchCacheTTL),
		cache.WithMaxSize(SearchCacheSize),
	}, opts...)
	d := &DirectoryService{
		source:  source,
		results: cache.New[string, []domain.User](opts...),
	}
	d.unsubscribe = source.Subscribe(d.onChange)
	return d
}

func (d *DirectoryService) onChange(_ store.State, a store.Action) {
	switch a.(type) {
	case store.AddUser, store.UpdateUser, store.SetUsers:
		d.generation.Add(1)
		d.results.Clear()
	}
}

// Browse lists the users viewerID may see under q.
func (d *DirectoryService) Browse(ctx context.Context, viewerID string, q store.DirectoryQuery) ([]domain.User, error) {
	// A load racing with an invalidation is stored under the old generation
	// and never read again.
	key := strconv.FormatUint(d.generation.Load(), 10) + "/" + q.Key(viewerID)
	return d.results.GetOrLoad(ctx, key, 0, func(context.Context) ([]domain.User, error) {
		return d.source.Directory(viewerID, q), nil
	})
}

// Profile returns userID as seen by viewer. Private and banned profiles are
// only visible to their owner and to admins.
func (d *DirectoryService) Profile(viewer domain.User, userID string) (domain.User, error) {
	u, ok := d.source.UserByID(userID)
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if u.ID == viewer.ID || viewer.IsAdmin() || (u.IsPublic && u.IsActive) {
		return u, nil
	}
	return domain.User{}, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
}

// CacheStats reports the search cache counters.
func (d *DirectoryService) CacheStats() cache.Stats {
	return d.results.Stats()
}

func (d *DirectoryService) Close() {
	d.unsubscribe()
}
