package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

func TestDirectoryService_BrowseFiltersAndCaches(t *testing.T) {
	st := newTestStore(t)
	dir := service.NewDirectoryService(st)
	t.Cleanup(dir.Close)
	ctx := context.Background()

	addUser(t, st, "Alice Green", "alice@example.com", skill("a1", "Logo design", "Design"))
	bob := addUser(t, st, "Bob Ray", "bob@example.com", skill("b1", "Python", "Programming"))

	got, err := dir.Browse(ctx, "viewer", store.DirectoryQuery{Category: "Programming"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bob.ID, got[0].ID)

	_, err = dir.Browse(ctx, "viewer", store.DirectoryQuery{Category: "Programming"})
	require.NoError(t, err)
	stats := dir.CacheStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, service.SearchCacheSize, stats.MaxSize)
}

func TestDirectoryService_InvalidatesOnUserChange(t *testing.T) {
	st := newTestStore(t)
	dir := service.NewDirectoryService(st)
	t.Cleanup(dir.Close)
	ctx := context.Background()
	q := store.DirectoryQuery{Term: "python"}

	got, err := dir.Browse(ctx, "viewer", q)
	require.NoError(t, err)
	assert.Empty(t, got)

	u := addUser(t, st, "Bob Ray", "bob@example.com", skill("b1", "Python", "Programming"))
	got, err = dir.Browse(ctx, "viewer", q)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	st.BanUser(ctx, u.ID)
	got, err = dir.Browse(ctx, "viewer", q)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDirectoryService_IgnoresUnrelatedActions(t *testing.T) {
	st := newTestStore(t)
	dir := service.NewDirectoryService(st)
	t.Cleanup(dir.Close)
	ctx := context.Background()
	addUser(t, st, "Bob Ray", "bob@example.com", skill("b1", "Python", "Programming"))

	_, err := dir.Browse(ctx, "viewer", store.DirectoryQuery{})
	require.NoError(t, err)
	st.SearchUsers(ctx, "x", "y")
	st.CreateSwapRequest(ctx, domain.SwapDraft{FromUserID: "a", ToUserID: "b"})
	_, err = dir.Browse(ctx, "viewer", store.DirectoryQuery{})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), dir.CacheStats().Hits)
}

func TestDirectoryService_Profile(t *testing.T) {
	st := newTestStore(t)
	dir := service.NewDirectoryService(st)
	t.Cleanup(dir.Close)
	ctx := context.Background()
	viewer := addUser(t, st, "Viewer One", "viewer@example.com")
	private := addUser(t, st, "Private Person", "private@example.com")
	hidden := false
	_, ok := st.UpdateUserProfile(ctx, private.ID, domain.ProfilePatch{IsPublic: &hidden})
	require.True(t, ok)

	_, err := dir.Profile(viewer, private.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	self, err := dir.Profile(private, private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, self.ID)

	_, err = dir.Profile(admin(t, st), private.ID)
	assert.NoError(t, err)

	_, err = dir.Profile(viewer, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
