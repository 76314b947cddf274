package sqlite_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository/sqlite"
)

var _ domain.Database = (*sqlite.DB)(nil)

func newTestDB(t *testing.T) (*sqlite.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db, path
}

func TestNew(t *testing.T) {
	db, path := newTestDB(t)

	_, err := os.Stat(path)
	require.NoError(t, err)

	var fkEnabled int
	require.NoError(t, db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled))
	assert.Equal(t, 1, fkEnabled)
}

func TestMigrateTwice(t *testing.T) {
	db, _ := newTestDB(t)
	assert.NoError(t, db.Migrate(context.Background()))
}

func TestGetMissing(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.Get(context.Background(), domain.KeyUsers)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPutOverwrites(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Put(ctx, domain.KeyUsers, json.RawMessage(`[{"id":"a"}]`)))
	require.NoError(t, db.Put(ctx, domain.KeyUsers, json.RawMessage(`[{"id":"b"}]`)))

	got, err := db.Get(ctx, domain.KeyUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b"}]`, string(got))
}

func TestDelete(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Put(ctx, domain.KeyUsers, json.RawMessage(`[]`)))
	require.NoError(t, db.Put(ctx, domain.KeyRatings, json.RawMessage(`[]`)))

	require.NoError(t, db.Delete(ctx, domain.SnapshotKeys...))

	for _, key := range []string{domain.KeyUsers, domain.KeyRatings} {
		_, err := db.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrNotFound, key)
	}
}

func TestSurvivesReopen(t *testing.T) {
	db, path := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Put(ctx, domain.KeyCurrentUser, json.RawMessage(`null`)))
	require.NoError(t, db.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, domain.KeyCurrentUser)
	require.NoError(t, err)
	assert.Equal(t, "null", string(got))
}
