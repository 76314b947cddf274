package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

// testDir writes a config.yml pointing at a fresh SQLite file.
func testDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	yml := "STORAGE_BACKEND: sqlite\nDATABASE_PATH: " + filepath.Join(dir, "cli.db") + "\nBCRYPT_COST: 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	return dir
}

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), append([]string{"-config", dir}, args...), &out)
	return out.String(), err
}

func TestSessionPersistsAcrossRuns(t *testing.T) {
	dir := testDir(t)

	out, err := runCLI(t, dir, "register", "-name", "Ada Lovelace", "-email", "ada@example.com", "-password", "Secret1!pass")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace <ada@example.com> (user)")

	out, err = runCLI(t, dir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")

	_, err = runCLI(t, dir, "logout")
	require.NoError(t, err)
	out, err = runCLI(t, dir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")

	out, err = runCLI(t, dir, "login", "-email", store.AdminEmail, "-password", store.AdminPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "(admin)")
}

func TestRegister_Rejects(t *testing.T) {
	dir := testDir(t)

	_, err := runCLI(t, dir, "register", "-name", "Ada", "-email", "not-an-email", "-password", "Secret1!pass")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "register", "-name", "Admin Copy", "-email", store.AdminEmail, "-password", "Secret1!pass")
	assert.Error(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, err := runCLI(t, testDir(t), "login", "-email", store.AdminEmail, "-password", "nope")

	assert.Error(t, err)
}

func TestSeedBrowseStatsReset(t *testing.T) {
	dir := testDir(t)

	out, err := runCLI(t, dir, "seed", "-n", "3", "-seed", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 3 users")

	out, err = runCLI(t, dir, "stats")
	require.NoError(t, err)
	assert.Regexp(t, `active users\s+4\n`, out)

	out, err = runCLI(t, dir, "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")

	_, err = runCLI(t, dir, "reset")
	require.NoError(t, err)
	out, err = runCLI(t, dir, "stats")
	require.NoError(t, err)
	assert.Regexp(t, `active users\s+1\n`, out)
}

func TestUsage(t *testing.T) {
	_, err := runCLI(t, testDir(t))
	assert.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, testDir(t), "dance")
	assert.ErrorIs(t, err, errUsage)
}
