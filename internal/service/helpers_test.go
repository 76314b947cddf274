package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository/memory"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

const testPassword = "Secret1!pass"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(memory.New(), store.WithHasher(store.NewBcryptHasher(bcrypt.MinCost)))
	require.NoError(t, st.Load(context.Background()))
	return st
}

func addUser(t *testing.T, st *store.Store, name, email string, offered ...domain.Skill) domain.User {
	t.Helper()
	u, ok := st.RegisterUser(context.Background(), domain.UserDraft{
		Name:          name,
		Email:         email,
		Password:      testPassword,
		SkillsOffered: offered,
	})
	require.True(t, ok)
	return u
}

func skill(id, name, category string) domain.Skill {
	return domain.Skill{ID: id, Name: name, Description: name + " lessons for all levels", Level: domain.LevelIntermediate, Category: category}
}

func admin(t *testing.T, st *store.Store) domain.User {
	t.Helper()
	u, ok := st.UserByID(store.AdminID)
	require.True(t, ok)
	return u
}
