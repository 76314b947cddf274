package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

func directoryFixture() []domain.User {
	return []domain.User{
		{
			ID: "viewer", Name: "Viewer", IsActive: true, IsPublic: true,
			SkillsOffered: []domain.Skill{{Name: "Go", Category: "Programming"}},
		},
		{
			ID: "a", Name: "Alice Green", IsActive: true, IsPublic: true, Location: "Berlin",
			SkillsOffered: []domain.Skill{{Name: "Logo design", Description: "Brand identity work", Category: "Design"}},
			Availability:  []string{"Weekends Morning"},
		},
		{
			ID: "b", Name: "Bruno Diaz", IsActive: true, IsPublic: true, Location: "Madrid",
			SkillsOffered: []domain.Skill{{Name: "Python", Description: "Data scripts", Category: "Programming"}},
			SkillsWanted:  []domain.Skill{{Name: "Guitar", Category: "Music"}},
			Availability:  []string{"Weekdays Evening"},
		},
		{
			ID: "banned", Name: "Banned Person", IsActive: false, IsPublic: true,
			SkillsOffered: []domain.Skill{{Name: "Python", Category: "Programming"}},
		},
		{
			ID: "private", Name: "Private Person", IsActive: true, IsPublic: false,
			SkillsOffered: []domain.Skill{{Name: "Python", Category: "Programming"}},
		},
	}
}

func ids(users []domain.User) []string {
	out := []string{}
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestFilterDirectory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query store.DirectoryQuery
		want  []string
	}{
		{"no filters", store.DirectoryQuery{}, []string{"a", "b"}},
		{"category", store.DirectoryQuery{Category: "Programming"}, []string{"b"}},
		{"category all", store.DirectoryQuery{Category: "All"}, []string{"a", "b"}},
		{"wanted skill category", store.DirectoryQuery{Category: "Music"}, []string{"b"}},
		{"term matches name case-insensitively", store.DirectoryQuery{Term: "ALICE"}, []string{"a"}},
		{"term matches skill description", store.DirectoryQuery{Term: "brand"}, []string{"a"}},
		{"term matches wanted skill", store.DirectoryQuery{Term: "guitar"}, []string{"b"}},
		{"term matches skill category", store.DirectoryQuery{Term: "design"}, []string{"a"}},
		{"location substring", store.DirectoryQuery{Location: "mad"}, []string{"b"}},
		{"availability", store.DirectoryQuery{Availability: "Weekends Morning"}, []string{"a"}},
		{"availability all", store.DirectoryQuery{Availability: "All"}, []string{"a", "b"}},
		{"combined filters narrow", store.DirectoryQuery{Term: "python", Location: "berlin"}, []string{}},
		{"no match", store.DirectoryQuery{Term: "knitting"}, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := store.FilterDirectory(directoryFixture(), "viewer", tc.query)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFilterDirectory_ExcludesViewer(t *testing.T) {
	t.Parallel()

	got := store.FilterDirectory(directoryFixture(), "a", store.DirectoryQuery{})

	assert.Equal(t, []string{"viewer", "b"}, ids(got))
}

func TestFilterDirectory_ReturnsCopies(t *testing.T) {
	t.Parallel()
	users := directoryFixture()

	got := store.FilterDirectory(users, "viewer", store.DirectoryQuery{Category: "Design"})
	got[0].SkillsOffered[0].Name = "changed"

	assert.Equal(t, "Logo design", users[1].SkillsOffered[0].Name)
}

func TestDirectoryQuery_Key(t *testing.T) {
	t.Parallel()

	q := store.DirectoryQuery{Term: "Go", Category: "Programming"}

	assert.Equal(t, q.Key("u1"), store.DirectoryQuery{Term: "go", Category: "Programming"}.Key("u1"))
	assert.NotEqual(t, q.Key("u1"), q.Key("u2"))
	assert.NotEqual(t, q.Key("u1"), store.DirectoryQuery{Term: "Go", Category: "Design"}.Key("u1"))
}
