package store

import (
	"slices"
	"strings"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

const allOption = "All"

// FilterDirectory returns the browsable users for viewerID: never the viewer
// itself, inactive users or private profiles. The remaining users must pass
// every active filter in q.
func FilterDirectory(users []domain.User, viewerID string, q DirectoryQuery) []domain.User {
	term := strings.ToLower(q.Term)
	location := strings.ToLower(q.Location)

	out := []domain.User{}
	for _, u := range users {
		if u.ID == viewerID || !u.IsActive || !u.IsPublic {
			continue
		}
		if term != "" && !matchesTerm(u, term) {
			continue
		}
		if q.Category != "" && q.Category != allOption && !hasCategory(u, q.Category) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(u.Location), location) {
			continue
		}
		if q.Availability != "" && q.Availability != allOption && !slices.Contains(u.Availability, q.Availability) {
			continue
		}
		out = append(out, u.Clone())
	}
	return out
}

func matchesTerm(u domain.User, term string) bool {
	if strings.Contains(strings.ToLower(u.Name), term) {
		return true
	}
	return slices.ContainsFunc(u.SkillsOffered, skillMatches(term)) ||
		slices.ContainsFunc(u.SkillsWanted, skillMatches(term))
}

func skillMatches(term string) func(domain.Skill) bool {
	return func(s domain.Skill) bool {
		return strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(s.Description), term) ||
			strings.Contains(strings.ToLower(s.Category), term)
	}
}

func hasCategory(u domain.User, category string) bool {
	same := func(s domain.Skill) bool { return s.Category == category }
	return slices.ContainsFunc(u.SkillsOffered, same) || slices.ContainsFunc(u.SkillsWanted, same)
}
