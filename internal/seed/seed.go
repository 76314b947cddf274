// Package seed fills a store with fake demo members for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// DemoPassword is the credential shared by every seeded account.
const DemoPassword = "Demo1234!"

// maxAttempts bounds retries when the faker produces an email already taken.
const maxAttempts = 5

var skillNames = map[string][]string{
	"Programming": {"Go", "Python", "JavaScript", "Rust", "SQL"},
	"Design":      {"Figma", "Illustration", "UI Design", "Typography"},
	"Marketing":   {"SEO", "Copywriting", "Social Media", "Email Campaigns"},
	"Business":    {"Bookkeeping", "Negotiation", "Product Management"},
	"Language":    {"Spanish", "French", "Japanese", "German"},
	"Music":       {"Guitar", "Piano", "Music Theory", "Singing"},
	"Photography": {"Portraits", "Lightroom", "Film Photography"},
	"Writing":     {"Technical Writing", "Poetry", "Editing"},
	"Cooking":     {"Baking", "Knife Skills", "Vegan Cooking"},
	"Fitness":     {"Yoga", "Running", "Strength Training"},
}

var levels = []string{
	string(domain.LevelBeginner), string(domain.LevelIntermediate),
	string(domain.LevelAdvanced), string(domain.LevelExpert),
}

// Registrar creates accounts without starting a session.
type Registrar interface {
	RegisterUser(ctx context.Context, draft domain.UserDraft) (domain.User, bool)
}

// Options tunes seeding.
type Options struct {
	// Seed makes the generated data reproducible. Zero uses the clock.
	Seed int64
	// Password overrides DemoPassword.
	Password string
}

// Users registers n fake members and returns them.
func Users(ctx context.Context, r Registrar, n int, opts Options) ([]domain.User, error) {
	if n < 0 {
		return nil, fmt.Errorf("seed: negative user count %d", n)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Password == "" {
		opts.Password = DemoPassword
	}
	f := gofakeit.New(opts.Seed)

	users := make([]domain.User, 0, n)
	for range n {
		if err := ctx.Err(); err != nil {
			return users, err
		}
		u, err := register(ctx, r, f, opts.Password)
		if err != nil {
			return users, err
		}
		users = append(users, u)
	}
	return users, nil
}

func register(ctx context.Context, r Registrar, f *gofakeit.Faker, password string) (domain.User, error) {
	for range maxAttempts {
		draft := Draft(f)
		draft.Password = password
		if u, ok := r.RegisterUser(ctx, draft); ok {
			return u, nil
		}
	}
	return domain.User{}, errors.New("seed: could not register a unique user")
}

// Draft builds a random registration.
func Draft(f *gofakeit.Faker) domain.UserDraft {
	first, last := letters(f.FirstName(), "Alex"), letters(f.LastName(), "Doe")
	isPublic := f.Number(1, 10) > 2
	return domain.UserDraft{
		Name:          first + " " + last,
		Email:         strings.ToLower(fmt.Sprintf("%s.%s.%d@example.com", first, last, f.Number(1, 9999))),
		Location:      f.City(),
		SkillsOffered: skills(f, f.Number(1, 3)),
		SkillsWanted:  skills(f, f.Number(1, 2)),
		Availability:  pick(f, domain.AvailabilitySlots, f.Number(1, 3)),
		IsPublic:      &isPublic,
	}
}

// letters drops everything but ASCII letters, falling back when too little is left.
func letters(s, fallback string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, s)
	if len(s) < 2 {
		return fallback
	}
	return s
}

func skills(f *gofakeit.Faker, n int) []domain.Skill {
	out := make([]domain.Skill, 0, n)
	for _, category := range pick(f, domain.SkillCategories, n) {
		out = append(out, domain.Skill{
			ID:          "skill-" + uuid.NewString(),
			Name:        f.RandomString(skillNames[category]),
			Description: f.Sentence(8),
			Level:       domain.SkillLevel(f.RandomString(levels)),
			Category:    category,
		})
	}
	return out
}

// pick returns n distinct elements of from in random order.
func pick(f *gofakeit.Faker, from []string, n int) []string {
	shuffled := append([]string(nil), from...)
	f.ShuffleStrings(shuffled)
	return shuffled[:min(n, len(shuffled))]
}
