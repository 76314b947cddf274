package domain

import "time"

// Role distinguishes regular members from platform administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// SkillLevel is the self-assessed proficiency attached to a listed skill.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// Valid reports whether l is one of the four known levels.
func (l SkillLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

// Skill is owned by the user that lists it, either as offered or wanted.
type Skill struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Level       SkillLevel `json:"level"`
	Category    string     `json:"category"`
}

// User represents a registered member of the marketplace.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"passwordHash"`
	Location      string    `json:"location,omitempty"`
	ProfilePhoto  string    `json:"profilePhoto,omitempty"`
	SkillsOffered []Skill   `json:"skillsOffered"`
	SkillsWanted  []Skill   `json:"skillsWanted"`
	Availability  []string  `json:"availability"`
	IsPublic      bool      `json:"isPublic"`
	Rating        float64   `json:"rating"`
	TotalRatings  int       `json:"totalRatings"`
	IsActive      bool      `json:"isActive"`
	JoinDate      time.Time `json:"joinDate"`
	Role          Role      `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FindSkill looks up a skill by ID in the user's offered or wanted list.
func (u *User) FindSkill(id string) (Skill, bool) {
	for _, s := range u.SkillsOffered {
		if s.ID == id {
			return s, true
		}
	}
	for _, s := range u.SkillsWanted {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// OffersSkill reports whether id is one of the user's offered skills.
func (u *User) OffersSkill(id string) bool {
	for _, s := range u.SkillsOffered {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can never alias store-owned slices.
func (u User) Clone() User {
	u.SkillsOffered = append([]Skill(nil), u.SkillsOffered...)
	u.SkillsWanted = append([]Skill(nil), u.SkillsWanted...)
	u.Availability = append([]string(nil), u.Availability...)
	return u
}

// UserDraft carries the caller-supplied fields of a new registration.
// Password is the plain credential; it is hashed before it reaches the store.
type UserDraft struct {
	Name          string
	Email         string
	Password      string
	Location      string
	ProfilePhoto  string
	SkillsOffered []Skill
	SkillsWanted  []Skill
	Availability  []string
	IsPublic      *bool
}

// ProfilePatch enumerates the only fields a profile update may change.
// Nil fields are left untouched.
type ProfilePatch struct {
	Name          *string
	Location      *string
	ProfilePhoto  *string
	SkillsOffered *[]Skill
	SkillsWanted  *[]Skill
	Availability  *[]string
	IsPublic      *bool
}

// Apply returns u with the non-nil patch fields merged in.
func (p ProfilePatch) Apply(u User) User {
	u = u.Clone()
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.ProfilePhoto != nil {
		u.ProfilePhoto = *p.ProfilePhoto
	}
	if p.SkillsOffered != nil {
		u.SkillsOffered = append([]Skill(nil), (*p.SkillsOffered)...)
	}
	if p.SkillsWanted != nil {
		u.SkillsWanted = append([]Skill(nil), (*p.SkillsWanted)...)
	}
	if p.Availability != nil {
		u.Availability = append([]string(nil), (*p.Availability)...)
	}
	if p.IsPublic != nil {
		u.IsPublic = *p.IsPublic
	}
	return u
}

// AvailabilitySlots lists the labels offered by the profile and browse forms.
var AvailabilitySlots = []string{
	"Weekdays Morning", "Weekdays Afternoon", "Weekdays Evening",
	"Weekends Morning", "Weekends Afternoon", "Weekends Evening",
}

// SkillCategories lists the categories offered by the profile form.
var SkillCategories = []string{
	"Programming", "Design", "Marketing", "Business", "Language",
	"Music", "Photography", "Writing", "Cooking", "Fitness",
}
