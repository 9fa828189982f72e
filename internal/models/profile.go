package models

import (
	"time"

	"gorm.io/datatypes"
)

// OnlineLinks holds the optional social/profile URLs for a profile.
type OnlineLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Github    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// ExperienceEntry is a work history item embedded in a profile document.
type ExperienceEntry struct {
	ID          string     `json:"id"`
	UserID      uint       `json:"user"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// EntryID returns the entry identifier.
func (e ExperienceEntry) EntryID() string { return e.ID }

// OwnerID returns the id of the user that created the entry.
func (e ExperienceEntry) OwnerID() uint { return e.UserID }

// EducationEntry is an education history item embedded in a profile document.
type EducationEntry struct {
	ID          string     `json:"id"`
	UserID      uint       `json:"user"`
	School      string     `json:"school"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// EntryID returns the entry identifier.
func (e EducationEntry) EntryID() string { return e.ID }

// OwnerID returns the id of the user that created the entry.
func (e EducationEntry) OwnerID() uint { return e.UserID }

// Profile is the parent document for a user's public profile. The nested
// experience and education lists are stored as JSON document columns and
// persisted as a whole with the parent row.
type Profile struct {
	ID         uint                                 `gorm:"primaryKey" json:"id"`
	UserID     uint                                 `gorm:"uniqueIndex;not null" json:"user_id"`
	Handle     string                               `gorm:"uniqueIndex;size:30;not null" json:"handle"`
	Company    string                               `gorm:"size:100" json:"company,omitempty"`
	Location   string                               `gorm:"size:100" json:"location,omitempty"`
	Status     string                               `gorm:"size:100;not null" json:"status"`
	Bio        string                               `gorm:"size:1000" json:"bio,omitempty"`
	Skills     datatypes.JSONSlice[string]          `json:"skills"`
	Online     datatypes.JSONType[OnlineLinks]      `json:"online"`
	Experience datatypes.JSONSlice[ExperienceEntry] `json:"experience"`
	Education  datatypes.JSONSlice[EducationEntry]  `json:"education"`
	CreatedAt  time.Time                            `json:"created_at"`
	// User is the populated owner projection; not persisted.
	User *UserRef `gorm:"-" json:"user,omitempty"`
}
