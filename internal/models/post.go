package models

import (
	"time"

	"gorm.io/datatypes"
)

// LikeRecord marks a single user's like on a post. A post holds at most one
// record per user.
type LikeRecord struct {
	UserID uint `json:"user"`
}

// CommentEntry is a comment embedded in a post document.
type CommentEntry struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryID returns the comment identifier.
func (c CommentEntry) EntryID() string { return c.ID }

// OwnerID returns the id of the user that wrote the comment.
func (c CommentEntry) OwnerID() uint { return c.UserID }

// Post is the parent document for a feed post. Likes and comments are stored
// as JSON document columns, newest first, and persisted as a whole with the
// parent row.
type Post struct {
	ID        uint                              `gorm:"primaryKey" json:"id"`
	UserID    uint                              `gorm:"index;not null" json:"user_id"`
	Text      string                            `gorm:"size:5000;not null" json:"text"`
	Name      string                            `gorm:"size:100" json:"name,omitempty"`
	Avatar    string                            `json:"avatar,omitempty"`
	Likes     datatypes.JSONSlice[LikeRecord]   `json:"likes"`
	Comments  datatypes.JSONSlice[CommentEntry] `json:"comments"`
	CreatedAt time.Time                         `json:"created_at"`
	UpdatedAt time.Time                         `json:"updated_at"`
	// User is the populated owner projection; not persisted.
	User *UserRef `gorm:"-" json:"user,omitempty"`
}

// LikedBy reports whether the given user currently likes the post.
func (p *Post) LikedBy(userID uint) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
