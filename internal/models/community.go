// community.go
//
// Reader community data service for the This Is Us series
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of This-Is-Us-Series.
// This-Is-Us-Series is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// This-Is-Us-Series is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with This-Is-Us-Series.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaction kinds
const (
	ReactionLike = "like"
	ReactionLove = "love"
)

// Comment is a top-level remark on a reading item
type Comment struct {
	ID            string     `gorm:"primaryKey;size:36"`
	BookID        string     `gorm:"size:128;not null;index:idx_comment_book,priority:1"`
	UserID        *string    `gorm:"size:80"`
	GuestToken    *string    `gorm:"size:64"`
	IsAdmin       bool       `gorm:"not null;default:false"`
	Name          string     `gorm:"size:60;not null"`
	Text          string     `gorm:"type:text;not null"`
	Rating        *int       `gorm:"type:smallint"`
	LikeCount     int64      `gorm:"not null;default:0"`
	LoveCount     int64      `gorm:"not null;default:0"`
	SchemaVersion int        `gorm:"not null;default:1"`
	CreatedAt     time.Time  `gorm:"index:idx_comment_book,priority:2"`
	EditableUntil time.Time  `gorm:"not null"`
	EditedAt      *time.Time
	Replies       []Reply `gorm:"foreignKey:CommentID"`
}

// Reply is a response nested under a comment
type Reply struct {
	ID            string     `gorm:"primaryKey;size:36"`
	CommentID     string     `gorm:"size:36;not null;index:idx_reply_comment,priority:1"`
	BookID        string     `gorm:"size:128;not null;index"`
	UserID        *string    `gorm:"size:80"`
	GuestToken    *string    `gorm:"size:64"`
	IsAdmin       bool       `gorm:"not null;default:false"`
	Name          string     `gorm:"size:60;not null"`
	Text          string     `gorm:"type:text;not null"`
	SchemaVersion int        `gorm:"not null;default:1"`
	CreatedAt     time.Time  `gorm:"index:idx_reply_comment,priority:2"`
	EditableUntil time.Time  `gorm:"not null"`
	EditedAt      *time.Time
}

// Reaction is one signed-in reader's reaction to a comment
type Reaction struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	CommentID string `gorm:"size:36;not null;uniqueIndex:idx_reaction"`
	UserID    string `gorm:"size:80;not null;uniqueIndex:idx_reaction"`
	Kind      string `gorm:"size:8;not null"`
	UpdatedAt time.Time
}

// Rating is one signed-in reader's 1..5 rating of an item
type Rating struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	BookID    string `gorm:"size:128;not null;uniqueIndex:idx_rating"`
	UserID    string `gorm:"size:80;not null;uniqueIndex:idx_rating"`
	Rating    int    `gorm:"type:smallint;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Authored is implemented by comments and replies for ownership checks
type Authored interface {
	AuthorUserID() string
	AuthorGuestToken() string
	EditDeadline() time.Time
}

func (c *Comment) AuthorUserID() string { return deref(c.UserID) }
func (c *Comment) AuthorGuestToken() string { return deref(c.GuestToken) }
func (c *Comment) EditDeadline() time.Time { return c.EditableUntil }

func (r *Reply) AuthorUserID() string { return deref(r.UserID) }
func (r *Reply) AuthorGuestToken() string { return deref(r.GuestToken) }
func (r *Reply) EditDeadline() time.Time { return r.EditableUntil }

// BeforeCreate assigns an id and schema version
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.SchemaVersion == 0 {
		c.SchemaVersion = SchemaVersion
	}
	return nil
}

// BeforeCreate assigns an id and schema version
func (r *Reply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.SchemaVersion == 0 {
		r.SchemaVersion = SchemaVersion
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// TableName overrides the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// TableName overrides the table name for Reply
func (Reply) TableName() string {
	return "replies"
}

// TableName overrides the table name for Reaction
func (Reaction) TableName() string {
	return "reactions"
}

// TableName overrides the table name for Rating
func (Rating) TableName() string {
	return "ratings"
}
