package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchemaVersion is stamped on every record so later migrations can normalize on read
const SchemaVersion = 1

// Announcement is a site-wide notice with an optional display window
type Announcement struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `gorm:"size:255" json:"title"`
	Body          string     `gorm:"type:text" json:"body"`
	StartAt       *time.Time `json:"startAt,omitempty"`
	EndAt         *time.Time `json:"endAt,omitempty"`
	Active        *bool      `json:"active,omitempty"`
	SchemaVersion int        `gorm:"not null;default:1" json:"-"`
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`
}

// BeforeCreate assigns an id when none is set
func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.SchemaVersion == 0 {
		a.SchemaVersion = SchemaVersion
	}
	return nil
}

// IsLive reports whether the announcement shows at now. A missing bound is open;
// an explicit Active=false always hides it.
func (a *Announcement) IsLive(now time.Time) bool {
	if a.Active != nil && !*a.Active {
		return false
	}
	if a.StartAt != nil && now.Before(*a.StartAt) {
		return false
	}
	if a.EndAt != nil && now.After(*a.EndAt) {
		return false
	}
	return true
}

// TableName overrides the table name for Announcement
func (Announcement) TableName() string {
	return "announcements"
}
