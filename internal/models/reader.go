package models

import "time"

// BookStats holds the aggregate counters of one reading item
type BookStats struct {
	BookID          string    `gorm:"primaryKey;size:128" json:"bookId"`
	TotalReaders    int64     `gorm:"not null;default:0" json:"totalReaders"`
	SignedInReaders int64     `gorm:"not null;default:0" json:"signedInReaders"`
	GuestReaders    int64     `gorm:"not null;default:0" json:"guestReaders"`
	Opens           int64     `gorm:"not null;default:0" json:"opens"`
	Reads           int64     `gorm:"not null;default:0" json:"reads"`
	Subscribers     int64     `gorm:"not null;default:0" json:"subscribers"`
	SchemaVersion   int       `gorm:"not null;default:1" json:"-"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReaderMarker records that a reader has been counted for an item
type ReaderMarker struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	BookID    string    `gorm:"size:128;not null;uniqueIndex:idx_reader_marker"`
	ReaderKey string    `gorm:"size:80;not null;uniqueIndex:idx_reader_marker"`
	SignedIn  bool      `gorm:"not null"`
	CreatedAt time.Time
}

// Engagement holds one reader's activity counters for an item
type Engagement struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	BookID    string    `gorm:"size:128;not null;uniqueIndex:idx_engagement" json:"bookId"`
	ReaderKey string    `gorm:"size:80;not null;uniqueIndex:idx_engagement" json:"-"`
	Comments  int64     `gorm:"not null;default:0" json:"comments"`
	Replies   int64     `gorm:"not null;default:0" json:"replies"`
	Reactions int64     `gorm:"not null;default:0" json:"reactions"`
	Ratings   int64     `gorm:"not null;default:0" json:"ratings"`
	Reads     int64     `gorm:"not null;default:0" json:"reads"`
	LastAt    time.Time `json:"lastAt"`
}

// TableName overrides the table name for BookStats
func (BookStats) TableName() string {
	return "book_stats"
}

// TableName overrides the table name for ReaderMarker
func (ReaderMarker) TableName() string {
	return "reader_markers"
}

// TableName overrides the table name for Engagement
func (Engagement) TableName() string {
	return "engagement"
}
