package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsentText is stored with every subscription
const ConsentText = "User opted in to notifications. Carrier rates may apply for SMS."

// Subscriber is an immutable record of one notification opt-in
type Subscriber struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        *string   `gorm:"size:80;index" json:"userId,omitempty"`
	Email         *string   `gorm:"size:255" json:"email,omitempty"`
	Phone         *string   `gorm:"size:32" json:"phone,omitempty"`
	NotifyEmail   bool      `gorm:"not null" json:"notifyEmail"`
	NotifySMS     bool      `gorm:"column:notify_sms;not null" json:"notifySms"`
	BookID        string    `gorm:"size:128;index" json:"bookId"`
	ConsentText   string    `gorm:"size:255;not null" json:"consentText"`
	Source        string    `gorm:"size:255" json:"source"`
	SchemaVersion int       `gorm:"not null;default:1" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BeforeCreate assigns an id and schema version
func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SchemaVersion
	}
	return nil
}

// NotificationPrefs holds a reader's notification choices and opt-in prompt state
type NotificationPrefs struct {
	ReaderKey       string     `gorm:"primaryKey;size:80" json:"-"`
	NotifyEmail     bool       `gorm:"not null" json:"email"`
	NotifySMS       bool       `gorm:"column:notify_sms;not null" json:"sms"`
	EmailValue      string     `gorm:"size:255" json:"emailVal"`
	PhoneValue      string     `gorm:"size:32" json:"phoneVal"`
	OptInPromptedAt *time.Time `json:"optInPromptedAt,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TermsAcceptance records the terms version a reader key accepted
type TermsAcceptance struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ReaderKey  string    `gorm:"size:80;not null;uniqueIndex"`
	Version    int       `gorm:"not null"`
	AcceptedAt time.Time `gorm:"not null"`
}

// AchievementLedger holds the milestones a signed-in reader unlocked for an item
type AchievementLedger struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	BookID    string `gorm:"size:128;not null;uniqueIndex:idx_achievement_ledger"`
	UserID    string `gorm:"size:80;not null;uniqueIndex:idx_achievement_ledger"`
	Unlocked  JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Subscriber
func (Subscriber) TableName() string {
	return "subscribers"
}

// TableName overrides the table name for NotificationPrefs
func (NotificationPrefs) TableName() string {
	return "notification_prefs"
}

// TableName overrides the table name for TermsAcceptance
func (TermsAcceptance) TableName() string {
	return "terms_acceptances"
}

// TableName overrides the table name for AchievementLedger
func (AchievementLedger) TableName() string {
	return "achievement_ledgers"
}
