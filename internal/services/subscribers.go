package services

import (
	"fmt"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Subscription messages
const (
	MsgSubscribeSignIn = "Please sign in (or create an account) to subscribe."
	MsgChooseChannel   = "Choose Email and/or SMS first."
	MsgEmailRequired   = "Enter your email to enable email notifications."
	MsgPhoneRequired   = "Enter your phone number to enable SMS notifications."
	MsgEmailInvalid    = "That email doesn’t look right."
	MsgSubscribed      = "Subscribed ✅"
)

// SubscribeInput is a notification opt-in form submission
type SubscribeInput struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	NotifyEmail bool   `json:"notifyEmail"`
	NotifySMS   bool   `json:"notifySms"`
	BookID      string `json:"bookId"`
	Source      string `json:"source"`
}

// NotifyPrefsInput carries a reader's notification preference changes
type NotifyPrefsInput struct {
	Email    bool   `json:"email"`
	SMS      bool   `json:"sms"`
	EmailVal string `json:"emailVal"`
	PhoneVal string `json:"phoneVal"`
}

// validateChannels applies the opt-in rules in the order readers see them
func validateChannels(wantsEmail, wantsSMS bool, email, phone string) error {
	if !wantsEmail && !wantsSMS {
		return types.Validation(MsgChooseChannel)
	}
	if wantsEmail && email == "" {
		return types.Validation(MsgEmailRequired)
	}
	if wantsSMS && phone == "" {
		return types.Validation(MsgPhoneRequired)
	}
	if email != "" && !validation.ValidateEmail(email) {
		return types.Validation(MsgEmailInvalid)
	}
	return nil
}

// Subscribe records a notification opt-in for a signed-in reader, stores the choice in the
// reader's preferences and counts the subscriber on the item
func Subscribe(db *gorm.DB, reader identity.Reader, in SubscribeInput) (*models.Subscriber, error) {
	if !reader.SignedIn() {
		return nil, types.SignInRequired(MsgSubscribeSignIn)
	}

	email := validation.NormalizeEmail(in.Email)
	phone := validation.NormalizePhone(in.Phone)
	if err := validateChannels(in.NotifyEmail, in.NotifySMS, email, phone); err != nil {
		return nil, err
	}

	uid := reader.UserID
	sub := &models.Subscriber{
		UserID:      &uid,
		NotifyEmail: in.NotifyEmail,
		NotifySMS:   in.NotifySMS,
		BookID:      in.BookID,
		ConsentText: models.ConsentText,
		Source:      validation.TrimAndLimit(in.Source, 255),
	}
	if in.NotifyEmail {
		sub.Email = &email
	}
	if in.NotifySMS {
		sub.Phone = &phone
	}

	prefs := &models.NotificationPrefs{
		ReaderKey:   reader.Key(),
		NotifyEmail: in.NotifyEmail,
		NotifySMS:   in.NotifySMS,
	}
	if in.NotifyEmail {
		prefs.EmailValue = email
	}
	if in.NotifySMS {
		prefs.PhoneValue = phone
	}

	err := runTx(db, func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		if err := upsertPrefs(tx, prefs); err != nil {
			return err
		}
		if in.BookID != "" {
			return bumpStats(tx, in.BookID, map[string]int64{"subscribers": 1})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	return sub, nil
}

// GetNotifyPrefs returns the reader's preferences; readers who never chose get the zero value
func GetNotifyPrefs(db *gorm.DB, reader identity.Reader) (*models.NotificationPrefs, error) {
	var rows []models.NotificationPrefs
	if err := db.Where("reader_key = ?", reader.Key()).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get notification prefs: %w", err)
	}
	if len(rows) == 0 {
		return &models.NotificationPrefs{ReaderKey: reader.Key()}, nil
	}
	return &rows[0], nil
}

// SaveNotifyPrefs stores the reader's preferences. Values of disabled channels are cleared.
func SaveNotifyPrefs(db *gorm.DB, reader identity.Reader, in NotifyPrefsInput) (*models.NotificationPrefs, error) {
	email := validation.NormalizeEmail(in.EmailVal)
	phone := validation.NormalizePhone(in.PhoneVal)

	if in.Email || in.SMS {
		if err := validateChannels(in.Email, in.SMS, email, phone); err != nil {
			return nil, err
		}
	}

	prefs := &models.NotificationPrefs{
		ReaderKey:   reader.Key(),
		NotifyEmail: in.Email,
		NotifySMS:   in.SMS,
	}
	if in.Email {
		prefs.EmailValue = email
	}
	if in.SMS {
		prefs.PhoneValue = phone
	}

	if err := upsertPrefs(db, prefs); err != nil {
		return nil, fmt.Errorf("save notification prefs: %w", err)
	}

	return GetNotifyPrefs(db, reader)
}

// MarkOptInPrompted records that the reader has been shown the notification opt-in prompt.
// The first time sticks.
func MarkOptInPrompted(db *gorm.DB, reader identity.Reader, now time.Time) (*models.NotificationPrefs, error) {
	err := runTx(db, func(tx *gorm.DB) error {
		row := models.NotificationPrefs{ReaderKey: reader.Key()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Model(&models.NotificationPrefs{}).
			Where("reader_key = ? AND opt_in_prompted_at IS NULL", reader.Key()).
			Update("opt_in_prompted_at", now.UTC()).Error
	})
	if err != nil {
		return nil, fmt.Errorf("mark opt-in prompted: %w", err)
	}

	return GetNotifyPrefs(db, reader)
}

func upsertPrefs(tx *gorm.DB, prefs *models.NotificationPrefs) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reader_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"notify_email", "notify_sms", "email_value", "phone_value", "updated_at"}),
	}).Create(prefs).Error
}

// ListSubscribers returns the newest subscriptions, optionally for one item
func ListSubscribers(db *gorm.DB, bookID string, limit int) ([]models.Subscriber, error) {
	q := tagged(db, "subscribers").Order("created_at DESC").Limit(clampLimit(limit, 100, 500))
	if bookID != "" {
		q = q.Where("book_id = ?", bookID)
	}
	var rows []models.Subscriber
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return rows, nil
}
