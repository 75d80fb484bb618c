package services

import (
	"fmt"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/achievements"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Event is a tracked reader action
type Event string

const (
	EventComment Event = "comment"
	EventReply   Event = "reply"
	EventReact   Event = "react"
	EventRate    Event = "rate"
	EventRead    Event = "read"
)

var eventColumns = map[Event]string{
	EventComment: "comments",
	EventReply:   "replies",
	EventReact:   "reactions",
	EventRate:    "ratings",
	EventRead:    "reads",
}

// ParseEvent maps an event name to an Event
func ParseEvent(name string) (Event, bool) {
	e := Event(name)
	_, ok := eventColumns[e]
	return e, ok
}

// TrackEngagement increments the reader's counter for event on bookID
func TrackEngagement(db *gorm.DB, bookID string, reader identity.Reader, event Event, now time.Time) error {
	column, ok := eventColumns[event]
	if !ok {
		return fmt.Errorf("unknown engagement event %q", event)
	}

	return runTx(db, func(tx *gorm.DB) error {
		row := models.Engagement{BookID: bookID, ReaderKey: reader.Key(), LastAt: now.UTC()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Model(&models.Engagement{}).
			Where("book_id = ? AND reader_key = ?", bookID, reader.Key()).
			Updates(map[string]interface{}{
				column:    gorm.Expr(column+" + ?", 1),
				"last_at": now.UTC(),
			}).Error
	})
}

// GetEngagement returns the reader's counters for bookID, zero when nothing was tracked
func GetEngagement(db *gorm.DB, bookID string, reader identity.Reader) (*models.Engagement, error) {
	var rows []models.Engagement
	if err := db.Where("book_id = ? AND reader_key = ?", bookID, reader.Key()).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get engagement: %w", err)
	}
	if len(rows) == 0 {
		return &models.Engagement{BookID: bookID, ReaderKey: reader.Key()}, nil
	}
	return &rows[0], nil
}

func engagementFor(e *models.Engagement) achievements.Engagement {
	return achievements.Engagement{
		Comments:  e.Comments,
		Replies:   e.Replies,
		Reactions: e.Reactions,
		Ratings:   e.Ratings,
	}
}
