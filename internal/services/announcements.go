package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"gorm.io/gorm"
)

// Announcement badges
const (
	BadgeLive     = "LIVE"
	BadgeArchived = "ARCHIVED"
)

// Default and maximum list sizes
const (
	DefaultAnnouncementList = 8
	DefaultBannerList       = 10
	MaxAnnouncementList     = 50
)

// AnnouncementView is an announcement with its liveness evaluated at request time
type AnnouncementView struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	StartAt   *time.Time `json:"startAt,omitempty"`
	EndAt     *time.Time `json:"endAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Live      bool       `json:"live"`
	Badge     string     `json:"badge"`
}

func newAnnouncementView(a *models.Announcement, now time.Time) AnnouncementView {
	live := a.IsLive(now)
	badge := BadgeArchived
	if live {
		badge = BadgeLive
	}
	return AnnouncementView{
		ID:        a.ID,
		Title:     strings.TrimSpace(a.Title),
		Body:      strings.TrimSpace(a.Body),
		StartAt:   a.StartAt,
		EndAt:     a.EndAt,
		CreatedAt: a.CreatedAt,
		Live:      live,
		Badge:     badge,
	}
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

func latestAnnouncements(db *gorm.DB, limit int) ([]models.Announcement, error) {
	var rows []models.Announcement
	if err := tagged(db, "announcements").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return rows, nil
}

// ListAnnouncements returns the newest limit announcements, each badged live or archived
func ListAnnouncements(db *gorm.DB, limit int, now time.Time) ([]AnnouncementView, error) {
	rows, err := latestAnnouncements(db, clampLimit(limit, DefaultAnnouncementList, MaxAnnouncementList))
	if err != nil {
		return nil, err
	}

	views := make([]AnnouncementView, 0, len(rows))
	for i := range rows {
		views = append(views, newAnnouncementView(&rows[i], now))
	}
	return views, nil
}

// ActiveAnnouncements returns the live announcements among the newest limit that have
// a title or a body. An untitled one is titled "Announcement".
func ActiveAnnouncements(db *gorm.DB, limit int, now time.Time) ([]AnnouncementView, error) {
	rows, err := latestAnnouncements(db, clampLimit(limit, DefaultBannerList, MaxAnnouncementList))
	if err != nil {
		return nil, err
	}

	views := make([]AnnouncementView, 0, len(rows))
	for i := range rows {
		view := newAnnouncementView(&rows[i], now)
		if !view.Live || (view.Title == "" && view.Body == "") {
			continue
		}
		if view.Title == "" {
			view.Title = "Announcement"
		}
		views = append(views, view)
	}
	return views, nil
}
