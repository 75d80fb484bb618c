package services

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Rating messages
const (
	MsgRateSignIn   = "Please sign in to rate."
	MsgRatingBounds = "Rating must be 1–5."
)

// RatingSummary is the aggregate of all valid ratings of an item
type RatingSummary struct {
	Average float64 `json:"average"`
	Display string  `json:"display"`
	Count   int64   `json:"count"`
}

// NewRatingSummary rounds avg to one decimal for display
func NewRatingSummary(avg float64, count int64) RatingSummary {
	if count == 0 {
		return RatingSummary{Display: "", Count: 0}
	}
	rounded := math.Round(avg*10) / 10
	return RatingSummary{
		Average: rounded,
		Display: fmt.Sprintf("%.1f", rounded),
		Count:   count,
	}
}

// SubmitRating stores the reader's rating of bookID, replacing any earlier one
func SubmitRating(db *gorm.DB, bookID string, reader identity.Reader, rating int, now time.Time) error {
	if !reader.SignedIn() {
		return types.SignInRequired(MsgRateSignIn)
	}
	if rating < MinRating || rating > MaxRating {
		return types.Validation(MsgRatingBounds)
	}

	row := models.Rating{
		BookID: bookID,
		UserID: reader.UserID,
		Rating: rating,
	}
	row.UpdatedAt = now.UTC()

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("submit rating: %w", err)
	}
	return nil
}

// MyRating returns the reader's rating of bookID, 0 when none
func MyRating(db *gorm.DB, bookID string, reader identity.Reader) (int, error) {
	if !reader.SignedIn() {
		return 0, nil
	}
	var rows []models.Rating
	if err := db.Where("book_id = ? AND user_id = ?", bookID, reader.UserID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("get rating: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Rating, nil
}

// GetRatingSummary averages the valid ratings of bookID
func GetRatingSummary(db *gorm.DB, bookID string) (RatingSummary, error) {
	var agg struct {
		Count   int64
		Average sql.NullFloat64
	}
	if err := tagged(db, "rating_summary").
		Model(&models.Rating{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Where("book_id = ? AND rating BETWEEN ? AND ?", bookID, MinRating, MaxRating).
		Scan(&agg).Error; err != nil {
		return RatingSummary{}, fmt.Errorf("rating summary: %w", err)
	}
	if agg.Count == 0 || !agg.Average.Valid {
		return NewRatingSummary(0, 0), nil
	}
	return NewRatingSummary(agg.Average.Float64, agg.Count), nil
}
