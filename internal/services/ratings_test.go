package services

import (
	"testing"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRatingRejectsBeforeWrite(t *testing.T) {
	db := setupTestDB(t)

	err := SubmitRating(db, testBook, guest(guestToken(1)), 4, testNow)
	ce, ok := types.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, MsgRateSignIn, ce.Message)

	for _, bad := range []int{0, 6, -1} {
		err := SubmitRating(db, testBook, user("u1"), bad, testNow)
		ce, ok := types.AsCustomError(err)
		require.True(t, ok, "rating %d", bad)
		assert.Equal(t, MsgRatingBounds, ce.Message)
	}

	var rows int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestSubmitRatingUpserts(t *testing.T) {
	db := setupTestDB(t)
	reader := user("u1")

	mine, err := MyRating(db, testBook, reader)
	require.NoError(t, err)
	assert.Equal(t, 0, mine)

	require.NoError(t, SubmitRating(db, testBook, reader, 4, testNow))
	require.NoError(t, SubmitRating(db, testBook, reader, 5, testNow))

	mine, err = MyRating(db, testBook, reader)
	require.NoError(t, err)
	assert.Equal(t, 5, mine)

	var rows int64
	require.NoError(t, db.Model(&models.Rating{}).Where("book_id = ?", testBook).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRatingSummary(t *testing.T) {
	db := setupTestDB(t)

	empty, err := GetRatingSummary(db, testBook)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Count)
	assert.Equal(t, "", empty.Display)

	require.NoError(t, SubmitRating(db, testBook, user("u1"), 5, testNow))
	require.NoError(t, SubmitRating(db, testBook, user("u2"), 4, testNow))
	require.NoError(t, SubmitRating(db, testBook, user("u3"), 4, testNow))
	// stored out of range values are ignored
	require.NoError(t, db.Create(&models.Rating{BookID: testBook, UserID: "legacy", Rating: 9}).Error)

	summary, err := GetRatingSummary(db, testBook)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Count)
	assert.InDelta(t, 4.3, summary.Average, 0.0001)
	assert.Equal(t, "4.3", summary.Display)
}

func TestNewRatingSummaryRounding(t *testing.T) {
	assert.Equal(t, "4.5", NewRatingSummary(4.5, 2).Display)
	assert.Equal(t, "3.7", NewRatingSummary(3.66, 3).Display)
	assert.Equal(t, "5.0", NewRatingSummary(5, 1).Display)
}
