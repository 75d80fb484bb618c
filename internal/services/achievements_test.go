package services

import (
	"testing"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/achievements"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unlockedIDs(list []achievements.Unlocked) []string {
	out := make([]string, len(list))
	for i, u := range list {
		out[i] = u.ID
	}
	return out
}

func TestEvaluateAchievementsPersistsForUsers(t *testing.T) {
	db := setupTestDB(t)
	reader := user("u1")

	res, err := EvaluateAchievements(db, testBook, reader, EvaluateInput{PageIndex: 0, TotalPages: 100}, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_page"}, unlockedIDs(res.Unlocked))
	assert.Equal(t, []string{"Achievement unlocked: First Page"}, res.Notifications)
	assert.True(t, res.Saved)

	res, err = EvaluateAchievements(db, testBook, reader, EvaluateInput{PageIndex: 0, TotalPages: 100}, testNow, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, res.Unlocked)
	assert.Empty(t, res.Notifications)
	assert.Equal(t, []string{"first_page"}, res.All)

	res, err = EvaluateAchievements(db, testBook, reader, EvaluateInput{PageIndex: 4, TotalPages: 100}, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"page_5", "mil_1"}, unlockedIDs(res.Unlocked))
	assert.Equal(t, []string{"first_page", "page_5", "mil_1"}, res.All)

	// going back never revokes
	res, err = EvaluateAchievements(db, testBook, reader, EvaluateInput{PageIndex: 0, TotalPages: 100}, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_page", "page_5", "mil_1"}, res.All)

	saved, err := ListAchievements(db, testBook, reader)
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "5 Pages Deep", saved[1].Label)

	var ledgers int64
	require.NoError(t, db.Model(&models.AchievementLedger{}).Count(&ledgers).Error)
	assert.Equal(t, int64(1), ledgers)
}

func TestEvaluateAchievementsUsesEngagement(t *testing.T) {
	db := setupTestDB(t)
	reader := user("u1")

	require.NoError(t, TrackEngagement(db, testBook, reader, EventComment, testNow))
	require.NoError(t, TrackEngagement(db, testBook, reader, EventReact, testNow))

	res, err := EvaluateAchievements(db, testBook, reader, EvaluateInput{PageIndex: -1, TotalPages: 10}, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_comment", "first_react", "social_reader"}, unlockedIDs(res.Unlocked))
}

func TestEvaluateAchievementsGuestIsNotPersisted(t *testing.T) {
	db := setupTestDB(t)
	reader := guest(guestToken(1))

	res, err := EvaluateAchievements(db, testBook, reader, EvaluateInput{
		PageIndex:  1,
		TotalPages: 100,
		Unlocked:   []string{"first_page", "not_a_milestone"},
	}, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"mil_1"}, unlockedIDs(res.Unlocked))
	assert.Equal(t, []string{"first_page", "mil_1"}, res.All)
	assert.Equal(t, []string{"Achievement: Bookmark Keeper"}, res.Notifications)
	assert.False(t, res.Saved)

	var ledgers int64
	require.NoError(t, db.Model(&models.AchievementLedger{}).Count(&ledgers).Error)
	assert.Zero(t, ledgers)

	_, err = ListAchievements(db, testBook, reader)
	requireMessage(t, err, MsgAchievementsSignIn)
}

func TestEvaluateAchievementsLocalHour(t *testing.T) {
	db := setupTestDB(t)

	offset := -9 * 60
	res, err := EvaluateAchievements(db, testBook, guest(guestToken(1)), EvaluateInput{
		PageIndex:        2,
		TotalPages:       100,
		UTCOffsetMinutes: &offset,
	}, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_page", "night_owl", "mil_1"}, unlockedIDs(res.Unlocked))

	site := time.FixedZone("site", -6*60*60)
	res, err = EvaluateAchievements(db, testBook, guest(guestToken(2)), EvaluateInput{PageIndex: 2, TotalPages: 100}, testNow, site)
	require.NoError(t, err)
	assert.Contains(t, unlockedIDs(res.Unlocked), "early_bird")
}

func TestReaderLocalTime(t *testing.T) {
	bad := 24 * 60
	assert.Equal(t, 12, readerLocalTime(testNow, &bad, nil).Hour())

	ahead := 90
	assert.Equal(t, 13, readerLocalTime(testNow, &ahead, time.UTC).Hour())
	assert.Equal(t, 30, readerLocalTime(testNow, &ahead, time.UTC).Minute())
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, len(achievements.Rules))
	assert.Equal(t, "first_page", catalog[0].ID)
	assert.Equal(t, "legend", catalog[len(catalog)-1].ID)
}
