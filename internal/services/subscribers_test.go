package services

import (
	"testing"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeValidationOrder(t *testing.T) {
	db := setupTestDB(t)
	reader := user("u1")

	tests := []struct {
		name string
		in   SubscribeInput
		want string
	}{
		{"no channel", SubscribeInput{Email: "bad"}, MsgChooseChannel},
		{"email missing", SubscribeInput{NotifyEmail: true, NotifySMS: true}, MsgEmailRequired},
		{"phone missing", SubscribeInput{NotifyEmail: true, NotifySMS: true, Email: "bad"}, MsgPhoneRequired},
		{"email shape", SubscribeInput{NotifyEmail: true, Email: "not-an-email"}, MsgEmailInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Subscribe(db, reader, tt.in)
			requireMessage(t, err, tt.want)
		})
	}

	_, err := Subscribe(db, guest(guestToken(1)), SubscribeInput{NotifyEmail: true, Email: "a@b.co"})
	requireMessage(t, err, MsgSubscribeSignIn)

	var rows int64
	require.NoError(t, db.Model(&models.Subscriber{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestSubscribeWritesRecordPrefsAndCounter(t *testing.T) {
	db := setupTestDB(t)
	reader := user("u1")

	sub, err := Subscribe(db, reader, SubscribeInput{
		NotifyEmail: true,
		Email:       "  Reader@Example.COM ",
		Phone:       "555 0100",
		BookID:      testBook,
		Source:      "/books/book-1",
	})
	require.NoError(t, err)
	require.NotNil(t, sub.Email)
	assert.Equal(t, "reader@example.com", *sub.Email)
	assert.Nil(t, sub.Phone)
	assert.Equal(t, models.ConsentText, sub.ConsentText)
	assert.NotEmpty(t, sub.ID)

	prefs, err := GetNotifyPrefs(db, reader)
	require.NoError(t, err)
	assert.True(t, prefs.NotifyEmail)
	assert.False(t, prefs.NotifySMS)
	assert.Equal(t, "reader@example.com", prefs.EmailValue)

	stats, err := GetStats(db, testBook)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Subscribers)

	_, err = Subscribe(db, reader, SubscribeInput{NotifySMS: true, Phone: "555 0100", BookID: testBook})
	require.NoError(t, err)

	stats, err = GetStats(db, testBook)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Subscribers)

	prefs, err = GetNotifyPrefs(db, reader)
	require.NoError(t, err)
	assert.False(t, prefs.NotifyEmail)
	assert.True(t, prefs.NotifySMS)
	assert.Empty(t, prefs.EmailValue)
}

func TestNotifyPrefs(t *testing.T) {
	db := setupTestDB(t)
	reader := guest(guestToken(3))

	empty, err := GetNotifyPrefs(db, reader)
	require.NoError(t, err)
	assert.False(t, empty.NotifyEmail)
	assert.Nil(t, empty.OptInPromptedAt)

	_, err = SaveNotifyPrefs(db, reader, NotifyPrefsInput{Email: true})
	requireMessage(t, err, MsgEmailRequired)

	saved, err := SaveNotifyPrefs(db, reader, NotifyPrefsInput{Email: true, EmailVal: "me@site.io", PhoneVal: "555"})
	require.NoError(t, err)
	assert.True(t, saved.NotifyEmail)
	assert.Equal(t, "me@site.io", saved.EmailValue)
	assert.Empty(t, saved.PhoneValue)

	cleared, err := SaveNotifyPrefs(db, reader, NotifyPrefsInput{EmailVal: "me@site.io"})
	require.NoError(t, err)
	assert.False(t, cleared.NotifyEmail)
	assert.Empty(t, cleared.EmailValue)
}

func TestMarkOptInPromptedFirstTimeSticks(t *testing.T) {
	db := setupTestDB(t)
	reader := user("u1")

	first, err := MarkOptInPrompted(db, reader, testNow)
	require.NoError(t, err)
	require.NotNil(t, first.OptInPromptedAt)
	assert.True(t, first.OptInPromptedAt.Equal(testNow))

	again, err := MarkOptInPrompted(db, reader, testNow.Add(72*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, again.OptInPromptedAt)
	assert.True(t, again.OptInPromptedAt.Equal(testNow))
}

func TestListSubscribers(t *testing.T) {
	db := setupTestDB(t)

	for _, id := range []string{"u1", "u2"} {
		_, err := Subscribe(db, user(id), SubscribeInput{NotifyEmail: true, Email: id + "@site.io", BookID: testBook})
		require.NoError(t, err)
	}
	_, err := Subscribe(db, user("u3"), SubscribeInput{NotifyEmail: true, Email: "u3@site.io", BookID: "book-2"})
	require.NoError(t, err)

	all, err := ListSubscribers(db, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := ListSubscribers(db, testBook, 0)
	require.NoError(t, err)
	assert.Len(t, one, 2)
}
