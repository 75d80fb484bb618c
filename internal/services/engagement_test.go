package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackEngagement(t *testing.T) {
	db := setupTestDB(t)
	reader := guest(guestToken(1))

	require.NoError(t, TrackEngagement(db, testBook, reader, EventComment, testNow))
	require.NoError(t, TrackEngagement(db, testBook, reader, EventComment, testNow))
	require.NoError(t, TrackEngagement(db, testBook, reader, EventReply, testNow))
	require.NoError(t, TrackEngagement(db, testBook, reader, EventRead, testNow))
	require.NoError(t, TrackEngagement(db, "book-2", reader, EventRate, testNow))

	e, err := GetEngagement(db, testBook, reader)
	require.NoError(t, err)
	assert.Equal(t, int64(2), e.Comments)
	assert.Equal(t, int64(1), e.Replies)
	assert.Equal(t, int64(1), e.Reads)
	assert.Zero(t, e.Ratings)

	assert.Error(t, TrackEngagement(db, testBook, reader, Event("scroll"), testNow))
}

func TestGetEngagementUntracked(t *testing.T) {
	db := setupTestDB(t)

	e, err := GetEngagement(db, testBook, user("u1"))
	require.NoError(t, err)
	assert.Equal(t, "u:u1", e.ReaderKey)
	assert.Zero(t, e.Comments)
}

func TestParseEvent(t *testing.T) {
	e, ok := ParseEvent("react")
	assert.True(t, ok)
	assert.Equal(t, EventReact, e)

	_, ok = ParseEvent("share")
	assert.False(t, ok)
}

func TestCommunityGuidelines(t *testing.T) {
	g := CommunityGuidelines()
	require.Len(t, g.Rules, 6)
	assert.Equal(t, "Comments can be edited for 1 hour.", g.Rules[5])

	g.Rules[0] = "changed"
	assert.Equal(t, "Be respectful. No harassment or hate.", CommunityGuidelines().Rules[0])
}
