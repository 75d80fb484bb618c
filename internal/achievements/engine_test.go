package achievements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ids(list []Unlocked) []string {
	out := make([]string, 0, len(list))
	for _, u := range list {
		out = append(out, u.ID)
	}
	return out
}

func TestRuleCatalog(t *testing.T) {
	require.Len(t, Rules, 38)

	seen := make(map[string]bool)
	for _, r := range Rules {
		assert.False(t, seen[r.ID], "duplicate rule %s", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Label)
	}

	assert.Equal(t, "Halfway", Label("pct_50"))
	assert.Equal(t, "mystery", Label("mystery"))
	assert.True(t, Known("legend"))
	assert.False(t, Known("mystery"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(Progress{PageIndex: 5, TotalPages: 0}))
	assert.Equal(t, 10, Percent(Progress{PageIndex: 0, TotalPages: 10}))
	assert.Equal(t, 33, Percent(Progress{PageIndex: 0, TotalPages: 3}))
	assert.Equal(t, 66, Percent(Progress{PageIndex: 1, TotalPages: 3}))
	assert.Equal(t, 100, Percent(Progress{PageIndex: 9, TotalPages: 10}))
}

func TestEvaluateNothingRead(t *testing.T) {
	s := NewSnapshot(Progress{PageIndex: -1, TotalPages: 10}, Engagement{}, noon)
	assert.Empty(t, Evaluate(s, nil))
}

func TestEvaluateFirstPage(t *testing.T) {
	s := NewSnapshot(Progress{PageIndex: 0, TotalPages: 100}, Engagement{}, noon)
	assert.Equal(t, []string{"first_page"}, ids(Evaluate(s, nil)))
}

func TestEvaluateOrderAndExclusion(t *testing.T) {
	s := NewSnapshot(Progress{PageIndex: 4, TotalPages: 20}, Engagement{Comments: 1, Reactions: 1}, noon)

	got := ids(Evaluate(s, []string{"page_5"}))
	assert.Equal(t, []string{
		"first_page", "pct_10", "pct_25",
		"first_comment", "first_react", "social_reader",
		"mil_1",
	}, got)
}

func TestEvaluateFinishedAndPercentRules(t *testing.T) {
	s := NewSnapshot(Progress{PageIndex: 9, TotalPages: 10}, Engagement{}, noon)
	got := ids(Evaluate(s, nil))

	for _, id := range []string{"pct_90", "finished", "mil_8", "mil_2"} {
		assert.Contains(t, got, id)
	}
	assert.NotContains(t, got, "legend")
}

func TestEvaluateTimeOfDay(t *testing.T) {
	tests := []struct {
		hour  int
		page  int
		night bool
		early bool
	}{
		{0, 2, true, false},
		{4, 2, true, false},
		{5, 2, false, true},
		{8, 2, false, true},
		{9, 2, false, false},
		{3, 1, false, false},
	}

	for _, tt := range tests {
		local := time.Date(2026, 3, 1, tt.hour, 30, 0, 0, time.UTC)
		got := ids(Evaluate(NewSnapshot(Progress{PageIndex: tt.page, TotalPages: 50}, Engagement{}, local), nil))
		assert.Equal(t, tt.night, contains(got, "night_owl"), "hour %d page %d night", tt.hour, tt.page)
		assert.Equal(t, tt.early, contains(got, "early_bird"), "hour %d page %d early", tt.hour, tt.page)
	}
}

func TestEvaluateLegend(t *testing.T) {
	done := Progress{PageIndex: 19, TotalPages: 20}

	got := ids(Evaluate(NewSnapshot(done, Engagement{Comments: 4, Replies: 4}, noon), nil))
	assert.NotContains(t, got, "legend")

	got = ids(Evaluate(NewSnapshot(done, Engagement{Replies: 5}, noon), nil))
	assert.Contains(t, got, "legend")
	assert.Equal(t, "legend", got[len(got)-1])
}

func TestUnionIsMonotonic(t *testing.T) {
	previously := []string{"finished", "first_page", "first_page", ""}
	s := NewSnapshot(Progress{PageIndex: 0, TotalPages: 100}, Engagement{}, noon)

	merged := Union(previously, Evaluate(s, previously))
	assert.Equal(t, []string{"finished", "first_page"}, merged)

	// A weaker snapshot never takes anything away
	weaker := NewSnapshot(Progress{PageIndex: -1}, Engagement{}, noon)
	assert.Equal(t, merged, Union(merged, Evaluate(weaker, merged)))

	s = NewSnapshot(Progress{PageIndex: 4, TotalPages: 100}, Engagement{}, noon)
	merged = Union(merged, Evaluate(s, merged))
	assert.Equal(t, []string{"finished", "first_page", "page_5", "mil_1"}, merged)
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
