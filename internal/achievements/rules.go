package achievements

// Rule is one milestone: a stable id, the label shown when it unlocks, and its condition
type Rule struct {
	ID    string
	Label string
	When  func(s Snapshot) bool
}

// Rules is the ordered milestone list. Evaluation and notification follow this order.
var Rules = []Rule{
	// pages
	{"first_page", "First Page", func(s Snapshot) bool { return s.PageIndex >= 0 }},
	{"page_5", "5 Pages Deep", func(s Snapshot) bool { return s.PageIndex >= 4 }},
	{"page_10", "10 Pages Read", func(s Snapshot) bool { return s.PageIndex >= 9 }},
	{"page_25", "25 Pages Read", func(s Snapshot) bool { return s.PageIndex >= 24 }},
	{"page_50", "50 Pages Read", func(s Snapshot) bool { return s.PageIndex >= 49 }},
	{"page_75", "75 Pages Read", func(s Snapshot) bool { return s.PageIndex >= 74 }},
	{"page_100", "100 Pages Read", func(s Snapshot) bool { return s.PageIndex >= 99 }},

	// progress
	{"pct_10", "10% In", func(s Snapshot) bool { return s.Percent >= 10 }},
	{"pct_25", "25% In", func(s Snapshot) bool { return s.Percent >= 25 }},
	{"pct_33", "One-Third Done", func(s Snapshot) bool { return s.Percent >= 33 }},
	{"pct_50", "Halfway", func(s Snapshot) bool { return s.Percent >= 50 }},
	{"pct_66", "Two-Thirds Done", func(s Snapshot) bool { return s.Percent >= 66 }},
	{"pct_75", "75% Done", func(s Snapshot) bool { return s.Percent >= 75 }},
	{"pct_90", "90% Done", func(s Snapshot) bool { return s.Percent >= 90 }},
	{"finished", "Finished", func(s Snapshot) bool { return s.TotalPages > 0 && s.PageIndex >= s.TotalPages-1 }},

	// time of day
	{"night_owl", "Night Owl Reader", func(s Snapshot) bool { return s.Night() && s.PageIndex >= 2 }},
	{"early_bird", "Early Bird Reader", func(s Snapshot) bool { return s.Early() && s.PageIndex >= 2 }},

	// engagement
	{"first_comment", "First Comment", func(s Snapshot) bool { return s.Comments >= 1 }},
	{"chatty_5", "Chatty (5 Comments)", func(s Snapshot) bool { return s.Comments >= 5 }},
	{"chatty_10", "Community Voice (10 Comments)", func(s Snapshot) bool { return s.Comments >= 10 }},
	{"first_reply", "First Reply", func(s Snapshot) bool { return s.Replies >= 1 }},
	{"threads_5", "Thread Builder (5 Replies)", func(s Snapshot) bool { return s.Replies >= 5 }},
	{"first_react", "First Reaction", func(s Snapshot) bool { return s.Reactions >= 1 }},
	{"react_10", "Reaction Machine (10)", func(s Snapshot) bool { return s.Reactions >= 10 }},
	{"first_rating", "First Rating", func(s Snapshot) bool { return s.Ratings >= 1 }},

	// combos
	{"social_reader", "Social Reader", func(s Snapshot) bool { return s.Comments >= 1 && s.Reactions >= 1 }},
	{"critic", "The Critic", func(s Snapshot) bool { return s.Ratings >= 1 && s.Comments >= 1 }},
	{"superfan", "Superfan", func(s Snapshot) bool { return s.Percent >= 75 && s.Comments >= 3 }},
	{"closer", "The Closer", func(s Snapshot) bool { return s.Percent >= 90 && s.Reactions >= 3 }},

	// milestones
	{"mil_1", "Bookmark Keeper", func(s Snapshot) bool { return s.PageIndex >= 1 }},
	{"mil_2", "Turning Pages", func(s Snapshot) bool { return s.PageIndex >= 6 }},
	{"mil_3", "Locked In", func(s Snapshot) bool { return s.PageIndex >= 12 }},
	{"mil_4", "Momentum", func(s Snapshot) bool { return s.PageIndex >= 18 }},
	{"mil_5", "Page Runner", func(s Snapshot) bool { return s.PageIndex >= 30 }},
	{"mil_6", "Plot Tracker", func(s Snapshot) bool { return s.PageIndex >= 40 }},
	{"mil_7", "Deep Dive", func(s Snapshot) bool { return s.PageIndex >= 60 }},
	{"mil_8", "Almost There", func(s Snapshot) bool { return s.Percent >= 85 }},

	{"legend", "Legend Status", func(s Snapshot) bool { return s.Percent >= 100 && (s.Comments >= 5 || s.Replies >= 5) }},
}

var labels = func() map[string]string {
	m := make(map[string]string, len(Rules))
	for _, r := range Rules {
		m[r.ID] = r.Label
	}
	return m
}()

// Label returns the display label for id, or id itself when unknown
func Label(id string) string {
	if label, ok := labels[id]; ok {
		return label
	}
	return id
}

// Known reports whether id names a rule
func Known(id string) bool {
	_, ok := labels[id]
	return ok
}
