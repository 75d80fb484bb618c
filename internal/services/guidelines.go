package services

// Guidelines is the community guidelines panel shown above comments
type Guidelines struct {
	Title string   `json:"title"`
	Rules []string `json:"rules"`
	Tip   string   `json:"tip"`
}

var communityRules = []string{
	"Be respectful. No harassment or hate.",
	"No explicit sexual content, threats, or illegal content.",
	"No spam or advertising.",
	"Keep spoilers marked or vague when possible.",
	"Admin may remove content anytime.",
	"Comments can be edited for 1 hour.",
}

// CommunityGuidelines returns a copy of the guidelines
func CommunityGuidelines() Guidelines {
	rules := make([]string, len(communityRules))
	copy(rules, communityRules)
	return Guidelines{
		Title: "Community Guidelines",
		Rules: rules,
		Tip:   MsgAchievementsSignIn,
	}
}
