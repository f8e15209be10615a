package risk

var baseRecommendations = map[Level][]string{
	LevelHigh: {
		"⚠️ DO NOT interact with this account or click any links",
		"🚫 Block this account immediately",
		"📢 Report this account to Instagram for suspicious activity",
		"🔒 Never share personal information or payment details",
	},
	LevelModerate: {
		"⚡ Exercise extreme caution when interacting",
		"🔍 Verify account authenticity through official channels",
		"❌ Avoid clicking on external links in bio or messages",
		"👥 Check if mutual friends follow this account",
	},
	LevelLow: {
		"✅ Account appears relatively safe based on available data",
		"🛡️ Still verify identity before sharing sensitive information",
		"📱 Be cautious of unsolicited messages or requests",
	},
}

// Advisories appended when a reason of the matching category is present.
const (
	ProfilePictureAdvisory = "🖼️ Missing profile picture is a common scam indicator"
	ExternalLinkAdvisory   = "🔗 Never click suspicious links - they may be phishing attempts"
	FollowersAdvisory      = "📊 Unusual follower patterns suggest automated/fake account"
)

// categoryAdvisories keeps the order in which add-ons are appended.
var categoryAdvisories = []struct {
	category Category
	text     string
}{
	{CategoryProfilePicture, ProfilePictureAdvisory},
	{CategoryExternalLink, ExternalLinkAdvisory},
	{CategoryFollowers, FollowersAdvisory},
}

// Recommend returns the base advice for level followed by the add-ons
// triggered by reasons. Unknown levels get the low-risk list.
func Recommend(level Level, reasons []Reason) []string {
	base, ok := baseRecommendations[level]
	if !ok {
		base = baseRecommendations[LevelLow]
	}
	out := append([]string(nil), base...)

	seen := make(map[Category]bool, len(reasons))
	for _, r := range reasons {
		seen[r.Category] = true
	}
	for _, a := range categoryAdvisories {
		if seen[a.category] {
			out = append(out, a.text)
		}
	}
	return out
}
