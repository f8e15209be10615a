package risk

import (
	"fmt"
	"regexp"
	"strings"
)

// rule is one fixed scoring rule. describe is nil for rules that only
// lower the score; those never produce a reason.
type rule struct {
	category Category
	points   int
	applies  func(p AccountProfile) bool
	describe func(p AccountProfile) string
}

// Signal thresholds.
const (
	ratioMinFollowing   = 500
	ratioFactor         = 10
	lowFollowerCount    = 50
	boughtFollowerCount = 10000
	boughtMaxPosts      = 10
	fewPosts            = 5
	veryNewAccountDays  = 30
	newAccountDays      = 90
	minCoverage         = 3
)

var (
	bioScamPhrases = []string{
		"dm me", "dm for", "giveaway", "invest", "crypto", "bitcoin", "forex",
		"guaranteed", "double your", "cash app", "whatsapp", "telegram",
		"click the link", "limited offer", "winner", "claim your", "profit",
	}

	impersonationWords = []string{
		"official", "support", "helpdesk", "giveaway", "verify", "admin", "security", "promo",
	}

	digitRun = regexp.MustCompile(`\d{4,}`)
)

// rules is evaluated top to bottom; reasons follow the same order.
var rules = []rule{
	{
		category: CategoryProfilePicture,
		points:   20,
		applies:  func(p AccountProfile) bool { return norm(p.HasProfilePic) == "no" },
		describe: text("Missing profile picture"),
	},
	{
		category: CategoryProfilePicture,
		points:   15,
		applies:  func(p AccountProfile) bool { return norm(p.HasProfilePic) == "suspicious" },
		describe: text("Profile picture looks suspicious (stock, stolen or generated image)"),
	},
	{
		category: CategoryFollowers,
		points:   20,
		applies:  skewedRatio,
		describe: func(p AccountProfile) string {
			return fmt.Sprintf("Suspicious follower/following ratio (%d followers, following %d)", *p.Followers, *p.Following)
		},
	},
	{
		category: CategoryFollowers,
		points:   10,
		applies: func(p AccountProfile) bool {
			return p.Followers != nil && *p.Followers < lowFollowerCount && !skewedRatio(p)
		},
		describe: func(p AccountProfile) string {
			return fmt.Sprintf("Very low follower count (%d)", *p.Followers)
		},
	},
	{
		category: CategoryFollowers,
		points:   15,
		applies: func(p AccountProfile) bool {
			return p.Followers != nil && p.Posts != nil &&
				*p.Followers >= boughtFollowerCount && *p.Posts < boughtMaxPosts
		},
		describe: func(p AccountProfile) string {
			return fmt.Sprintf("High follower count with very few posts (%d followers, %d posts)", *p.Followers, *p.Posts)
		},
	},
	{
		category: CategoryActivity,
		points:   10,
		applies:  func(p AccountProfile) bool { return p.Posts != nil && *p.Posts == 0 },
		describe: text("Account has no posts"),
	},
	{
		category: CategoryActivity,
		points:   5,
		applies:  func(p AccountProfile) bool { return p.Posts != nil && *p.Posts > 0 && *p.Posts < fewPosts },
		describe: func(p AccountProfile) string { return fmt.Sprintf("Very few posts (%d)", *p.Posts) },
	},
	{
		category: CategoryAccountAge,
		points:   20,
		applies: func(p AccountProfile) bool {
			return p.AccountAgeDays != nil && *p.AccountAgeDays < veryNewAccountDays
		},
		describe: func(p AccountProfile) string {
			return fmt.Sprintf("Account is very new (%d days old)", *p.AccountAgeDays)
		},
	},
	{
		category: CategoryAccountAge,
		points:   10,
		applies: func(p AccountProfile) bool {
			return p.AccountAgeDays != nil && *p.AccountAgeDays >= veryNewAccountDays && *p.AccountAgeDays < newAccountDays
		},
		describe: func(p AccountProfile) string {
			return fmt.Sprintf("Account is relatively new (%d days old)", *p.AccountAgeDays)
		},
	},
	{
		category: CategoryVerification,
		points:   5,
		applies:  func(p AccountProfile) bool { return p.Verified != nil && !*p.Verified },
		describe: text("Account is not verified"),
	},
	{
		category: CategoryVisibility,
		points:   5,
		applies:  func(p AccountProfile) bool { return norm(p.Visibility) == "private" },
		describe: text("Private account limits what can be checked"),
	},
	{
		category: CategoryExternalLink,
		points:   10,
		applies:  func(p AccountProfile) bool { return norm(p.BioLinks) == "yes" },
		describe: text("Bio contains an external link"),
	},
	{
		category: CategoryExternalLink,
		points:   15,
		applies:  func(p AccountProfile) bool { return norm(p.BioLinks) == "multiple" },
		describe: text("Bio contains multiple external links"),
	},
	{
		category: CategoryExternalLink,
		points:   20,
		applies:  func(p AccountProfile) bool { return norm(p.BioLinks) == "suspicious" },
		describe: text("Bio contains a suspicious external link"),
	},
	{
		category: CategoryBioContent,
		points:   15,
		applies:  func(p AccountProfile) bool { return len(scamPhrases(p)) > 0 },
		describe: func(p AccountProfile) string {
			return "Bio contains scam-related phrases: " + strings.Join(scamPhrases(p), ", ")
		},
	},
	{
		category: CategoryDMActivity,
		points:   15,
		applies:  func(p AccountProfile) bool { return norm(p.DMActivity) == "unsolicited" },
		describe: text("Sends unsolicited direct messages"),
	},
	{
		category: CategoryDMActivity,
		points:   25,
		applies:  func(p AccountProfile) bool { return norm(p.DMActivity) == "suspicious" },
		describe: text("Suspicious direct message activity reported"),
	},
	{
		category: CategoryUsername,
		points:   10,
		applies:  func(p AccountProfile) bool { return impersonationWord(p) != "" },
		describe: func(p AccountProfile) string {
			return fmt.Sprintf("Username contains impersonation keyword %q", impersonationWord(p))
		},
	},
	{
		category: CategoryUsername,
		points:   5,
		applies:  func(p AccountProfile) bool { return digitRun.MatchString(p.Username) },
		describe: text("Username contains a long digit sequence"),
	},
	{
		category: CategoryDataCoverage,
		points:   10,
		applies:  func(p AccountProfile) bool { return p.Populated() < minCoverage },
		describe: func(p AccountProfile) string {
			return fmt.Sprintf("Limited account information provided (%d of %d signals)", p.Populated(), optionalSignals)
		},
	},
	{
		category: CategoryVerification,
		points:   -20,
		applies:  func(p AccountProfile) bool { return p.Verified != nil && *p.Verified },
	},
}

func text(s string) func(AccountProfile) string {
	return func(AccountProfile) string { return s }
}

func skewedRatio(p AccountProfile) bool {
	if p.Followers == nil || p.Following == nil {
		return false
	}
	// followers*ratioFactor < following, rearranged so huge counts cannot overflow
	return *p.Following >= ratioMinFollowing && *p.Followers <= (*p.Following-1)/ratioFactor
}

// scamPhrases returns the matched phrases in table order.
func scamPhrases(p AccountProfile) []string {
	bio := norm(p.BioText)
	if bio == "" {
		return nil
	}
	var out []string
	for _, phrase := range bioScamPhrases {
		if strings.Contains(bio, phrase) {
			out = append(out, phrase)
		}
	}
	return out
}

func impersonationWord(p AccountProfile) string {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(p.Username)), "@")
	for _, w := range impersonationWords {
		if strings.Contains(name, w) {
			return w
		}
	}
	return ""
}
