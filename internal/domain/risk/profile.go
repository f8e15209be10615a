package risk

import "strings"

// AccountProfile is the attribute set submitted for one account.
// Nil pointers mean "unknown" and contribute nothing to the score.
type AccountProfile struct {
	Username       string  `json:"username" validate:"required,notblank"`
	Followers      *int    `json:"followers,omitempty" validate:"omitempty,gte=0"`
	Following      *int    `json:"following,omitempty" validate:"omitempty,gte=0"`
	Posts          *int    `json:"posts,omitempty" validate:"omitempty,gte=0"`
	AccountAgeDays *int    `json:"account_age_days,omitempty" validate:"omitempty,gte=0"`
	Verified       *bool   `json:"verified,omitempty"`
	Visibility     *string `json:"visibility,omitempty"`
	HasProfilePic  *string `json:"has_profile_pic,omitempty"`
	BioText        *string `json:"bio_text,omitempty"`
	BioLinks       *string `json:"bio_links,omitempty"`
	DMActivity     *string `json:"dm_activity,omitempty"`
}

// optionalSignals is the number of optional fields counted for confidence.
const optionalSignals = 10

// Populated counts how many optional fields carry a usable value.
// Blank strings are treated as absent.
func (p AccountProfile) Populated() int {
	n := 0
	for _, v := range []*int{p.Followers, p.Following, p.Posts, p.AccountAgeDays} {
		if v != nil {
			n++
		}
	}
	if p.Verified != nil {
		n++
	}
	for _, s := range []*string{p.Visibility, p.HasProfilePic, p.BioText, p.BioLinks, p.DMActivity} {
		if norm(s) != "" {
			n++
		}
	}
	return n
}

// norm lowercases and trims an optional string; nil becomes "".
func norm(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}
