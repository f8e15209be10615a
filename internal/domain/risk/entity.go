package risk

// Level enum
type Level string

const (
	LevelLow      Level = "Low Risk"
	LevelModerate Level = "Moderate Risk"
	LevelHigh     Level = "High Risk"
)

// ConfidenceLabel enum
type ConfidenceLabel string

const (
	ConfidenceLow    ConfidenceLabel = "Low"
	ConfidenceMedium ConfidenceLabel = "Medium"
	ConfidenceHigh   ConfidenceLabel = "High"
)

// Category tags a reason with the signal that produced it.
type Category string

const (
	CategoryProfilePicture Category = "profile_picture"
	CategoryFollowers      Category = "followers"
	CategoryActivity       Category = "activity"
	CategoryAccountAge     Category = "account_age"
	CategoryVerification   Category = "verification"
	CategoryVisibility     Category = "visibility"
	CategoryExternalLink   Category = "external_link"
	CategoryBioContent     Category = "bio_content"
	CategoryDMActivity     Category = "dm_activity"
	CategoryUsername       Category = "username"
	CategoryDataCoverage   Category = "data_coverage"
	CategoryNone           Category = "none"
)

// Score bounds and band thresholds.
const (
	MinScore = 0
	MaxScore = 100

	HighRiskThreshold     = 65
	ModerateRiskThreshold = 40

	HighConfidenceThreshold   = 75
	MediumConfidenceThreshold = 45
)

// Reason is one human-readable explanation with its category code.
type Reason struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Evaluation is the evaluator's verdict for one profile.
type Evaluation struct {
	Score           int             `json:"risk_score"`
	Level           Level           `json:"risk_level"`
	Confidence      int             `json:"confidence"`
	ConfidenceLabel ConfidenceLabel `json:"confidence_label"`

	// indexes into rules, in table order
	fired []int
}

// Levels returns every risk band, lowest first.
func Levels() []Level {
	return []Level{LevelLow, LevelModerate, LevelHigh}
}

// Texts flattens reasons to their display strings.
func Texts(reasons []Reason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, r.Text)
	}
	return out
}
