package analyses

import (
	"time"

	"github.com/bryanwahyu/account-risk/internal/domain/risk"
)

// RecordID identifier assigned by the store
type RecordID int64

// Assessment is the full result of one analysis as returned to callers.
type Assessment struct {
	Username        string               `json:"username"`
	RiskScore       int                  `json:"risk_score"`
	RiskLevel       risk.Level           `json:"risk_level"`
	Confidence      int                  `json:"confidence"`
	ConfidenceLabel risk.ConfidenceLabel `json:"confidence_label"`
	Reasons         []string             `json:"reasons"`
	Recommendations []string             `json:"recommendations"`
	Timestamp       string               `json:"timestamp"`
}

// Record is a persisted, write-once Assessment.
// CreatedAt is the insertion time and differs from Assessment.Timestamp.
type Record struct {
	ID RecordID `json:"id"`
	Assessment
	CreatedAt time.Time `json:"created_at"`
}
