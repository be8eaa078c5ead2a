package analysis

import (
	"encoding/json"
	"time"

	"github.com/MediTrack/MT-Backend/internal/auth"
)

// HealthAnalysis is one archived analysis invocation. Rows are append-only:
// written once after a successful upstream call, never updated. UserID is
// nullable — anonymous analyses are permitted but not retrievable.
type HealthAnalysis struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         *string         `gorm:"type:uuid" json:"user_id"`
	User           *auth.User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ReportType     string          `gorm:"not null" json:"report_type"`
	Parameters     json.RawMessage `gorm:"type:jsonb;not null" json:"parameters"`
	AnalysisResult json.RawMessage `gorm:"type:jsonb;not null" json:"analysis_result"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (HealthAnalysis) TableName() string { return "health_analyses" }
