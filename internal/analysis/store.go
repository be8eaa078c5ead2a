package analysis

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxHistoryEntries = 20

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Archive appends one invocation record. Callers treat failure as non-fatal:
// the primary analysis response never depends on this write.
func (s *Store) Archive(userID, reportType string, parameters, result json.RawMessage) error {
	if len(parameters) == 0 {
		parameters = json.RawMessage("null")
	}
	rec := HealthAnalysis{
		ID:             uuid.NewString(),
		UserID:         &userID,
		ReportType:     reportType,
		Parameters:     parameters,
		AnalysisResult: result,
	}
	return s.db.Create(&rec).Error
}

// History returns the caller's newest archived analyses, most recent first.
func (s *Store) History(userID string) ([]HealthAnalysis, error) {
	var out []HealthAnalysis
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(maxHistoryEntries).
		Find(&out).Error
	return out, err
}
