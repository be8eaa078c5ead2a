package reports

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxRecentReports = 12

// ReportInput carries one weekly submission. Nil metric fields are written as
// NULL: an upsert is a full replace, never a partial merge.
type ReportInput struct {
	WeekStart     time.Time
	BloodSugar    *float64
	SystolicBp    *int
	DiastolicBp   *int
	JaundiceIndex *float64
	Analysis      json.RawMessage
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Upsert inserts the week's report or replaces every metric column of the
// existing row, in a single statement. The returned flag is true for a fresh
// insert: xmax is zero only for rows no transaction has updated, which
// distinguishes the insert arm from the conflict arm.
func (s *Store) Upsert(userID string, in ReportInput) (bool, error) {
	var analysis interface{}
	if len(in.Analysis) > 0 {
		analysis = []byte(in.Analysis)
	}

	var created bool
	err := s.db.Raw(`
		INSERT INTO reports (id, user_id, week_start, blood_sugar, systolic_bp, diastolic_bp, jaundice_index, analysis, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			blood_sugar    = EXCLUDED.blood_sugar,
			systolic_bp    = EXCLUDED.systolic_bp,
			diastolic_bp   = EXCLUDED.diastolic_bp,
			jaundice_index = EXCLUDED.jaundice_index,
			analysis       = EXCLUDED.analysis
		RETURNING (xmax = 0)`,
		uuid.NewString(), userID, in.WeekStart, in.BloodSugar, in.SystolicBp,
		in.DiastolicBp, in.JaundiceIndex, analysis,
	).Scan(&created).Error
	return created, err
}

// ListRecent returns the caller's newest reports, most recent week first,
// bounded to a recency window rather than full history.
func (s *Store) ListRecent(userID string) ([]Report, error) {
	var out []Report
	err := s.db.Where("user_id = ?", userID).
		Order("week_start DESC").
		Limit(maxRecentReports).
		Find(&out).Error
	return out, err
}
