package reports

import (
	"encoding/json"
	"time"

	"github.com/MediTrack/MT-Backend/internal/auth"
)

// Report is one user's metrics for one calendar week. The (user_id,
// week_start) pair is unique: resubmitting a week replaces the row wholesale.
type Report struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string          `gorm:"type:uuid;not null;uniqueIndex:idx_reports_user_week" json:"user_id"`
	User          auth.User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	WeekStart     time.Time       `gorm:"type:date;not null;uniqueIndex:idx_reports_user_week" json:"week_start"`
	BloodSugar    *float64        `json:"blood_sugar"`
	SystolicBp    *int            `json:"systolic_bp"`
	DiastolicBp   *int            `json:"diastolic_bp"`
	JaundiceIndex *float64        `json:"jaundice_index"`
	Analysis      json.RawMessage `gorm:"type:jsonb" json:"analysis"`
	CreatedAt     time.Time       `json:"created_at"`
}
