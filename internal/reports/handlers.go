package reports

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MediTrack/MT-Backend/internal/logger"
	"github.com/MediTrack/MT-Backend/internal/utils"
)

// ReportStore is what the handlers need from persistence. Tests swap in
// fakes; Init wires the real Store.
type ReportStore interface {
	Upsert(userID string, in ReportInput) (bool, error)
	ListRecent(userID string) ([]Report, error)
}

var store ReportStore

type reportRequest struct {
	WeekStart     string          `json:"weekStart"`
	BloodSugar    *float64        `json:"bloodSugar"`
	SystolicBp    *int            `json:"systolicBp"`
	DiastolicBp   *int            `json:"diastolicBp"`
	JaundiceIndex *float64        `json:"jaundiceIndex"`
	Analysis      json.RawMessage `json:"analysis"`
}

func UpsertHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.WeekStart == "" {
		utils.RespondError(w, http.StatusBadRequest, "weekStart (YYYY-MM-DD) is required")
		return
	}
	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "weekStart must be a YYYY-MM-DD date")
		return
	}

	created, err := store.Upsert(user.ID, ReportInput{
		WeekStart:     weekStart,
		BloodSugar:    req.BloodSugar,
		SystolicBp:    req.SystolicBp,
		DiastolicBp:   req.DiastolicBp,
		JaundiceIndex: req.JaundiceIndex,
		Analysis:      req.Analysis,
	})
	if err != nil {
		logger.Error("Report upsert failed", zap.String("user_id", user.ID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Failed to save report")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.RespondJSON(w, status, map[string]bool{"ok": true})
}

func ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	rows, err := store.ListRecent(user.ID)
	if err != nil {
		logger.Error("Report list failed", zap.String("user_id", user.ID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}
	if rows == nil {
		rows = []Report{}
	}

	utils.RespondJSON(w, http.StatusOK, rows)
}
