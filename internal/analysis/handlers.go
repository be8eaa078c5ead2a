package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/MediTrack/MT-Backend/internal/logger"
	"github.com/MediTrack/MT-Backend/internal/utils"
)

// Analyzer is the upstream ML collaborator as the handlers see it.
type Analyzer interface {
	Analyze(ctx context.Context, body []byte) (json.RawMessage, error)
	Standards(ctx context.Context) (json.RawMessage, error)
}

// Archiver is the append-only side log of analysis invocations.
type Archiver interface {
	Archive(userID, reportType string, parameters, result json.RawMessage) error
	History(userID string) ([]HealthAnalysis, error)
}

var (
	client Analyzer
	store  Archiver
)

func AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := client.Analyze(r.Context(), body)
	if err != nil {
		logger.Error("Analysis call failed", zap.Error(err))
		msg := "ML service error"
		var ue *UpstreamError
		if errors.As(err, &ue) {
			msg = ue.Error()
		}
		utils.RespondError(w, http.StatusBadGateway, msg)
		return
	}

	// Archive only for authenticated callers. A failed archive is logged and
	// swallowed: the caller already holds a successful analysis.
	if user, ok := utils.GetAuthUserFromContext(r.Context()); ok {
		archiveResult(user.ID, body, result)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}

func archiveResult(userID string, requestBody []byte, result json.RawMessage) {
	var req struct {
		Parameters json.RawMessage `json:"parameters"`
	}
	_ = json.Unmarshal(requestBody, &req)

	var res struct {
		ReportType string `json:"report_type"`
	}
	_ = json.Unmarshal(result, &res)

	if err := store.Archive(userID, res.ReportType, req.Parameters, result); err != nil {
		logger.Error("Failed to store analysis", zap.String("user_id", userID), zap.Error(err))
	}
}

func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	rows, err := store.History(user.ID)
	if err != nil {
		logger.Error("History fetch failed", zap.String("user_id", user.ID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch analysis history")
		return
	}
	if rows == nil {
		rows = []HealthAnalysis{}
	}

	utils.RespondJSON(w, http.StatusOK, rows)
}

func StandardsHandler(w http.ResponseWriter, r *http.Request) {
	result, err := client.Standards(r.Context())
	if err != nil {
		logger.Error("Standards fetch failed", zap.Error(err))
		utils.RespondError(w, http.StatusBadGateway, "Failed to fetch health standards")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}
