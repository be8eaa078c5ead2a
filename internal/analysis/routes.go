package analysis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MediTrack/MT-Backend/internal/auth"
	"github.com/MediTrack/MT-Backend/internal/middleware"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Analyze is open to anonymous callers; a valid bearer token only enables
	// archiving.
	r.With(middleware.OptionalAuth(auth.Tokens)).Post("/analyze", AnalyzeHandler)
	r.With(middleware.RequireAuth(auth.Tokens)).Get("/history", HistoryHandler)
	r.Get("/standards", StandardsHandler)

	return r
}
