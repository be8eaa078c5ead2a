package reports

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MediTrack/MT-Backend/internal/auth"
	"github.com/MediTrack/MT-Backend/internal/middleware"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(auth.Tokens))
		r.Post("/", UpsertHandler)
		r.Get("/", ListHandler)
	})

	return r
}
