package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MediTrack/MT-Backend/internal/analysis"
	"github.com/MediTrack/MT-Backend/internal/auth"
	"github.com/MediTrack/MT-Backend/internal/db"
	"github.com/MediTrack/MT-Backend/internal/logger"
	"github.com/MediTrack/MT-Backend/internal/middleware"
	"github.com/MediTrack/MT-Backend/internal/reports"
	"github.com/MediTrack/MT-Backend/internal/utils"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func main() {
	_ = godotenv.Load(".env.local")

	if err := logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db.Connect()

	auth.Init()
	reports.Init()
	analysis.Init()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/health", HealthHandler)

	r.Mount("/api/auth", auth.SetupRoutes())
	r.Mount("/api/reports", reports.SetupRoutes())
	r.Mount("/api/analysis", analysis.SetupRoutes())

	logger.Info("MediTrack server listening", zap.String("port", port))
	if err := http.ListenAndServe("0.0.0.0:"+port, r); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
