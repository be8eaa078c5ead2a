package analysis

import (
	"os"

	"go.uber.org/zap"

	"github.com/MediTrack/MT-Backend/internal/db"
	"github.com/MediTrack/MT-Backend/internal/logger"
)

// Init migrates the health_analyses table and wires the archive store and ML
// client. Must run after db.Connect and auth.Init.
func Init() {
	conn, err := db.Get()
	if err != nil {
		logger.Fatal("analysis init", zap.Error(err))
	}

	if err := conn.AutoMigrate(&HealthAnalysis{}); err != nil {
		logger.Fatal("Failed to auto-migrate health_analyses", zap.Error(err))
	}

	mlURL := os.Getenv("ML_SERVICE_URL")
	if mlURL == "" {
		mlURL = "http://localhost:8000"
	}

	store = NewStore(conn)
	client = NewClient(mlURL)
}
