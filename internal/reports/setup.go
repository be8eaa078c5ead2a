package reports

import (
	"go.uber.org/zap"

	"github.com/MediTrack/MT-Backend/internal/db"
	"github.com/MediTrack/MT-Backend/internal/logger"
)

// Init migrates the reports table and wires the store. Must run after
// db.Connect and auth.Init.
func Init() {
	conn, err := db.Get()
	if err != nil {
		logger.Fatal("reports init", zap.Error(err))
	}

	if err := conn.AutoMigrate(&Report{}); err != nil {
		logger.Fatal("Failed to auto-migrate reports", zap.Error(err))
	}

	store = NewStore(conn)
}
