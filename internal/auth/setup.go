package auth

import (
	"os"

	"go.uber.org/zap"

	"github.com/MediTrack/MT-Backend/internal/db"
	"github.com/MediTrack/MT-Backend/internal/logger"
)

// Tokens is the process-wide token service, wired by Init. Other packages use
// it as the middleware.TokenVerifier for their routes.
var Tokens *TokenService

// Init migrates the users table and wires the credential store and token
// service. Must run after db.Connect.
func Init() {
	conn, err := db.Get()
	if err != nil {
		logger.Fatal("auth init", zap.Error(err))
	}

	if err := conn.AutoMigrate(&User{}); err != nil {
		logger.Fatal("Failed to auto-migrate users", zap.Error(err))
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_secret_change_me"
		logger.Warn("JWT_SECRET not set, using development default")
	}

	ts := NewTokenService(secret)
	store = NewStore(conn)
	issuer = ts
	Tokens = ts
}
