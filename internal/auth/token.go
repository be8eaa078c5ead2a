package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MediTrack/MT-Backend/internal/utils"
)

// ErrInvalidToken covers bad signatures, malformed tokens and expiry alike.
// Callers cannot distinguish the cases and must not try.
var ErrInvalidToken = errors.New("invalid or expired token")

const DefaultTokenTTL = 7 * 24 * time.Hour

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless signed session claims. There is
// no revocation list: rotating the secret invalidates every outstanding token.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{Secret: []byte(secret), TTL: DefaultTokenTTL}
}

func (ts *TokenService) Issue(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.Secret)
}

// Verify checks signature integrity and expiry together and returns the
// embedded identity. It satisfies middleware.TokenVerifier.
func (ts *TokenService) Verify(tokenString string) (utils.AuthUser, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.Secret, nil
	})
	if err != nil {
		return utils.AuthUser{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return utils.AuthUser{}, ErrInvalidToken
	}

	return utils.AuthUser{ID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
