package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MediTrack/MT-Backend/internal/logger"
	"github.com/MediTrack/MT-Backend/internal/utils"
)

// UserStore is what the handlers need from the credential store. Tests swap
// in fakes; Init wires the real Store.
type UserStore interface {
	CreateUser(email, password, name string) (*User, error)
	FindByEmail(email string) (*User, error)
}

type TokenIssuer interface {
	Issue(user *User) (string, error)
}

var (
	store  UserStore
	issuer TokenIssuer
)

func SignupHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" || input.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "email, password, and name are required")
		return
	}

	user, err := store.CreateUser(input.Email, input.Password, input.Name)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			utils.RespondError(w, http.StatusConflict, "Email already registered")
			return
		}
		logger.Error("Signup failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	token, err := issuer.Issue(user)
	if err != nil {
		logger.Error("Token signing failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := store.FindByEmail(input.Email)
	if err != nil {
		logger.Error("Login lookup failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	// Unknown email and wrong password must be indistinguishable to the caller.
	if user == nil || !user.CheckPassword(input.Password) {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := issuer.Issue(user)
	if err != nil {
		logger.Error("Token signing failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
