package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitpot/splitpot/internal/auth"
)

// AuthService handles registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, jwtManager: jwtManager}
}

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

// Register creates a new account and returns a signed token.
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" {
		respondBadRequest(w, "username and email are required")
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			respondBadRequest(w, err.Error())
		case errors.Is(err, auth.ErrWeakPassword):
			respondBadRequest(w, err.Error())
		default:
			respondError(w, err)
		}
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)

	respondJSON(w, http.StatusCreated, authResponse{
		User:  userPayload{ID: user.ID, Username: user.Username, Email: user.Email},
		Token: token,
	})
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		// Do not leak which half of the pair was wrong.
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: auth.ErrInvalidCredentials.Error()})
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{
		User:  userPayload{ID: user.ID, Username: user.Username, Email: user.Email},
		Token: token,
	})
}
