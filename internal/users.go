package internal

import (
	"encoding/json"
	"net/http"

	"labtrack-api/internal/auth"
	"labtrack-api/internal/models"
	"labtrack-api/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// loginUser authenticates by email and password and returns a JWT.
func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "VALIDATION_ERROR")
		return
	}
	if in.Email == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required", "VALIDATION_ERROR")
		return
	}

	user, err := store.GetUserByEmail(r.Context(), s.DB, in.Email)
	if err != nil {
		// Same response for unknown email and bad password.
		writeError(w, http.StatusUnauthorized, "invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	token, err := s.JWTManager.GenerateToken(user.ID, user.Email, user.FullName, user.IsSuperuser)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", "INTERNAL")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: *user})
}

func (s *Server) getUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		writeError(w, http.StatusUnauthorized, "authentication required", "AUTHENTICATION_REQUIRED")
		return
	}

	user, err := store.GetUser(r.Context(), s.DB, userID)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		writeError(w, http.StatusUnauthorized, "authentication required", "AUTHENTICATION_REQUIRED")
		return
	}

	var in models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "VALIDATION_ERROR")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	user, err := store.GetUser(r.Context(), s.DB, userID)
	if err != nil {
		storeError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		writeError(w, http.StatusBadRequest, "current password is incorrect", "INVALID_CREDENTIALS")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password", "INTERNAL")
		return
	}

	if err := store.UpdatePassword(r.Context(), s.DB, userID, string(hash)); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Message{Message: "password updated successfully"})
}

// createUser provisions a new account. Superuser-only, enforced at the
// route level.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "VALIDATION_ERROR")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password", "INTERNAL")
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		IsActive:     true,
		IsSuperuser:  in.IsSuperuser,
	}
	if err := store.CreateUser(r.Context(), s.DB, &user); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
