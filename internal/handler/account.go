package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pokevault/pokevault/internal/handler/dto"
	"github.com/pokevault/pokevault/internal/service"
)

// AccountHandler handles registration and login requests.
type AccountHandler struct {
	svc    *service.AccountService
	logger *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			writeError(w, http.StatusConflict, "EMAIL_EXISTS", "Email already exists")
		case errors.Is(err, service.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Email, username and password are required")
		default:
			h.logger.Error("registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		}
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("%s created successfully", user.Email),
	})
}

// Login handles POST /login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same status and body whether the email is unknown or the
			// password is wrong.
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}
