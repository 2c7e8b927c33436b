package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/parley/internal/domain"
	"github.com/parleyhq/parley/internal/services/chat"
	"github.com/parleyhq/parley/pkg/httpext"
)

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

type registerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// HandleRegisterUser handles user registration requests
func HandleRegisterUser(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Register request validation failed")
		httpext.JsonError(w, "Name and Email are required", http.StatusBadRequest)
		return
	}

	user, err := chatService.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			httpext.JsonError(w, "Name and Email are required", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to register user")
		httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(user); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		return
	}

	log.Info().
		Str("user_id", user.UserID).
		Str("client_ip", r.RemoteAddr).
		Msg("User registered")
}
