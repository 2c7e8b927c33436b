package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/parley/internal/domain"
	"github.com/parleyhq/parley/internal/services/chat"
	"github.com/parleyhq/parley/pkg/httpext"
)

type chatRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// HandleChat handles one chat turn: completion, persistence and delivery
func HandleChat(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	var req chatRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Chat request validation failed")
		httpext.JsonError(w, "Message and UserID are required", http.StatusBadRequest)
		return
	}

	reply, err := chatService.SendMessage(r.Context(), req.UserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			httpext.JsonError(w, "Message and UserID are required", http.StatusBadRequest)
		case errors.Is(err, domain.ErrUserNotFound):
			log.Warn().Str("user_id", req.UserID).Msg("Chat turn for unknown user")
			httpext.JsonError(w, "User not found", http.StatusNotFound)
		default:
			log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to process chat")
			httpext.JsonError(w, "Failed to process chat", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(chatResponse{Reply: reply}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		return
	}

	log.Info().
		Str("user_id", req.UserID).
		Str("client_ip", r.RemoteAddr).
		Msg("Chat turn processed successfully")
}
