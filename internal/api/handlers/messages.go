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

type messagesRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type messagesResponse struct {
	Messages []domain.ChatTurn `json:"messages"`
}

// HandleGetMessages returns a user's chat history in insertion order
func HandleGetMessages(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	var req messagesRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Get messages request validation failed")
		httpext.JsonError(w, "UserID is required", http.StatusBadRequest)
		return
	}

	turns, err := chatService.ListMessages(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			httpext.JsonError(w, "UserID is required", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to list messages")
		httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if turns == nil {
		turns = []domain.ChatTurn{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(messagesResponse{Messages: turns}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
