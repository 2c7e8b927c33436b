package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/parley/internal/domain"
	"github.com/parleyhq/parley/internal/identity"
)

const (
	botUID        = "ai_bot"
	channelPrefix = "chat-"
	channelName   = "AI Chat"
)

type Implementation struct {
	directory Directory
	storage   Storage
	inference Inference
}

func NewService(directory Directory, storage Storage, inference Inference) (Service, error) {
	if directory == nil || storage == nil || inference == nil {
		return nil, fmt.Errorf("directory, storage and inference services are required")
	}

	return &Implementation{
		directory: directory,
		storage:   storage,
		inference: inference,
	}, nil
}

// Register writes the user to the directory and the database, skipping each
// store that already holds the record. The two writes are best-effort
// sequential; a failure after the first write leaves the stores divergent and
// is surfaced, not rolled back.
func (s *Implementation) Register(ctx context.Context, name, email string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}

	userID := identity.Normalize(email)

	_, err := s.directory.FindUser(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		if err := s.directory.UpsertUser(ctx, userID, name, email); err != nil {
			return nil, fmt.Errorf("failed to create directory user: %w", err)
		}
		log.Info().Str("user_id", userID).Msg("Created directory user")
	case err != nil:
		return nil, fmt.Errorf("failed to query directory: %w", err)
	}

	_, err = s.storage.FindUserByUserID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		if err := s.storage.InsertUser(ctx, userID, name, email); err != nil {
			return nil, fmt.Errorf("failed to store user: %w", err)
		}
		log.Info().Str("user_id", userID).Msg("Stored user record")
	case err != nil:
		return nil, fmt.Errorf("failed to query stored user: %w", err)
	}

	return &domain.User{UserID: userID, Name: name, Email: email}, nil
}

// SendMessage runs one chat turn. Steps are strictly sequential: the turn is
// rejected before inference when the user is unknown to either store, and
// nothing is persisted when inference fails. Channel delivery happens after
// the turn is stored, so a delivery failure leaves a durable turn behind.
func (s *Implementation) SendMessage(ctx context.Context, userID, message string) (string, error) {
	if userID == "" || message == "" {
		return "", fmt.Errorf("%w: message and user ID are required", domain.ErrValidation)
	}

	if _, err := s.directory.FindUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", fmt.Errorf("directory: %w", domain.ErrUserNotFound)
		}
		return "", fmt.Errorf("failed to query directory: %w", err)
	}

	if _, err := s.storage.FindUserByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", fmt.Errorf("storage: %w", domain.ErrUserNotFound)
		}
		return "", fmt.Errorf("failed to query stored user: %w", err)
	}

	reply, err := s.inference.Complete(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to get completion: %w", err)
	}

	if err := s.storage.InsertChatTurn(ctx, userID, message, reply); err != nil {
		return "", fmt.Errorf("failed to store chat turn: %w", err)
	}

	channel := channelPrefix + userID
	if err := s.directory.EnsureChannel(ctx, channel, botUID, channelName); err != nil {
		return "", fmt.Errorf("failed to ensure channel: %w", err)
	}
	if err := s.directory.SendMessage(ctx, channel, botUID, reply); err != nil {
		return "", fmt.Errorf("failed to deliver reply: %w", err)
	}

	log.Info().Str("user_id", userID).Str("channel", channel).Msg("Chat turn completed")
	return reply, nil
}

// ListMessages returns the stored turns verbatim.
func (s *Implementation) ListMessages(ctx context.Context, userID string) ([]domain.ChatTurn, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", domain.ErrValidation)
	}
	return s.storage.ListChatTurns(ctx, userID)
}
