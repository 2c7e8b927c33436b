package chat

import (
	"context"

	"github.com/parleyhq/parley/internal/domain"
)

// Service defines the interface for the user-facing chat workflows
type Service interface {
	// Register creates the user in the directory and the database, deriving
	// the user ID from the email address
	Register(ctx context.Context, name, email string) (*domain.User, error)

	// SendMessage runs one chat turn: completion, persistence, channel delivery
	SendMessage(ctx context.Context, userID, message string) (string, error)

	// ListMessages returns the user's chat turns in insertion order
	ListMessages(ctx context.Context, userID string) ([]domain.ChatTurn, error)
}

// Directory is the external chat provider's user and channel surface.
type Directory interface {
	FindUser(ctx context.Context, uid string) (*domain.User, error)
	UpsertUser(ctx context.Context, uid, name, email string) error
	EnsureChannel(ctx context.Context, guid, creatorUID, displayName string) error
	SendMessage(ctx context.Context, guid, senderUID, text string) error
}

// Storage is the relational persistence surface.
type Storage interface {
	FindUserByUserID(ctx context.Context, userID string) (*domain.User, error)
	InsertUser(ctx context.Context, userID, name, email string) error
	InsertChatTurn(ctx context.Context, userID, message, reply string) error
	ListChatTurns(ctx context.Context, userID string) ([]domain.ChatTurn, error)
}

// Inference is the completion surface.
type Inference interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
