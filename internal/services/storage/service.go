// Package storage persists users and chat turns in Postgres.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/parleyhq/parley/internal/domain"
)

// DBTX is the querying surface the service needs. *pgxpool.Pool satisfies it;
// tests substitute a fake.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Service struct {
	db DBTX
}

func NewService(db DBTX) *Service {
	return &Service{db: db}
}

// FindUserByUserID returns the stored user, or domain.ErrUserNotFound when no
// row matches.
func (s *Service) FindUserByUserID(ctx context.Context, userID string) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT user_id, name, email FROM users WHERE user_id = $1`, userID)

	var user domain.User
	if err := row.Scan(&user.UserID, &user.Name, &user.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user %q: %w", userID, err)
	}
	return &user, nil
}

func (s *Service) InsertUser(ctx context.Context, userID, name, email string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (user_id, name, email) VALUES ($1, $2, $3)`,
		userID, name, email)
	if err != nil {
		return fmt.Errorf("failed to insert user %q: %w", userID, err)
	}
	return nil
}

func (s *Service) InsertChatTurn(ctx context.Context, userID, message, reply string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO chat_turns (user_id, message, reply) VALUES ($1, $2, $3)`,
		userID, message, reply)
	if err != nil {
		return fmt.Errorf("failed to insert chat turn for %q: %w", userID, err)
	}
	return nil
}

// ListChatTurns returns the user's turns in insertion order. A user without
// turns yields an empty slice, not an error.
func (s *Service) ListChatTurns(ctx context.Context, userID string) ([]domain.ChatTurn, error) {
	rows, err := s.db.Query(ctx,
		`SELECT user_id, message, reply, created_at FROM chat_turns WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat turns for %q: %w", userID, err)
	}
	defer rows.Close()

	turns := []domain.ChatTurn{}
	for rows.Next() {
		var turn domain.ChatTurn
		if err := rows.Scan(&turn.UserID, &turn.Message, &turn.Reply, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat turn: %w", err)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat turns: %w", err)
	}
	return turns, nil
}
