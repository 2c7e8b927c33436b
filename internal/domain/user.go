package domain

import "time"

// User is a registered chat user. The UserID is derived from the email address
// and doubles as the key in both the chat provider's directory and the local
// database.
type User struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ChatTurn is one completed exchange: the user's message and the model's reply.
// Turns are immutable once written.
type ChatTurn struct {
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"createdAt"`
}
