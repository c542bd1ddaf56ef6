package contract

import (
	"context"

	"fashion-chatbot-be/internal/entity"
)

// ConversationRepository is the append-only per-session message log with a
// bounded retrieval window. The store owns retention; this core only
// appends and reads.
type ConversationRepository interface {
	Append(ctx context.Context, sessionID int64, role, content string) error

	// RecentHistory returns up to limit latest turns in insertion order.
	RecentHistory(ctx context.Context, sessionID int64, limit int) ([]entity.ChatTurn, error)

	ClearHistory(ctx context.Context, sessionID int64) error
}
