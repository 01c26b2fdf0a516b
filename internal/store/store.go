// Package store provides the persistence layer for session history and
// memory facts, backed by SQLite.
package store

import (
	"context"

	"github.com/rcliao/memchat/internal/model"
)

// Store defines the persistence contract the rest of the chatbot builds on.
type Store interface {
	// AppendMessage appends one immutable message row for a session.
	AppendMessage(ctx context.Context, sessionID, role, content string) error

	// RecentMessages returns at most limit most recent messages for a
	// session, in chronological order.
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]model.Message, error)

	// ClearSession deletes all messages for a session. Irreversible.
	ClearSession(ctx context.Context, sessionID string) error

	// WriteFact stores a fact value. With replace, all prior rows for the
	// key are superseded atomically.
	WriteFact(ctx context.Context, key, value string, replace bool) error

	// LatestFact returns the most recent value for a key, if any.
	LatestFact(ctx context.Context, key string) (string, bool, error)

	// AccumulatedFacts returns the last n values for a key, oldest first.
	AccumulatedFacts(ctx context.Context, key string, n int) ([]string, error)

	// Notes returns up to limit note values, most recent first.
	Notes(ctx context.Context, limit int) ([]string, error)

	// SearchFacts returns fact values containing the query substring, in
	// reverse insertion order.
	SearchFacts(ctx context.Context, query string, limit int) ([]string, error)

	// Close closes the store.
	Close() error
}
