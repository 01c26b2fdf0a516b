// Package model defines the chat message and memory fact types.
package model

import "time"

// Message roles as stored and as sent to the model backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// KeyNote is the fact key under which free-form notes accumulate.
const KeyNote = "note"

// ProfileKeys is the fixed render order for profile snapshots.
var ProfileKeys = []string{
	"name",
	"location",
	"job",
	"timezone",
	"email",
	"phone",
	"likes",
	"dislikes",
}

// AccumulatingKeys retain history; display joins the most recent values.
// Every other profile key is a singleton where only the latest value counts.
var AccumulatingKeys = map[string]bool{
	"likes":    true,
	"dislikes": true,
}

// Message is one half of a turn in a session's history. Immutable once
// written; ordering is insertion order.
type Message struct {
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Fact is a single stored long-term memory entry.
type Fact struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
