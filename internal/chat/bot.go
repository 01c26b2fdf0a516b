// Package chat implements the per-turn conversation orchestrator.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/rcliao/memchat/internal/config"
	"github.com/rcliao/memchat/internal/llm"
	"github.com/rcliao/memchat/internal/memory"
	"github.com/rcliao/memchat/internal/model"
	"github.com/rcliao/memchat/internal/store"
)

// Reply prefixes keep error paths textually distinguishable from model
// output, so callers can decide whether a retry makes sense.
const (
	EmptyMessageReply     = "Please enter a message."
	BackendUnavailablePfx = "LLM backend not available: "
	BackendErrorPfx       = "LLM error: "
)

// Bot ties storage, memory and the model backend together. One instance
// per process; safe for concurrent Chat calls.
type Bot struct {
	cfg        config.Settings
	store      store.Store
	repo       *memory.Repository
	client     llm.Client
	backendErr error
	logger     *log.Logger
}

// New wires the orchestrator with an explicitly constructed backend. A nil
// client with a non-nil backendErr marks the backend as unavailable; the
// error is reported on each turn instead of failing the process, so the
// memory views stay usable.
func New(cfg config.Settings, s store.Store, client llm.Client, backendErr error, logger *log.Logger) *Bot {
	return &Bot{
		cfg:        cfg,
		store:      s,
		repo:       memory.NewRepository(s),
		client:     client,
		backendErr: backendErr,
		logger:     logger,
	}
}

// NewSessionID returns a fresh opaque session token.
func NewSessionID() string {
	return ulid.Make().String()
}

// Chat runs one turn: validate, assemble context, invoke the model,
// persist the exchange, extract facts. Empty input and backend failures
// return diagnostic reply text with no side effects; storage failures
// return an error.
func (b *Bot) Chat(ctx context.Context, sessionID, userMessage string) (string, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return EmptyMessageReply, nil
	}
	if b.client == nil || b.backendErr != nil {
		reason := "no backend configured"
		if b.backendErr != nil {
			reason = b.backendErr.Error()
		}
		return BackendUnavailablePfx + reason, nil
	}

	messages, err := b.assembleContext(ctx, sessionID, userMessage)
	if err != nil {
		return "", fmt.Errorf("assemble context: %w", err)
	}

	reply, err := b.client.Generate(ctx, messages, b.cfg.Temperature, b.cfg.MaxTokens)
	if err != nil {
		b.logger.Error("model call failed", "session", sessionID, "err", err)
		return BackendErrorPfx + err.Error(), nil
	}

	if err := b.store.AppendMessage(ctx, sessionID, model.RoleUser, userMessage); err != nil {
		return "", fmt.Errorf("persist user message: %w", err)
	}
	if err := b.store.AppendMessage(ctx, sessionID, model.RoleAssistant, reply); err != nil {
		return "", fmt.Errorf("persist reply: %w", err)
	}

	if b.cfg.MemoryMode == config.MemoryModeHeuristic {
		if err := b.repo.ApplyExtracted(ctx, memory.Extract(userMessage)); err != nil {
			return "", fmt.Errorf("store extracted facts: %w", err)
		}
	}

	b.logger.Debug("turn complete", "session", sessionID, "context", len(messages), "reply_chars", len(reply))
	return reply, nil
}

// Profile returns the current profile snapshot for display.
func (b *Bot) Profile(ctx context.Context) (map[string]string, error) {
	return b.repo.ProfileSnapshot(ctx, model.ProfileKeys)
}

// Notes returns the most recent notes, newest first.
func (b *Bot) Notes(ctx context.Context) ([]string, error) {
	return b.repo.RecentNotes(ctx, b.cfg.NotesLimit)
}

// History returns up to limit stored messages for a session in
// chronological order.
func (b *Bot) History(ctx context.Context, sessionID string, limit int) ([]model.Message, error) {
	return b.store.RecentMessages(ctx, sessionID, limit)
}

// ClearSession wipes a session's history.
func (b *Bot) ClearSession(ctx context.Context, sessionID string) error {
	return b.store.ClearSession(ctx, sessionID)
}

// BackendReady reports the backend construction error, if any.
func (b *Bot) BackendReady() error {
	return b.backendErr
}
