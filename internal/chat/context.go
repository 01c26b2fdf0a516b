package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/memchat/internal/llm"
	"github.com/rcliao/memchat/internal/model"
)

// DefaultSystemPrompt is used when no custom prompt is configured.
const DefaultSystemPrompt = "You are a personal assistant. Be concise, helpful, and accurate. " +
	"Use the provided user profile and notes as long-term memory. " +
	"If something is unknown, ask a brief clarifying question."

// assembleContext builds the ordered prompt for one turn: system prompt,
// optional memory block, bounded history, then the new user message. Order
// matters; backends are order-sensitive. No storage is mutated here.
func (b *Bot) assembleContext(ctx context.Context, sessionID, userMessage string) ([]llm.Message, error) {
	prompt := b.cfg.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	messages := []llm.Message{{Role: model.RoleSystem, Content: prompt}}

	block, err := b.buildMemoryBlock(ctx)
	if err != nil {
		return nil, err
	}
	if block != "" {
		messages = append(messages, llm.Message{Role: model.RoleSystem, Content: block})
	}

	history, err := b.store.RecentMessages(ctx, sessionID, b.cfg.HistoryWindow)
	if err != nil {
		return nil, err
	}
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	return append(messages, llm.Message{Role: model.RoleUser, Content: userMessage}), nil
}

// buildMemoryBlock renders stored profile facts and notes as a system
// message body. Returns "" when there is nothing to show.
func (b *Bot) buildMemoryBlock(ctx context.Context) (string, error) {
	profile, err := b.repo.ProfileSnapshot(ctx, model.ProfileKeys)
	if err != nil {
		return "", err
	}
	notes, err := b.repo.RecentNotes(ctx, b.cfg.NotesLimit)
	if err != nil {
		return "", err
	}
	if len(profile) == 0 && len(notes) == 0 {
		return "", nil
	}

	var lines []string
	if len(profile) > 0 {
		lines = append(lines, "User Profile:")
		for _, key := range model.ProfileKeys {
			if v, ok := profile[key]; ok {
				lines = append(lines, fmt.Sprintf("- %s: %s", label(key), v))
			}
		}
	}
	if len(notes) > 0 {
		lines = append(lines, "Recent Notes:")
		for _, n := range notes {
			lines = append(lines, "- "+n)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// label turns a fact key into its display form ("time_zone" -> "Time Zone").
func label(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
