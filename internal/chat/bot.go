// Package chat implements the general conversational responder with
// durable per-session history.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aria/internal/perception"
	"aria/internal/search"
	"aria/internal/store"
)

const historyWindow = 20

// Bot answers general queries, carrying conversation history across turns.
type Bot struct {
	client        perception.LLMClient
	history       *store.ChatStore
	logger        *zap.Logger
	sessionID     string
	username      string
	assistantName string
}

// NewBot starts a fresh conversation session.
func NewBot(client perception.LLMClient, history *store.ChatStore, username, assistantName string, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	if username == "" {
		username = "there"
	}
	if assistantName == "" {
		assistantName = "Aria"
	}
	return &Bot{
		client:        client,
		history:       history,
		logger:        logger,
		sessionID:     uuid.NewString(),
		username:      username,
		assistantName: assistantName,
	}
}

// SessionID returns the id under which this conversation is logged.
func (b *Bot) SessionID() string {
	return b.sessionID
}

// Respond answers the query using recent history as context and logs the
// exchange.
func (b *Bot) Respond(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("empty chat query")
	}

	answer, err := b.client.CompleteWithSystem(ctx, b.systemPrompt(), b.buildPrompt(query))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	answer = strings.TrimSpace(strings.ReplaceAll(answer, "</s>", ""))

	if b.history != nil {
		if err := b.history.AppendMessage(b.sessionID, "user", query); err != nil {
			b.logger.Warn("failed to log user message", zap.Error(err))
		}
		if err := b.history.AppendMessage(b.sessionID, "assistant", answer); err != nil {
			b.logger.Warn("failed to log assistant message", zap.Error(err))
		}
	}
	return answer, nil
}

func (b *Bot) systemPrompt() string {
	return fmt.Sprintf(`You are %s, a helpful and friendly voice assistant talking to %s. Answer briefly and conversationally, in plain text without markdown. Do not mention the time or date unless asked.`,
		b.assistantName, b.username)
}

// buildPrompt prepends recent history and current clock context so the
// model can resolve follow-up questions and time references.
func (b *Bot) buildPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString(search.RealtimeInformation(time.Now()))
	sb.WriteString("\n")

	if b.history != nil {
		messages, err := b.history.History(b.sessionID, historyWindow)
		if err != nil {
			b.logger.Warn("failed to load chat history", zap.Error(err))
		}
		for _, m := range messages {
			role := b.username
			if m.Role == "assistant" {
				role = b.assistantName
			}
			fmt.Fprintf(&sb, "%s: %s\n", role, m.Content)
		}
	}

	fmt.Fprintf(&sb, "%s: %s\n%s:", b.username, query, b.assistantName)
	return sb.String()
}
