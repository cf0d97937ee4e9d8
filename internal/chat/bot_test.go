package chat

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aria/internal/store"
)

type scriptedClient struct {
	answers []string
	prompts []string
	err     error
}

func (c *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

func (c *scriptedClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.prompts = append(c.prompts, userPrompt)
	answer := c.answers[0]
	if len(c.answers) > 1 {
		c.answers = c.answers[1:]
	}
	return answer, nil
}

func newHistory(t *testing.T) *store.ChatStore {
	t.Helper()
	s, err := store.NewChatStore(filepath.Join(t.TempDir(), "chat.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRespondLogsBothHalves(t *testing.T) {
	history := newHistory(t)
	client := &scriptedClient{answers: []string{"Hi Sam!</s>"}}
	bot := NewBot(client, history, "Sam", "Aria", nil)

	answer, err := bot.Respond(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi Sam!", answer)

	logged, err := history.History(bot.SessionID(), 10)
	require.NoError(t, err)
	require.Len(t, logged, 2)
	assert.Equal(t, "user", logged[0].Role)
	assert.Equal(t, "hello", logged[0].Content)
	assert.Equal(t, "assistant", logged[1].Role)
	assert.Equal(t, "Hi Sam!", logged[1].Content)
}

func TestRespondCarriesHistoryIntoPrompt(t *testing.T) {
	history := newHistory(t)
	client := &scriptedClient{answers: []string{"Paris.", "About 2.1 million."}}
	bot := NewBot(client, history, "Sam", "Aria", nil)

	_, err := bot.Respond(context.Background(), "capital of France?")
	require.NoError(t, err)
	_, err = bot.Respond(context.Background(), "how many people live there?")
	require.NoError(t, err)

	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "capital of France?")
	assert.Contains(t, client.prompts[1], "Paris.")
	assert.Contains(t, client.prompts[1], "how many people live there?")
}

func TestRespondWithoutHistoryStore(t *testing.T) {
	client := &scriptedClient{answers: []string{"sure"}}
	bot := NewBot(client, nil, "", "", nil)

	answer, err := bot.Respond(context.Background(), "ok?")
	require.NoError(t, err)
	assert.Equal(t, "sure", answer)
}

func TestRespondPropagatesModelError(t *testing.T) {
	bot := NewBot(&scriptedClient{err: errors.New("down")}, nil, "Sam", "Aria", nil)
	_, err := bot.Respond(context.Background(), "hello")
	assert.Error(t, err)
}

func TestRespondRejectsEmptyQuery(t *testing.T) {
	bot := NewBot(&scriptedClient{answers: []string{"x"}}, nil, "Sam", "Aria", nil)
	_, err := bot.Respond(context.Background(), "  ")
	assert.Error(t, err)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := NewBot(&scriptedClient{answers: []string{"x"}}, nil, "", "", nil)
	b := NewBot(&scriptedClient{answers: []string{"x"}}, nil, "", "", nil)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}
