package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoClient struct {
	lastSystem string
	lastUser   string
	answer     string
}

func (c *echoClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

func (c *echoClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.lastSystem = systemPrompt
	c.lastUser = userPrompt
	return c.answer, nil
}

const resultsPage = `<html><body>
<div class="result">
  <a class="result__a" href="#">Go 1.24 Release Notes</a>
  <a class="result__snippet" href="#">Go 1.24 adds generic type aliases.</a>
</div>
<div class="result">
  <a class="result__a" href="#">The Go Blog</a>
  <div class="result__snippet">News from the Go project.</div>
</div>
<div class="result"><a class="result__a" href="#"></a></div>
</body></html>`

func TestParseResults(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resultsPage))
	require.NoError(t, err)

	results := ParseResults(doc, 5)
	require.Len(t, results, 2)
	assert.Equal(t, "Go 1.24 Release Notes", results[0].Title)
	assert.Equal(t, "Go 1.24 adds generic type aliases.", results[0].Snippet)
	assert.Equal(t, "News from the Go project.", results[1].Snippet)
}

func TestParseResultsHonorsMax(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resultsPage))
	require.NoError(t, err)
	assert.Len(t, ParseResults(doc, 1), 1)
}

func TestSearchFeedsScrapedContextToModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go+1.24", r.URL.RawQuery[2:]) // q=go+1.24
		w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	client := &echoClient{answer: "Go 1.24 is out.\n\n"}
	engine := NewEngine(client, nil)
	engine.endpoint = server.URL + "/"

	answer, err := engine.Search(context.Background(), "go 1.24")
	require.NoError(t, err)
	assert.Equal(t, "Go 1.24 is out.", answer)

	assert.Contains(t, client.lastUser, "[start]")
	assert.Contains(t, client.lastUser, "Go 1.24 Release Notes")
	assert.Contains(t, client.lastUser, "[end]")
	assert.Contains(t, client.lastUser, "go 1.24")
	assert.Contains(t, client.lastSystem, "real-time")
}

func TestSearchDegradesWhenScrapeFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	client := &echoClient{answer: "best effort answer"}
	engine := NewEngine(client, nil)
	engine.endpoint = server.URL + "/"

	answer, err := engine.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "best effort answer", answer)
	assert.NotContains(t, client.lastUser, "[start]")
}

func TestRealtimeInformation(t *testing.T) {
	now := time.Date(2025, time.June, 10, 15, 4, 5, 0, time.UTC)
	info := RealtimeInformation(now)
	assert.Contains(t, info, "Day: Tuesday")
	assert.Contains(t, info, "Date: 10 June 2025")
	assert.Contains(t, info, "Time: 15:04:05")
}

func TestTidyAnswer(t *testing.T) {
	assert.Equal(t, "a\nb", tidyAnswer("a\n\n\nb</s>\n"))
}
