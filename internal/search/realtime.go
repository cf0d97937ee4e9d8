// Package search answers queries that need up-to-date information: it
// scrapes live search results and lets the language model compose an answer
// from them.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"aria/internal/perception"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const answerPreamble = `You are a very accurate and advanced AI assistant which has real-time up-to-date information from the internet.
*** Provide answers in a professional way with proper grammar and punctuation. ***
*** Just answer the question from the provided data. ***`

// Result is one scraped search hit.
type Result struct {
	Title   string
	Snippet string
}

// Engine scrapes a results page and summarizes through the model.
type Engine struct {
	client     perception.LLMClient
	httpClient *http.Client
	endpoint   string
	maxResults int
	logger     *zap.Logger
	now        func() time.Time
}

// NewEngine builds a realtime search engine over the given model client.
func NewEngine(client perception.LLMClient, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		client:     client,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		endpoint:   "https://html.duckduckgo.com/html/",
		maxResults: 5,
		logger:     logger,
		now:        time.Now,
	}
}

// SetMaxResults caps how many scraped hits feed the prompt.
func (e *Engine) SetMaxResults(n int) {
	if n > 0 {
		e.maxResults = n
	}
}

// SetTimeout bounds the scrape request.
func (e *Engine) SetTimeout(d time.Duration) {
	if d > 0 {
		e.httpClient.Timeout = d
	}
}

// Search fetches live results for the query and asks the model to answer
// from them. Scrape failures degrade to a model-only answer rather than
// failing the intent.
func (e *Engine) Search(ctx context.Context, query string) (string, error) {
	results, err := e.fetchResults(ctx, query)
	if err != nil {
		e.logger.Warn("search scrape failed, answering without live results",
			zap.String("query", query), zap.Error(err))
	}

	prompt := e.buildPrompt(query, results)
	answer, err := e.client.CompleteWithSystem(ctx, answerPreamble, prompt)
	if err != nil {
		return "", fmt.Errorf("answering search query: %w", err)
	}
	return tidyAnswer(answer), nil
}

// fetchResults scrapes the top hits from the HTML results page.
func (e *Engine) fetchResults(ctx context.Context, query string) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		e.endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching search results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}

	return ParseResults(doc, e.maxResults), nil
}

// ParseResults extracts title/snippet pairs from a results document.
func ParseResults(doc *goquery.Document, max int) []Result {
	var results []Result
	doc.Find("div.result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find("a.result__a").First().Text())
		snippet := strings.TrimSpace(s.Find("a.result__snippet").First().Text())
		if snippet == "" {
			snippet = strings.TrimSpace(s.Find("div.result__snippet").First().Text())
		}
		if title == "" {
			return true
		}
		results = append(results, Result{Title: title, Snippet: snippet})
		return len(results) < max
	})
	return results
}

// buildPrompt wraps the scraped results and the realtime clock block around
// the user's query.
func (e *Engine) buildPrompt(query string, results []Result) string {
	var b strings.Builder

	if len(results) > 0 {
		fmt.Fprintf(&b, "The search results for '%s' are:\n[start]\n", query)
		for _, r := range results {
			fmt.Fprintf(&b, "Title: %s\nDescription: %s\n\n", r.Title, r.Snippet)
		}
		b.WriteString("[end]\n\n")
	}

	b.WriteString(RealtimeInformation(e.now()))
	b.WriteString("\n")
	b.WriteString(query)
	return b.String()
}

// RealtimeInformation renders the current clock block the model can draw on.
func RealtimeInformation(now time.Time) string {
	var b strings.Builder
	b.WriteString("Use this real-time information if needed:\n")
	fmt.Fprintf(&b, "Day: %s\n", now.Format("Monday"))
	fmt.Fprintf(&b, "Date: %s\n", now.Format("02 January 2006"))
	fmt.Fprintf(&b, "Time: %s\n", now.Format("15:04:05"))
	return b.String()
}

// tidyAnswer strips empty lines and stray model tokens.
func tidyAnswer(answer string) string {
	answer = strings.ReplaceAll(answer, "</s>", "")
	var lines []string
	for _, line := range strings.Split(answer, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
