// Package content generates written material (emails, letters, code, notes)
// through the language model and saves it for the user.
package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"aria/internal/perception"
)

const writerPreamble = `You are a professional content writer. You write letters, emails, applications, code, essays, notes, poems, songs and other professional content. Always write in a professional way following the standard approach.`

// Writer turns a topic into saved content.
type Writer struct {
	client perception.LLMClient
	dir    string
	logger *zap.Logger
}

// NewWriter builds a writer that saves generated files under dir.
func NewWriter(client perception.LLMClient, dir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{client: client, dir: dir, logger: logger}
}

// Write generates content for the topic, saves it to <topic>.txt under the
// content directory, and returns a confirmation naming the file.
func (w *Writer) Write(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("empty content topic")
	}

	text, err := w.client.CompleteWithSystem(ctx, writerPreamble, topic)
	if err != nil {
		return "", fmt.Errorf("generating content for %q: %w", topic, err)
	}
	text = strings.ReplaceAll(text, "</s>", "")

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating content directory: %w", err)
	}

	path := filepath.Join(w.dir, SafeFileName(topic)+".txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("saving content: %w", err)
	}

	w.logger.Info("content written", zap.String("topic", topic), zap.String("path", path))
	return fmt.Sprintf("I've written the content about %s and saved it to %s.", topic, path), nil
}

// SafeFileName reduces a topic to a filesystem-safe base name.
func SafeFileName(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if len(name) > 60 {
		name = name[:60]
	}
	if name == "" {
		name = "content"
	}
	return name
}
