// Package assistant wires intent classification and dispatch into the
// end-to-end utterance pipeline.
package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"aria/internal/types"
)

// Classifier turns an utterance into intents.
type Classifier interface {
	Classify(ctx context.Context, utterance string) []types.Intent
}

// Dispatcher executes intents and reports whether an exit was requested.
type Dispatcher interface {
	Dispatch(ctx context.Context, intents []types.Intent) ([]types.TaskResult, bool)
}

// Reply is the pipeline's answer to one utterance.
type Reply struct {
	Text string
	Exit bool
}

// Pipeline runs utterances through classification and dispatch.
type Pipeline struct {
	classifier Classifier
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewPipeline builds the utterance pipeline.
func NewPipeline(classifier Classifier, dispatcher Dispatcher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{classifier: classifier, dispatcher: dispatcher, logger: logger}
}

// HandleUtterance classifies the utterance, dispatches the resulting
// intents, and joins successful outputs in submission order. Failed tasks
// contribute a short apology line instead of dropping silently.
func (p *Pipeline) HandleUtterance(ctx context.Context, utterance string) (Reply, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return Reply{}, nil
	}

	intents := p.classifier.Classify(ctx, utterance)
	p.logger.Debug("utterance classified",
		zap.String("utterance", utterance), zap.Int("intents", len(intents)))

	results, exit := p.dispatcher.Dispatch(ctx, intents)

	var lines []string
	for _, r := range results {
		if r.Ok() {
			if r.Output != "" {
				lines = append(lines, r.Output)
			}
			continue
		}
		p.logger.Warn("task failed",
			zap.String("intent", r.Intent.Kind.String()),
			zap.String("argument", r.Intent.Argument),
			zap.Error(r.Err))
		lines = append(lines, "Sorry, I couldn't "+describe(r.Intent)+".")
	}

	return Reply{Text: strings.Join(lines, "\n"), Exit: exit}, nil
}

func describe(intent types.Intent) string {
	verb := strings.ToLower(intent.Kind.String())
	verb = strings.ReplaceAll(verb, "_", " ")
	if intent.Argument == "" {
		return "complete the " + verb + " request"
	}
	return verb + " " + intent.Argument
}
