package perception

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"aria/internal/types"
)

// decisionPreamble steers the model into emitting comma-separated tagged
// segments. The prefix vocabulary it names is the contract enforced by the
// post-processing in Classify.
const decisionPreamble = `You are a very accurate Decision-Making Model which decides what kind of a query is given to you. Do not answer any query, just categorize it.
-> Respond with 'general (query)' if the query can be answered by a conversational model and needs no up-to-date information.
-> Respond with 'realtime (query)' if the query needs up-to-date information from the internet.
-> Respond with 'open (name)', 'close (name)', 'play (song)', 'system (task)', 'content (topic)', 'google search (topic)', 'youtube search (topic)', 'generate image (prompt)' for the matching task.
-> Respond with 'reminder (time and message)' for reminder requests, e.g. 'reminder 9:00pm call mom'.
-> Respond with 'set timer (duration)' for timer requests, e.g. 'set timer 5 minutes'.
-> Respond with 'list reminders', 'list timers', 'cancel reminder', 'cancel timer' for those requests.
-> Respond with 'exit' if the user is saying goodbye.
*** If the query asks for multiple tasks, respond with all of them separated by commas, like 'open facebook, open telegram, close whatsapp'. ***
*** Respond with 'general (query)' if you cannot decide. ***

Examples:
User: how are you?
Model: general how are you?
User: what is the weather today?
Model: realtime what is the weather today?
User: open facebook and instagram.
Model: open facebook, open instagram
User: what is today's date and by the way remind me to call mom at 5:30pm.
Model: general what is today's date, reminder 5:30pm call mom
User: set a timer for 5 minutes.
Model: set timer 5 minutes
User: show my timers.
Model: list timers
User: create a picture of a cute cat.
Model: generate image cute cat`

// Classifier wraps the external decision model with the core's
// post-processing contract.
type Classifier struct {
	client LLMClient
	logger *zap.Logger
}

// NewClassifier builds a classifier around the given model client.
func NewClassifier(client LLMClient, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{client: client, logger: logger}
}

// Classify returns the ordered intents for one utterance. The raw model
// output is split on commas; each segment must match the vocabulary by
// prefix or it is dropped. Zero surviving segments, or any model failure,
// fall open to a single General intent wrapping the utterance, so the
// classifier never returns an empty list.
func (c *Classifier) Classify(ctx context.Context, utterance string) []types.Intent {
	raw, err := c.client.CompleteWithSystem(ctx, decisionPreamble, utterance)
	if err != nil {
		c.logger.Warn("decision model call failed, falling open to general",
			zap.Error(err))
		return []types.Intent{types.NewGeneralIntent(utterance)}
	}

	intents := PostProcess(raw)
	if len(intents) == 0 {
		c.logger.Debug("no vocabulary segment matched, falling open to general",
			zap.String("raw", raw))
		return []types.Intent{types.NewGeneralIntent(utterance)}
	}
	return intents
}

// PostProcess applies the splitting and validation contract to raw model
// output. Exposed separately so it can be exercised without a live model.
func PostProcess(raw string) []types.Intent {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\n", " "))
	if raw == "" {
		return nil
	}

	var intents []types.Intent
	for _, segment := range strings.Split(raw, ",") {
		if intent, ok := types.ParseIntent(segment); ok {
			intents = append(intents, intent)
		}
	}
	return intents
}
