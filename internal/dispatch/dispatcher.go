// Package dispatch routes classified intents to their handlers, runs the
// handlers for one utterance concurrently, and aggregates the results in the
// original intent order.
package dispatch

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aria/internal/types"
)

// ActionRunner performs a named automation action: open, close, play,
// system control, or a browser search. Failure is reported, never fatal.
type ActionRunner interface {
	Perform(ctx context.Context, kind types.IntentKind, argument string) (string, error)
}

// Responder answers a general conversational query.
type Responder interface {
	Respond(ctx context.Context, query string) (string, error)
}

// Searcher answers a query that needs up-to-date information.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// ContentWriter generates written content for a topic and returns a
// user-facing confirmation (typically including the saved file path).
type ContentWriter interface {
	Write(ctx context.Context, topic string) (string, error)
}

// ImageGenerator renders an image for a prompt and returns a confirmation.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Notifier is the slice of the notification service the dispatcher calls.
type Notifier interface {
	CreateReminder(text string) (string, error)
	CreateTimer(text string) (string, error)
	ListReminders() string
	ListTimers() string
	CancelReminder(id int64) (string, error)
	CancelTimer(id int64) (string, error)
}

// Dispatcher fans one utterance's intents out to handlers.
type Dispatcher struct {
	actions       ActionRunner
	responder     Responder
	searcher      Searcher
	content       ContentWriter
	image         ImageGenerator
	notifications Notifier
	logger        *zap.Logger
}

// New builds a dispatcher over the given collaborators.
func New(actions ActionRunner, responder Responder, searcher Searcher,
	content ContentWriter, image ImageGenerator, notifications Notifier,
	logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		actions:       actions,
		responder:     responder,
		searcher:      searcher,
		content:       content,
		image:         image,
		notifications: notifications,
		logger:        logger,
	}
}

// Dispatch executes the intents of one utterance and returns one result per
// executed intent, in submission order regardless of completion order. The
// second return value reports whether an Exit intent resolved.
//
// Precedence: any automation or notification intent suppresses the
// General/Realtime/Exit group for this utterance. Within that suppressed
// group the first match wins; when both General and Realtime are present
// the queries are merged and answered through the realtime path.
func (d *Dispatcher) Dispatch(ctx context.Context, intents []types.Intent) ([]types.TaskResult, bool) {
	var tasks []types.Intent
	for _, intent := range intents {
		if intent.IsAutomation() || intent.Kind == types.KindGenerateImage {
			tasks = append(tasks, intent)
		}
	}

	if len(tasks) > 0 {
		return d.runConcurrently(ctx, tasks), false
	}
	return d.resolveFallback(ctx, intents)
}

// runConcurrently invokes every handler as its own goroutine and collects
// results by submission index. A failing handler fills only its own slot;
// siblings are unaffected, so the group never cancels on error.
func (d *Dispatcher) runConcurrently(ctx context.Context, tasks []types.Intent) []types.TaskResult {
	results := make([]types.TaskResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)

	for i, intent := range tasks {
		g.Go(func() error {
			output, err := d.handle(gctx, intent)
			results[i] = types.TaskResult{Intent: intent, Output: output, Err: err}
			if err != nil {
				d.logger.Warn("intent handler failed",
					zap.Stringer("kind", intent.Kind), zap.Error(err))
			}
			return nil
		})
	}

	g.Wait() // handlers never return errors through the group
	return results
}

// handle selects and invokes the handler for one intent.
func (d *Dispatcher) handle(ctx context.Context, intent types.Intent) (string, error) {
	switch intent.Kind {
	case types.KindOpen, types.KindClose, types.KindPlay, types.KindSystemControl,
		types.KindGoogleSearch, types.KindYoutubeSearch:
		return d.actions.Perform(ctx, intent.Kind, intent.Argument)
	case types.KindContent:
		return d.content.Write(ctx, intent.Argument)
	case types.KindGenerateImage:
		return d.image.Generate(ctx, intent.Argument)
	case types.KindSetReminder:
		return d.notifications.CreateReminder(intent.Raw)
	case types.KindSetTimer:
		return d.notifications.CreateTimer(intent.Raw)
	case types.KindListReminders:
		return d.notifications.ListReminders(), nil
	case types.KindListTimers:
		return d.notifications.ListTimers(), nil
	case types.KindCancelReminder:
		return d.notifications.CancelReminder(parseCancelID(intent.Argument))
	case types.KindCancelTimer:
		return d.notifications.CancelTimer(parseCancelID(intent.Argument))
	}
	return "", nil
}

// resolveFallback handles the General/Realtime/Exit group when no automation
// intent claimed the utterance.
func (d *Dispatcher) resolveFallback(ctx context.Context, intents []types.Intent) ([]types.TaskResult, bool) {
	var general, realtime []types.Intent
	exit := false
	for _, intent := range intents {
		switch intent.Kind {
		case types.KindGeneral:
			general = append(general, intent)
		case types.KindRealtime:
			realtime = append(realtime, intent)
		case types.KindExit:
			exit = true
		}
	}

	// Both groups present: merge into one realtime query so the answer can
	// draw on live information for the whole utterance.
	if len(general) > 0 && len(realtime) > 0 {
		var parts []string
		for _, intent := range append(general, realtime...) {
			parts = append(parts, intent.Argument)
		}
		merged := strings.Join(parts, " ")
		output, err := d.searcher.Search(ctx, merged)
		return []types.TaskResult{{Intent: realtime[0], Output: output, Err: err}}, false
	}

	if len(realtime) > 0 {
		output, err := d.searcher.Search(ctx, realtime[0].Argument)
		return []types.TaskResult{{Intent: realtime[0], Output: output, Err: err}}, false
	}

	if len(general) > 0 {
		output, err := d.responder.Respond(ctx, general[0].Argument)
		return []types.TaskResult{{Intent: general[0], Output: output, Err: err}}, false
	}

	if exit {
		output, err := d.responder.Respond(ctx, "Okay, bye! The user is leaving.")
		if err != nil {
			output = "Okay, bye!"
		}
		return []types.TaskResult{{Intent: types.Intent{Kind: types.KindExit}, Output: output}}, true
	}

	return nil, false
}

// parseCancelID extracts a numeric id from cancel-intent text. Zero means
// "cancel everything".
func parseCancelID(text string) int64 {
	for _, field := range strings.Fields(text) {
		if id, err := strconv.ParseInt(strings.Trim(field, ".#"), 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return 0
}
