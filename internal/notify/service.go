package notify

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"aria/internal/timeparse"
)

var (
	// ErrTimeNotSpecified means the reminder text carried no time keyword or
	// pattern at all.
	ErrTimeNotSpecified = errors.New("no time specified for reminder")
	// ErrTimeUnparseable means a time expression was found but could not be
	// resolved to an instant.
	ErrTimeUnparseable = errors.New("could not understand the time format")
	// ErrDurationUnparseable means the timer text carried no usable duration.
	ErrDurationUnparseable = errors.New("could not understand the timer duration")
	// ErrNotFound means a cancel referenced an id that is not pending.
	ErrNotFound = errors.New("not found")
)

// Reminder free text comes in two shapes. The explicit model shape is
// "reminder <time> <message>"; the conversational shape keeps the message
// before a time keyword, e.g. "remind me to call mom at 5:30pm".
var (
	reminderTimeExprs = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}:?\d{0,2}\s*(?:am|pm)`),
		regexp.MustCompile(`\d{1,2}:?\d{0,2}`),
	}
	timeKeywordExpr = regexp.MustCompile(`\b(at|on|by)\b`)
	timerPrefixes   = []string{"set a timer for", "set timer for", "timer for", "set timer", "set a timer"}
)

// Service exposes the public notification operations: create, list, cancel,
// and crash recovery. It owns the store and spawns one worker goroutine per
// scheduled item.
type Service struct {
	store    *Store
	sink     Sink
	logger   *zap.Logger
	username string
	now      func() time.Time

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewService wires a service around the given store and notification sink.
func NewService(store *Store, sink Sink, username string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if username == "" {
		username = "User"
	}
	return &Service{
		store:    store,
		sink:     sink,
		logger:   logger,
		username: username,
		now:      time.Now,
		quit:     make(chan struct{}),
	}
}

// Recover reloads both durable records, drops anything already due, and
// re-arms a worker for every survivor. Called once at startup.
func (s *Service) Recover() error {
	reminders, timers, err := s.store.Load()
	for _, r := range reminders {
		s.armReminder(r)
	}
	for _, t := range timers {
		s.armTimer(t)
	}
	if len(reminders) > 0 || len(timers) > 0 {
		s.logger.Info("recovered scheduled notifications",
			zap.Int("reminders", len(reminders)), zap.Int("timers", len(timers)))
	}
	return err
}

// Close stops all pending workers without firing them and waits for the
// goroutines to exit. The durable records keep the items for the next run.
func (s *Service) Close() {
	close(s.quit)
	s.wg.Wait()
}

// CreateReminder extracts a time expression and message from free text,
// stores the reminder durably, arms a worker, and returns a confirmation.
func (s *Service) CreateReminder(text string) (string, error) {
	timeText, message, err := splitReminderText(text)
	if err != nil {
		return "", err
	}

	triggerAt, err := timeparse.ParseClockTime(timeText, s.now())
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTimeUnparseable, timeText)
	}

	r := s.store.AddReminder(message, triggerAt, text)
	s.armReminder(r)

	s.logger.Info("reminder scheduled",
		zap.Int64("id", r.ID), zap.Time("trigger_at", r.TriggerAt))
	return fmt.Sprintf("Reminder set! I'll remind you '%s' at %s.",
		message, r.TriggerAt.Format("03:04 PM on January 2")), nil
}

// CreateTimer strips the known timer prefixes, parses the duration, stores
// the timer durably, arms a worker, and returns a confirmation.
func (s *Service) CreateTimer(text string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	for _, prefix := range timerPrefixes {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
	}

	duration, err := timeparse.ParseDuration(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrDurationUnparseable, text)
	}

	t := s.store.AddTimer(duration, s.now())
	s.armTimer(t)

	s.logger.Info("timer scheduled",
		zap.Int64("id", t.ID), zap.Duration("duration", t.Duration))
	return fmt.Sprintf("Timer set for %s. I'll notify you when it's done!",
		timeparse.FormatDuration(duration)), nil
}

// ListReminders renders every pending reminder, or an explicit "none active"
// message for an empty store.
func (s *Service) ListReminders() string {
	reminders := s.store.Reminders()
	if len(reminders) == 0 {
		return "You have no active reminders."
	}

	var b strings.Builder
	b.WriteString("Your active reminders:\n")
	for _, r := range reminders {
		fmt.Fprintf(&b, "  %d. %s at %s\n", r.ID, r.Message, r.TriggerAt.Format("03:04 PM on January 2"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// ListTimers renders every pending timer with its remaining time, or an
// explicit "none active" message for an empty store.
func (s *Service) ListTimers() string {
	timers := s.store.Timers()
	if len(timers) == 0 {
		return "You have no active timers."
	}

	now := s.now()
	var b strings.Builder
	b.WriteString("Your active timers:\n")
	for _, t := range timers {
		fmt.Fprintf(&b, "  %d. timer ending in %s\n", t.ID, timeparse.FormatDuration(t.Remaining(now)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// CancelReminder removes the reminder with the given id, or every reminder
// when id is zero. The armed worker observes the removal on wake and exits
// without firing.
func (s *Service) CancelReminder(id int64) (string, error) {
	if id > 0 {
		if !s.store.RemoveReminder(id) {
			return "", fmt.Errorf("reminder %d %w", id, ErrNotFound)
		}
		return fmt.Sprintf("Reminder %d cancelled.", id), nil
	}
	count := s.store.ClearReminders()
	return fmt.Sprintf("All %d reminders cancelled.", count), nil
}

// CancelTimer removes the timer with the given id, or every timer when id
// is zero.
func (s *Service) CancelTimer(id int64) (string, error) {
	if id > 0 {
		if !s.store.RemoveTimer(id) {
			return "", fmt.Errorf("timer %d %w", id, ErrNotFound)
		}
		return fmt.Sprintf("Timer %d cancelled.", id), nil
	}
	count := s.store.ClearTimers()
	return fmt.Sprintf("All %d timers cancelled.", count), nil
}

// splitReminderText separates the time expression from the message.
func splitReminderText(text string) (timeText, message string, err error) {
	cleaned := strings.ToLower(strings.TrimSpace(text))

	if remainder, ok := strings.CutPrefix(cleaned, "reminder "); ok {
		remainder = strings.TrimSpace(remainder)
		for _, expr := range reminderTimeExprs {
			if loc := expr.FindStringIndex(remainder); loc != nil {
				timeText = remainder[loc[0]:loc[1]]
				message = strings.TrimSpace(remainder[:loc[0]] + remainder[loc[1]:])
				return timeText, message, nil
			}
		}
		// No time pattern: treat the first word as the time expression.
		parts := strings.SplitN(remainder, " ", 2)
		if len(parts) == 2 {
			return parts[0], strings.TrimSpace(parts[1]), nil
		}
		return "", "", ErrTimeNotSpecified
	}

	// Conversational shape: message precedes a time keyword.
	loc := timeKeywordExpr.FindStringIndex(cleaned)
	if loc == nil {
		return "", "", ErrTimeNotSpecified
	}
	timeText = strings.TrimSpace(cleaned[loc[1]:])
	message = strings.TrimSpace(cleaned[:loc[0]])
	message = strings.TrimSpace(strings.TrimPrefix(message, "remind me"))
	message = strings.TrimSpace(strings.TrimPrefix(message, "to "))
	message = strings.TrimSpace(strings.TrimPrefix(message, "that "))
	if timeText == "" {
		return "", "", ErrTimeNotSpecified
	}
	return timeText, message, nil
}
