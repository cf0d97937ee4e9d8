// Package notify implements the persistent scheduled-notification subsystem:
// reminders and timers, their durable JSON records, crash recovery, and the
// background workers that fire them.
package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"aria/internal/types"
)

const (
	remindersFile = "reminders.json"
	timersFile    = "timers.json"
)

// reminderRecord is the durable form of a reminder. Times are RFC3339 so the
// records sort and reload unambiguously.
type reminderRecord struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	TriggerAt string `json:"trigger_at"`
	Origin    string `json:"origin,omitempty"`
}

// timerRecord is the durable form of a timer.
type timerRecord struct {
	ID              int64  `json:"id"`
	DurationSeconds int64  `json:"duration_seconds"`
	StartAt         string `json:"start_at"`
	EndAt           string `json:"end_at"`
}

// Store is the durable repository of pending reminders and timers. One mutex
// covers each collection together with its durable record, so a cancel and a
// concurrent fire can never interleave between the membership check and the
// rewrite. Persistence failures are logged and the in-memory state stays
// authoritative; the next successful mutation rewrites the full record.
type Store struct {
	mu        sync.Mutex
	dir       string
	logger    *zap.Logger
	now       func() time.Time
	reminders []types.Reminder
	timers    []types.Timer
	nextRemID int64
	nextTimID int64
}

// NewStore creates a store rooted at dir. The directory is created on first
// persist if missing.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:       dir,
		logger:    logger,
		now:       time.Now,
		nextRemID: 1,
		nextTimID: 1,
	}
}

// Load reads both durable records, drops every item whose due time is not
// strictly after now, immediately rewrites the filtered records, and returns
// the survivors so the service can re-arm a worker for each.
func (s *Store) Load() ([]types.Reminder, []types.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var firstErr error

	// An unreadable record is left untouched on disk: rewriting here would
	// replace the last good data with an empty list.
	reminders, err := s.loadReminders(now)
	if err != nil {
		firstErr = err
		s.logger.Warn("loading reminders failed", zap.Error(err))
	} else {
		s.reminders = reminders
		for _, r := range reminders {
			if r.ID >= s.nextRemID {
				s.nextRemID = r.ID + 1
			}
		}
		s.persistRemindersLocked()
	}

	timers, err := s.loadTimers(now)
	if err != nil {
		if firstErr == nil {
			firstErr = err
		}
		s.logger.Warn("loading timers failed", zap.Error(err))
	} else {
		s.timers = timers
		for _, t := range timers {
			if t.ID >= s.nextTimID {
				s.nextTimID = t.ID + 1
			}
		}
		s.persistTimersLocked()
	}

	return append([]types.Reminder(nil), s.reminders...), append([]types.Timer(nil), s.timers...), firstErr
}

func (s *Store) loadReminders(now time.Time) ([]types.Reminder, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, remindersFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading reminders record: %w", err)
	}

	var records []reminderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing reminders record: %w", err)
	}

	var out []types.Reminder
	for _, rec := range records {
		at, err := time.Parse(time.RFC3339, rec.TriggerAt)
		if err != nil {
			s.logger.Warn("dropping reminder with bad timestamp",
				zap.Int64("id", rec.ID), zap.String("trigger_at", rec.TriggerAt))
			continue
		}
		if !at.After(now) {
			continue // elapsed while the process was down
		}
		out = append(out, types.Reminder{
			ID:        rec.ID,
			Message:   rec.Message,
			TriggerAt: at,
			Origin:    rec.Origin,
		})
	}
	return out, nil
}

func (s *Store) loadTimers(now time.Time) ([]types.Timer, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, timersFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading timers record: %w", err)
	}

	var records []timerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing timers record: %w", err)
	}

	var out []types.Timer
	for _, rec := range records {
		start, err1 := time.Parse(time.RFC3339, rec.StartAt)
		end, err2 := time.Parse(time.RFC3339, rec.EndAt)
		if err1 != nil || err2 != nil {
			s.logger.Warn("dropping timer with bad timestamp", zap.Int64("id", rec.ID))
			continue
		}
		if !end.After(now) {
			continue
		}
		out = append(out, types.Timer{
			ID:       rec.ID,
			Duration: time.Duration(rec.DurationSeconds) * time.Second,
			StartAt:  start,
			EndAt:    end,
		})
	}
	return out, nil
}

// AddReminder allocates the next id, appends the reminder, and persists.
func (s *Store) AddReminder(message string, triggerAt time.Time, origin string) types.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := types.Reminder{
		ID:        s.nextRemID,
		Message:   message,
		TriggerAt: triggerAt,
		Origin:    origin,
	}
	s.nextRemID++
	s.reminders = append(s.reminders, r)
	s.persistRemindersLocked()
	return r
}

// AddTimer allocates the next id, appends the timer, and persists.
func (s *Store) AddTimer(duration time.Duration, startAt time.Time) types.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := types.Timer{
		ID:       s.nextTimID,
		Duration: duration,
		StartAt:  startAt,
		EndAt:    startAt.Add(duration),
	}
	s.nextTimID++
	s.timers = append(s.timers, t)
	s.persistTimersLocked()
	return t
}

// Reminders returns a snapshot of the pending reminders in id order.
func (s *Store) Reminders() []types.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Reminder(nil), s.reminders...)
}

// Timers returns a snapshot of the pending timers in id order.
func (s *Store) Timers() []types.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Timer(nil), s.timers...)
}

// RemoveReminder atomically checks membership and removes the reminder with
// the given id, persisting the mutated collection. Returns false if the id
// is no longer present. This single operation is the cancellation signal a
// woken worker observes: whichever of cancel or fire removes the id first
// wins, and the loser does nothing.
func (s *Store) RemoveReminder(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reminders {
		if r.ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			s.persistRemindersLocked()
			return true
		}
	}
	return false
}

// RemoveTimer is RemoveReminder for the timer collection.
func (s *Store) RemoveTimer(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.timers {
		if t.ID == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			s.persistTimersLocked()
			return true
		}
	}
	return false
}

// ClearReminders removes every reminder, persists, and reports how many
// were pending.
func (s *Store) ClearReminders() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.reminders)
	s.reminders = nil
	s.persistRemindersLocked()
	return count
}

// ClearTimers removes every timer, persists, and reports how many were
// pending.
func (s *Store) ClearTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.timers)
	s.timers = nil
	s.persistTimersLocked()
	return count
}

func (s *Store) persistRemindersLocked() {
	records := make([]reminderRecord, 0, len(s.reminders))
	for _, r := range s.reminders {
		records = append(records, reminderRecord{
			ID:        r.ID,
			Message:   r.Message,
			TriggerAt: r.TriggerAt.Format(time.RFC3339),
			Origin:    r.Origin,
		})
	}
	if err := s.writeRecord(remindersFile, records); err != nil {
		s.logger.Warn("persisting reminders failed", zap.Error(err))
	}
}

func (s *Store) persistTimersLocked() {
	records := make([]timerRecord, 0, len(s.timers))
	for _, t := range s.timers {
		records = append(records, timerRecord{
			ID:              t.ID,
			DurationSeconds: int64(t.Duration / time.Second),
			StartAt:         t.StartAt.Format(time.RFC3339),
			EndAt:           t.EndAt.Format(time.RFC3339),
		})
	}
	if err := s.writeRecord(timersFile, records); err != nil {
		s.logger.Warn("persisting timers failed", zap.Error(err))
	}
}

func (s *Store) writeRecord(name string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
