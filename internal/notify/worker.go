package notify

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"aria/internal/types"
)

// armReminder spawns the worker goroutine for one scheduled reminder.
func (s *Service) armReminder(r types.Reminder) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.recoverPanic("reminder", r.ID)

		if !s.waitUntil(r.TriggerAt) {
			return // service shutting down; the durable record survives
		}

		// Atomic check-and-remove: if a cancel got here first, the id is
		// gone and this worker must not fire.
		if !s.store.RemoveReminder(r.ID) {
			return
		}

		message := fmt.Sprintf("%s, it's %s. %s",
			s.username, r.TriggerAt.Format("03:04 PM"), r.Message)
		if err := s.sink.Notify(message); err != nil {
			s.logger.Warn("reminder notification failed",
				zap.Int64("id", r.ID), zap.Error(err))
			return
		}
		s.logger.Info("reminder fired", zap.Int64("id", r.ID))
	}()
}

// armTimer spawns the worker goroutine for one scheduled timer.
func (s *Service) armTimer(t types.Timer) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.recoverPanic("timer", t.ID)

		if !s.waitUntil(t.EndAt) {
			return
		}

		if !s.store.RemoveTimer(t.ID) {
			return
		}

		message := fmt.Sprintf("%s, your timer is up!", s.username)
		if err := s.sink.Notify(message); err != nil {
			s.logger.Warn("timer notification failed",
				zap.Int64("id", t.ID), zap.Error(err))
			return
		}
		s.logger.Info("timer fired", zap.Int64("id", t.ID))
	}()
}

// waitUntil suspends until the deadline or service shutdown. An already-past
// deadline is treated as due now. Returns false on shutdown.
func (s *Service) waitUntil(deadline time.Time) bool {
	remaining := deadline.Sub(s.now())
	if remaining <= 0 {
		return true
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-s.quit:
		return false
	}
}

// recoverPanic keeps a misbehaving worker from crashing the host process.
func (s *Service) recoverPanic(kind string, id int64) {
	if r := recover(); r != nil {
		s.logger.Error("notification worker panicked",
			zap.String("kind", kind), zap.Int64("id", id), zap.Any("panic", r))
	}
}
