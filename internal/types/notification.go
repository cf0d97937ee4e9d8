package types

import "time"

// Reminder is a one-time notification bound to an absolute trigger instant.
// TriggerAt is strictly in the future at creation and after every reload.
type Reminder struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	TriggerAt time.Time `json:"trigger_at"`
	Origin    string    `json:"origin,omitempty"`
}

// Timer is a one-time notification bound to an elapsed duration from
// creation. EndAt is always StartAt plus Duration.
type Timer struct {
	ID       int64         `json:"id"`
	Duration time.Duration `json:"duration"`
	StartAt  time.Time     `json:"start_at"`
	EndAt    time.Time     `json:"end_at"`
}

// Remaining reports how much of the timer is left at the given instant.
// Never negative.
func (t Timer) Remaining(now time.Time) time.Duration {
	if rem := t.EndAt.Sub(now); rem > 0 {
		return rem
	}
	return 0
}
