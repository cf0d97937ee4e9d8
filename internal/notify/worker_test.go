package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWorkerFiresDueReminder(t *testing.T) {
	svc, sink := newTestService(t)

	r := svc.store.AddReminder("drink water", time.Now().Add(50*time.Millisecond), "")
	svc.armReminder(r)

	select {
	case msg := <-sink.fired:
		assert.Contains(t, msg, "drink water")
		assert.Contains(t, msg, "Tester")
	case <-time.After(2 * time.Second):
		t.Fatal("reminder did not fire")
	}

	// Firing retires the item from the store.
	assert.Empty(t, svc.store.Reminders())
}

func TestWorkerFiresPastDueImmediately(t *testing.T) {
	svc, sink := newTestService(t)

	// Already past: treated as due now, not dropped.
	r := svc.store.AddReminder("late", time.Now().Add(-time.Second), "")
	svc.armReminder(r)

	select {
	case msg := <-sink.fired:
		assert.Contains(t, msg, "late")
	case <-time.After(2 * time.Second):
		t.Fatal("past-due reminder did not fire")
	}
}

func TestCancelBeforeFireNeverNotifies(t *testing.T) {
	svc, sink := newTestService(t)

	r := svc.store.AddReminder("never", time.Now().Add(100*time.Millisecond), "")
	svc.armReminder(r)

	msg, err := svc.CancelReminder(r.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "cancelled")

	select {
	case fired := <-sink.fired:
		t.Fatalf("cancelled reminder fired: %q", fired)
	case <-time.After(400 * time.Millisecond):
	}
	assert.Empty(t, sink.all())
}

func TestWorkerFiresTimer(t *testing.T) {
	svc, sink := newTestService(t)

	timer := svc.store.AddTimer(50*time.Millisecond, time.Now())
	svc.armTimer(timer)

	select {
	case msg := <-sink.fired:
		assert.Contains(t, msg, "timer is up")
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Empty(t, svc.store.Timers())
}

func TestSinkFailureIsNotFatal(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())
	svc := NewService(store, SinkFunc(func(string) error {
		return errors.New("speaker unplugged")
	}), "Tester", zap.NewNop())
	defer svc.Close()

	r := store.AddReminder("quiet", time.Now().Add(20*time.Millisecond), "")
	svc.armReminder(r)

	// The worker retires the item and exits cleanly despite the sink error.
	require.Eventually(t, func() bool {
		return len(store.Reminders()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCloseStopsWorkersWithoutFiring(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())
	sink := newRecordingSink()
	svc := NewService(store, sink, "Tester", zap.NewNop())

	r := store.AddReminder("far future", time.Now().Add(time.Hour), "")
	svc.armReminder(r)
	svc.Close()

	assert.Empty(t, sink.all())
	// The durable record still holds the item for the next run.
	assert.Len(t, store.Reminders(), 1)
}

func TestRecoverReArmsSurvivors(t *testing.T) {
	dir := t.TempDir()
	seed := NewStore(dir, zap.NewNop())
	seed.AddReminder("soon", time.Now().Add(80*time.Millisecond), "")
	seed.AddReminder("stale", time.Now().Add(-time.Minute), "")

	sink := newRecordingSink()
	svc := NewService(NewStore(dir, zap.NewNop()), sink, "Tester", zap.NewNop())
	defer svc.Close()
	require.NoError(t, svc.Recover())

	// Only the future reminder was re-armed; the stale one was dropped.
	require.Len(t, svc.store.Reminders(), 1)

	select {
	case msg := <-sink.fired:
		assert.Contains(t, msg, "soon")
	case <-time.After(2 * time.Second):
		t.Fatal("recovered reminder did not fire")
	}
	assert.Len(t, sink.all(), 1)
}
