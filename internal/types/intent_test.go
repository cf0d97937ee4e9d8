package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	cases := []struct {
		segment string
		kind    IntentKind
		arg     string
	}{
		{"open facebook", KindOpen, "facebook"},
		{"Open Telegram", KindOpen, "Telegram"},
		{"close whatsapp.", KindClose, "whatsapp"},
		{"play let her go", KindPlay, "let her go"},
		{"general how are you?", KindGeneral, "how are you?"},
		{"realtime who is the president", KindRealtime, "who is the president"},
		{"google search golang generics", KindGoogleSearch, "golang generics"},
		{"youtube search lo-fi beats", KindYoutubeSearch, "lo-fi beats"},
		{"generate image sunset over mountains", KindGenerateImage, "sunset over mountains"},
		{"reminder 9:00pm call mom", KindSetReminder, "9:00pm call mom"},
		{"remind me at 5pm to stretch", KindSetReminder, "at 5pm to stretch"},
		{"set timer 5 minutes", KindSetTimer, "5 minutes"},
		{"timer for 30 seconds", KindSetTimer, "30 seconds"},
		{"list reminders", KindListReminders, ""},
		{"list timers", KindListTimers, ""},
		{"cancel reminder 2", KindCancelReminder, "2"},
		{"cancel timer", KindCancelTimer, ""},
		{"system mute", KindSystemControl, "mute"},
		{"content an email about the outage", KindContent, "an email about the outage"},
		{"exit", KindExit, ""},
	}

	for _, tc := range cases {
		intent, ok := ParseIntent(tc.segment)
		if !ok {
			t.Fatalf("ParseIntent(%q) did not match", tc.segment)
		}
		assert.Equal(t, tc.kind, intent.Kind, "segment %q", tc.segment)
		assert.Equal(t, tc.arg, intent.Argument, "segment %q", tc.segment)
	}
}

func TestParseIntentLongestPrefixWins(t *testing.T) {
	// "list reminders" must not be swallowed by the bare "reminder" prefix,
	// and "cancel timer" must not match "set timer" territory.
	intent, ok := ParseIntent("list reminders")
	if !ok || intent.Kind != KindListReminders {
		t.Fatalf("got %v ok=%v, want list reminders", intent.Kind, ok)
	}
	intent, ok = ParseIntent("cancel reminder 3")
	if !ok || intent.Kind != KindCancelReminder {
		t.Fatalf("got %v ok=%v, want cancel reminder", intent.Kind, ok)
	}
}

func TestParseIntentRejectsUnknown(t *testing.T) {
	for _, seg := range []string{"", "   ", "dance for me", "remindme typo"} {
		_, ok := ParseIntent(seg)
		assert.False(t, ok, "segment %q", seg)
	}
}

func TestIntentGroups(t *testing.T) {
	assert.True(t, Intent{Kind: KindOpen}.IsAutomation())
	assert.True(t, Intent{Kind: KindSetTimer}.IsAutomation())
	assert.True(t, Intent{Kind: KindSetTimer}.IsNotification())
	assert.False(t, Intent{Kind: KindOpen}.IsNotification())
	assert.False(t, Intent{Kind: KindGeneral}.IsAutomation())
	assert.False(t, Intent{Kind: KindExit}.IsAutomation())
}
