// Package types holds the shared data model for the assistant core:
// classified intents, scheduled notifications, and dispatch results.
package types

import "strings"

// IntentKind is the closed set of actions the decision model can emit.
type IntentKind int

const (
	KindUnknown IntentKind = iota
	KindGeneral
	KindRealtime
	KindOpen
	KindClose
	KindPlay
	KindContent
	KindSystemControl
	KindGoogleSearch
	KindYoutubeSearch
	KindGenerateImage
	KindSetReminder
	KindSetTimer
	KindListReminders
	KindListTimers
	KindCancelReminder
	KindCancelTimer
	KindExit
)

var kindNames = map[IntentKind]string{
	KindUnknown:        "unknown",
	KindGeneral:        "general",
	KindRealtime:       "realtime",
	KindOpen:           "open",
	KindClose:          "close",
	KindPlay:           "play",
	KindContent:        "content",
	KindSystemControl:  "system",
	KindGoogleSearch:   "google search",
	KindYoutubeSearch:  "youtube search",
	KindGenerateImage:  "generate image",
	KindSetReminder:    "reminder",
	KindSetTimer:       "set timer",
	KindListReminders:  "list reminders",
	KindListTimers:     "list timers",
	KindCancelReminder: "cancel reminder",
	KindCancelTimer:    "cancel timer",
	KindExit:           "exit",
}

func (k IntentKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// prefixEntry binds one raw-output prefix to its kind. Several prefixes can
// map to the same kind ("reminder" and "remind me", "set timer" and
// "timer for"). Order matters: longer prefixes are listed first so that
// "list reminders" is never consumed by the bare "reminder" prefix.
type prefixEntry struct {
	prefix string
	kind   IntentKind
}

// vocabulary is the contract with the upstream decision model. Every segment
// of the model's raw output must start with one of these prefixes to be
// accepted.
var vocabulary = []prefixEntry{
	{"cancel reminder", KindCancelReminder},
	{"cancel timer", KindCancelTimer},
	{"list reminders", KindListReminders},
	{"list timers", KindListTimers},
	{"generate image", KindGenerateImage},
	{"google search", KindGoogleSearch},
	{"youtube search", KindYoutubeSearch},
	{"set timer", KindSetTimer},
	{"timer for", KindSetTimer},
	{"remind me", KindSetReminder},
	{"reminder", KindSetReminder},
	{"realtime", KindRealtime},
	{"general", KindGeneral},
	{"content", KindContent},
	{"system", KindSystemControl},
	{"close", KindClose},
	{"open", KindOpen},
	{"play", KindPlay},
	{"exit", KindExit},
}

// Intent is one classified, actionable unit extracted from an utterance.
// Raw keeps the full matched segment; notification handlers re-parse it
// because the time/message split needs the complete phrasing. Immutable
// once created.
type Intent struct {
	Kind     IntentKind
	Argument string
	Raw      string
}

// NewGeneralIntent wraps an utterance in the fail-open fallback intent.
func NewGeneralIntent(utterance string) Intent {
	utterance = strings.TrimSpace(utterance)
	return Intent{Kind: KindGeneral, Argument: utterance, Raw: utterance}
}

// ParseIntent matches one trimmed segment of model output against the
// vocabulary by case-insensitive prefix. The argument is whatever follows
// the matched prefix. Returns false for segments outside the vocabulary.
func ParseIntent(segment string) (Intent, bool) {
	seg := strings.TrimSpace(segment)
	lower := strings.ToLower(seg)
	for _, entry := range vocabulary {
		if strings.HasPrefix(lower, entry.prefix) {
			arg := strings.TrimSpace(seg[len(entry.prefix):])
			arg = strings.TrimSuffix(arg, ".")
			return Intent{Kind: entry.kind, Argument: arg, Raw: strings.TrimSuffix(seg, ".")}, true
		}
	}
	return Intent{}, false
}

// IsAutomation reports whether the intent is an automation-style task
// (including notification operations). Automation intents take precedence
// over General/Realtime resolution within one utterance.
func (i Intent) IsAutomation() bool {
	switch i.Kind {
	case KindOpen, KindClose, KindPlay, KindContent, KindSystemControl,
		KindGoogleSearch, KindYoutubeSearch,
		KindSetReminder, KindSetTimer, KindListReminders, KindListTimers,
		KindCancelReminder, KindCancelTimer:
		return true
	}
	return false
}

// IsNotification reports whether the intent targets the reminder/timer
// subsystem.
func (i Intent) IsNotification() bool {
	switch i.Kind {
	case KindSetReminder, KindSetTimer, KindListReminders, KindListTimers,
		KindCancelReminder, KindCancelTimer:
		return true
	}
	return false
}
