// Package automation performs the named automation actions behind the
// dispatcher: opening applications or sites, closing them, playing media,
// browser searches, and system control. The OS-level launching itself is an
// opaque capability behind the Launcher interface; this package owns the
// routing and the URL fallback logic.
package automation

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"aria/internal/types"
)

// Launcher is the opaque "perform named action" capability. Implementations
// open URLs in the default browser and run named system actions.
type Launcher interface {
	OpenURL(ctx context.Context, target string) error
	RunNamed(ctx context.Context, action string) error
}

// knownSites maps popular service names to their URLs so "open spotify"
// works instantly without a lookup.
var knownSites = map[string]string{
	"chat gpt":      "https://chat.openai.com",
	"claude":        "https://claude.ai",
	"gemini":        "https://gemini.google.com",
	"github":        "https://github.com",
	"stackoverflow": "https://stackoverflow.com",
	"reddit":        "https://reddit.com",
	"discord":       "https://discord.com",
	"slack":         "https://slack.com",
	"notion":        "https://notion.so",
	"figma":         "https://figma.com",
	"facebook":      "https://www.facebook.com",
	"instagram":     "https://www.instagram.com",
	"linkedin":      "https://www.linkedin.com",
	"twitter":       "https://www.twitter.com",
	"youtube":       "https://www.youtube.com",
	"gmail":         "https://www.gmail.com",
	"drive":         "https://drive.google.com",
	"docs":          "https://docs.google.com",
	"whatsapp":      "https://web.whatsapp.com",
	"telegram":      "https://web.telegram.org",
	"zoom":          "https://zoom.us",
	"teams":         "https://teams.microsoft.com",
	"spotify":       "https://open.spotify.com",
	"netflix":       "https://netflix.com",
}

// systemActions is the closed set of supported system-control commands.
var systemActions = map[string]bool{
	"mute":        true,
	"unmute":      true,
	"volume up":   true,
	"volume down": true,
}

// Runner implements the dispatcher's ActionRunner over a Launcher.
type Runner struct {
	launcher Launcher
	logger   *zap.Logger
}

// NewRunner builds a runner; a nil launcher gets the OS default.
func NewRunner(launcher Launcher, logger *zap.Logger) *Runner {
	if launcher == nil {
		launcher = &osLauncher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{launcher: launcher, logger: logger}
}

// Perform routes one automation intent. Failures come back as errors the
// dispatcher turns into a user-visible, non-fatal result.
func (r *Runner) Perform(ctx context.Context, kind types.IntentKind, argument string) (string, error) {
	argument = strings.TrimSpace(argument)

	switch kind {
	case types.KindOpen:
		return r.open(ctx, argument)
	case types.KindClose:
		return r.close(ctx, argument)
	case types.KindPlay:
		target := "https://www.youtube.com/results?search_query=" + url.QueryEscape(argument)
		if err := r.launcher.OpenURL(ctx, target); err != nil {
			return "", fmt.Errorf("playing %q: %w", argument, err)
		}
		return fmt.Sprintf("Playing %s on YouTube.", argument), nil
	case types.KindGoogleSearch:
		target := "https://www.google.com/search?q=" + url.QueryEscape(argument)
		if err := r.launcher.OpenURL(ctx, target); err != nil {
			return "", fmt.Errorf("searching google for %q: %w", argument, err)
		}
		return fmt.Sprintf("Searched Google for %s.", argument), nil
	case types.KindYoutubeSearch:
		target := "https://www.youtube.com/results?search_query=" + url.QueryEscape(argument)
		if err := r.launcher.OpenURL(ctx, target); err != nil {
			return "", fmt.Errorf("searching youtube for %q: %w", argument, err)
		}
		return fmt.Sprintf("Searched YouTube for %s.", argument), nil
	case types.KindSystemControl:
		return r.system(ctx, argument)
	}
	return "", fmt.Errorf("unsupported automation kind %q", kind)
}

// open resolves an app or site name to a URL: known services first, then the
// www.<name>.com convention, then a search as the last resort.
func (r *Runner) open(ctx context.Context, name string) (string, error) {
	lower := strings.ToLower(name)

	if target, ok := knownSites[lower]; ok {
		if err := r.launcher.OpenURL(ctx, target); err != nil {
			return "", fmt.Errorf("opening %s: %w", name, err)
		}
		return fmt.Sprintf("Opened %s.", name), nil
	}

	guess := "https://www." + strings.ReplaceAll(lower, " ", "") + ".com"
	if err := r.launcher.OpenURL(ctx, guess); err == nil {
		return fmt.Sprintf("Opened %s.", name), nil
	}

	search := "https://www.google.com/search?q=" + url.QueryEscape(name)
	if err := r.launcher.OpenURL(ctx, search); err != nil {
		return "", fmt.Errorf("opening %s: %w", name, err)
	}
	return fmt.Sprintf("Opened a search for %s.", name), nil
}

func (r *Runner) close(ctx context.Context, name string) (string, error) {
	if err := r.launcher.RunNamed(ctx, "close "+strings.ToLower(name)); err != nil {
		return "", fmt.Errorf("unable to close %s, it may not be running: %w", name, err)
	}
	return fmt.Sprintf("Closed %s.", name), nil
}

func (r *Runner) system(ctx context.Context, command string) (string, error) {
	command = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(command, ".")))
	if !systemActions[command] {
		return "", fmt.Errorf("unknown system command %q", command)
	}
	if err := r.launcher.RunNamed(ctx, command); err != nil {
		return "", fmt.Errorf("system command %q: %w", command, err)
	}
	return "Done!", nil
}

// ResolveURL reports the URL open would use for a name, for logging and
// tests.
func ResolveURL(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if target, ok := knownSites[lower]; ok {
		return target
	}
	return "https://www." + strings.ReplaceAll(lower, " ", "") + ".com"
}

// osLauncher opens URLs with the platform browser command and delegates
// named actions to small helper commands where they exist.
type osLauncher struct{}

func (osLauncher) OpenURL(ctx context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	}
	return cmd.Start()
}

func (osLauncher) RunNamed(ctx context.Context, action string) error {
	switch action {
	case "mute", "unmute":
		return exec.CommandContext(ctx, "pactl", "set-sink-mute", "@DEFAULT_SINK@", "toggle").Run()
	case "volume up":
		return exec.CommandContext(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", "+5%").Run()
	case "volume down":
		return exec.CommandContext(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", "-5%").Run()
	}
	return fmt.Errorf("no handler for action %q", action)
}
