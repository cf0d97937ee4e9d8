package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aria/internal/types"
)

type fakeLauncher struct {
	urls    []string
	named   []string
	urlErr  error
	nameErr error
}

func (f *fakeLauncher) OpenURL(ctx context.Context, target string) error {
	if f.urlErr != nil {
		return f.urlErr
	}
	f.urls = append(f.urls, target)
	return nil
}

func (f *fakeLauncher) RunNamed(ctx context.Context, action string) error {
	if f.nameErr != nil {
		return f.nameErr
	}
	f.named = append(f.named, action)
	return nil
}

func TestOpenKnownService(t *testing.T) {
	launcher := &fakeLauncher{}
	r := NewRunner(launcher, nil)

	out, err := r.Perform(context.Background(), types.KindOpen, "Spotify")
	require.NoError(t, err)
	assert.Contains(t, out, "Spotify")
	require.Len(t, launcher.urls, 1)
	assert.Equal(t, "https://open.spotify.com", launcher.urls[0])
}

func TestOpenUnknownFallsBackToConvention(t *testing.T) {
	launcher := &fakeLauncher{}
	r := NewRunner(launcher, nil)

	_, err := r.Perform(context.Background(), types.KindOpen, "example app")
	require.NoError(t, err)
	require.Len(t, launcher.urls, 1)
	assert.Equal(t, "https://www.exampleapp.com", launcher.urls[0])
}

func TestPlayBuildsYoutubeQuery(t *testing.T) {
	launcher := &fakeLauncher{}
	r := NewRunner(launcher, nil)

	out, err := r.Perform(context.Background(), types.KindPlay, "let her go")
	require.NoError(t, err)
	assert.Contains(t, out, "let her go")
	require.Len(t, launcher.urls, 1)
	assert.Contains(t, launcher.urls[0], "youtube.com/results")
	assert.Contains(t, launcher.urls[0], "let+her+go")
}

func TestGoogleSearchEscapesQuery(t *testing.T) {
	launcher := &fakeLauncher{}
	r := NewRunner(launcher, nil)

	_, err := r.Perform(context.Background(), types.KindGoogleSearch, "go 1.24 release notes")
	require.NoError(t, err)
	require.Len(t, launcher.urls, 1)
	assert.Contains(t, launcher.urls[0], "google.com/search?q=go+1.24+release+notes")
}

func TestSystemControlValidatesCommands(t *testing.T) {
	launcher := &fakeLauncher{}
	r := NewRunner(launcher, nil)

	out, err := r.Perform(context.Background(), types.KindSystemControl, "mute.")
	require.NoError(t, err)
	assert.Equal(t, "Done!", out)
	assert.Equal(t, []string{"mute"}, launcher.named)

	_, err = r.Perform(context.Background(), types.KindSystemControl, "launch the missiles")
	assert.Error(t, err)
}

func TestCloseReportsFailure(t *testing.T) {
	launcher := &fakeLauncher{nameErr: errors.New("not running")}
	r := NewRunner(launcher, nil)

	_, err := r.Perform(context.Background(), types.KindClose, "notepad")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "notepad")
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://github.com", ResolveURL("GitHub"))
	assert.Equal(t, "https://www.somesite.com", ResolveURL("some site"))
}
