package perception

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"aria/internal/types"
)

// fakeClient returns canned output or an error.
type fakeClient struct {
	output string
	err    error
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	return f.output, f.err
}

func (f *fakeClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f.output, f.err
}

func TestClassifyMultiIntent(t *testing.T) {
	c := NewClassifier(&fakeClient{output: "open facebook, open telegram, close whatsapp"}, nil)

	got := c.Classify(context.Background(), "open facebook and telegram, close whatsapp")
	want := []types.Intent{
		{Kind: types.KindOpen, Argument: "facebook", Raw: "open facebook"},
		{Kind: types.KindOpen, Argument: "telegram", Raw: "open telegram"},
		{Kind: types.KindClose, Argument: "whatsapp", Raw: "close whatsapp"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyDropsUnknownSegments(t *testing.T) {
	c := NewClassifier(&fakeClient{output: "open spotify, do a backflip, play let her go"}, nil)

	got := c.Classify(context.Background(), "whatever")
	want := []types.Intent{
		{Kind: types.KindOpen, Argument: "spotify", Raw: "open spotify"},
		{Kind: types.KindPlay, Argument: "let her go", Raw: "play let her go"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyFailOpenOnNoMatch(t *testing.T) {
	c := NewClassifier(&fakeClient{output: "complete gibberish with no prefix"}, nil)

	got := c.Classify(context.Background(), "tell me a story")
	assert.Equal(t, []types.Intent{{Kind: types.KindGeneral, Argument: "tell me a story", Raw: "tell me a story"}}, got)
}

func TestClassifyFailOpenOnModelError(t *testing.T) {
	c := NewClassifier(&fakeClient{err: errors.New("rate limited")}, nil)

	got := c.Classify(context.Background(), "open the pod bay doors")
	assert.Len(t, got, 1)
	assert.Equal(t, types.KindGeneral, got[0].Kind)
	assert.Equal(t, "open the pod bay doors", got[0].Argument)
}

func TestPostProcess(t *testing.T) {
	got := PostProcess("general what is today's date, reminder 5:30pm call mom")
	want := []types.Intent{
		{Kind: types.KindGeneral, Argument: "what is today's date", Raw: "general what is today's date"},
		{Kind: types.KindSetReminder, Argument: "5:30pm call mom", Raw: "reminder 5:30pm call mom"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PostProcess mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, PostProcess(""))
	assert.Nil(t, PostProcess("   \n  "))
}
