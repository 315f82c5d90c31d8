package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/liliang-cn/jogjachat/internal/dialogue"
	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/liliang-cn/jogjachat/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedAssistant struct {
	mu      sync.Mutex
	asks    []string
	forgets int
}

func (a *scriptedAssistant) Ask(ctx context.Context, message, sessionID string) (*domain.AskResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.asks = append(a.asks, message)
	return &domain.AskResponse{Response: "Jawaban untuk **" + message + "**"}, nil
}

func (a *scriptedAssistant) Forget(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.forgets++
	return nil
}

func TestRunChat(t *testing.T) {
	var out bytes.Buffer
	tr := newTranscript(&out, render.New())
	assistant := &scriptedAssistant{}

	ctrl := dialogue.New(assistant, nil, nil, dialogue.Options{
		PlaceholderDelay: time.Millisecond,
		SpeechDelay:      time.Millisecond,
		QuickSendDelay:   time.Millisecond,
		OnChange:         tr.Update,
	})
	tr.Update(ctrl.Snapshot())

	in := strings.NewReader("halo\n/1\n/voice\n/9\n/reset\n/quit\n")
	require.NoError(t, runChat(in, &out, ctrl, tr, true))
	ctrl.Close()

	text := out.String()
	assert.Contains(t, text, "Penjual: "+domain.GreetingText)
	assert.Contains(t, text, "Anda: halo")
	assert.Contains(t, text, "Penjual: Jawaban untuk halo")
	assert.Contains(t, text, "/1 Apa saja oleh-oleh yang ada?")
	assert.Contains(t, text, "Suara dimatikan.")
	assert.Contains(t, text, "Perintah:")
	assert.Contains(t, text, "--- percakapan baru ---")
	assert.Equal(t, 2, strings.Count(text, "Penjual: "+domain.GreetingText))

	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	assert.Equal(t, []string{"halo", "Apa saja oleh-oleh yang ada?"}, assistant.asks)
	assert.Equal(t, 1, assistant.forgets)
}

func TestRunChat_VoiceUnavailable(t *testing.T) {
	var out bytes.Buffer
	tr := newTranscript(&out, render.New())
	ctrl := dialogue.New(&scriptedAssistant{}, nil, nil, dialogue.Options{})
	defer ctrl.Close()

	require.NoError(t, runChat(strings.NewReader("/voice\n"), &out, ctrl, tr, false))

	assert.Contains(t, out.String(), "Suara tidak tersedia")
	assert.NotContains(t, out.String(), "Suara dinyalakan.")
	assert.NotContains(t, out.String(), "Suara dimatikan.")
}

func TestTranscript_ReplacedPlaceholder(t *testing.T) {
	var out bytes.Buffer
	tr := newTranscript(&out, render.New())
	now := time.Now()

	greeting := domain.NewAssistantMessage(domain.GreetingText, now, false)
	user := domain.NewUserMessage("halo", now)
	placeholder := domain.NewPlaceholder(now)
	reply := domain.NewAssistantMessage("Ada **bakpia**", now, false)

	tr.Update(dialogue.Snapshot{State: dialogue.StateIdle, Messages: []domain.Message{greeting}, Suggestions: []string{"a"}})
	tr.Update(dialogue.Snapshot{State: dialogue.StateAwaitingReply, Messages: []domain.Message{greeting, user}})
	tr.Update(dialogue.Snapshot{State: dialogue.StateAwaitingReply, Messages: []domain.Message{greeting, user, placeholder}})
	tr.Update(dialogue.Snapshot{State: dialogue.StateIdle, Messages: []domain.Message{greeting, user, reply}, Suggestions: []string{"b", "c"}})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"Penjual: " + domain.GreetingText,
		"  /1 a",
		"Anda: halo",
		"Penjual: " + render.TerminalTypingIndicator,
		"Penjual: Ada bakpia",
		"  /1 b",
		"  /2 c",
	}, lines)
	assert.Equal(t, []string{"b", "c"}, tr.Suggestions())
}

func TestTranscript_ErrorPrefix(t *testing.T) {
	var out bytes.Buffer
	tr := newTranscript(&out, render.New())

	tr.Update(dialogue.Snapshot{
		State:    dialogue.StateIdle,
		Messages: []domain.Message{domain.NewAssistantMessage(domain.FallbackText, time.Now(), true)},
	})
	assert.Equal(t, "Penjual (!): "+domain.FallbackText+"\n", out.String())
}
