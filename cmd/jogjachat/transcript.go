package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/liliang-cn/jogjachat/internal/dialogue"
	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/liliang-cn/jogjachat/internal/render"
)

// transcript prints the lines of controller snapshots it has not printed yet
type transcript struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *render.Renderer
	seen     []domain.Message
	revision uint64
	offered  []string
}

func newTranscript(out io.Writer, renderer *render.Renderer) *transcript {
	return &transcript{out: out, renderer: renderer}
}

// Restart forgets what was printed so the next snapshot prints in full
func (t *transcript) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen = nil
	t.offered = nil
	fmt.Fprintln(t.out, "--- percakapan baru ---")
}

// Suggestions returns the suggestions most recently offered
func (t *transcript) Suggestions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string{}, t.offered...)
}

// Update prints new lines from snap. A placeholder that was printed and
// later replaced prints the reply as a new line.
func (t *transcript) Update(snap dialogue.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if snap.Revision < t.revision {
		return
	}
	t.revision = snap.Revision

	if len(snap.Messages) < len(t.seen) {
		t.seen = nil
	}

	printedReply := false
	for i, msg := range snap.Messages {
		if i < len(t.seen) {
			prev := t.seen[i]
			if !prev.IsPlaceholder() || msg.IsPlaceholder() {
				continue
			}
		}
		t.print(msg)
		if msg.Sender == domain.SenderAssistant && !msg.IsPlaceholder() {
			printedReply = true
		}
	}
	t.seen = snap.Messages

	if printedReply && snap.State == dialogue.StateIdle {
		t.offered = append([]string{}, snap.Suggestions...)
		for i, s := range t.offered {
			fmt.Fprintf(t.out, "  /%d %s\n", i+1, s)
		}
	}
}

func (t *transcript) print(msg domain.Message) {
	prefix := "Penjual"
	if msg.Sender == domain.SenderUser {
		prefix = "Anda"
	}
	if msg.IsError {
		prefix += " (!)"
	}
	fmt.Fprintf(t.out, "%s: %s\n", prefix, t.renderer.Text(msg))
}
