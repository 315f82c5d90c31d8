// Package speech reads assistant replies aloud through a platform
// synthesizer, keeping at most one utterance audible at a time.
package speech

import (
	"errors"
	"strings"
	"sync"

	"github.com/liliang-cn/jogjachat/internal/sanitize"
	"go.uber.org/zap"
)

// ErrUnavailable indicates the platform has no usable speech engine
var ErrUnavailable = errors.New("speech synthesis unavailable")

// Options configures a single utterance
type Options struct {
	Locale string
	Rate   float64 // 1.0 is the engine's normal speed
	Pitch  float64 // 1.0 is the engine's normal pitch
	Volume float64 // 0.0 - 1.0
}

// DefaultOptions returns the widget voice: Indonesian, a little slower and
// a little higher than normal.
func DefaultOptions() Options {
	return Options{
		Locale: "id-ID",
		Rate:   0.9,
		Pitch:  1.1,
		Volume: 0.8,
	}
}

// Synthesizer is the platform text-to-speech capability
type Synthesizer interface {
	Speak(text string, opts Options) error
	Cancel()
}

// Notifier speaks replies when enabled. Every new utterance or mute
// cancels the one in flight; requests are never queued.
type Notifier struct {
	mu      sync.Mutex
	synth   Synthesizer
	opts    Options
	enabled bool
	logger  *zap.Logger
}

// NewNotifier creates a notifier. A nil synth makes Speak a silent no-op.
func NewNotifier(synth Synthesizer, opts Options, enabled bool, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		synth:   synth,
		opts:    opts,
		enabled: enabled,
		logger:  logger,
	}
}

// Speak reads the plain-text form of text aloud
func (n *Notifier) Speak(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled || n.synth == nil {
		return
	}
	plain := strings.TrimSpace(sanitize.StripFormatting(text))
	if plain == "" {
		return
	}

	n.synth.Cancel()
	if err := n.synth.Speak(plain, n.opts); err != nil {
		n.logger.Warn("Failed to start speech", zap.Error(err))
	}
}

// Toggle flips speech on or off and returns the new state
func (n *Notifier) Toggle() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.enabled = !n.enabled
	if !n.enabled && n.synth != nil {
		n.synth.Cancel()
	}
	return n.enabled
}

// Available reports whether a synthesizer is attached
func (n *Notifier) Available() bool {
	return n.synth != nil
}

// Enabled reports whether speech is on
func (n *Notifier) Enabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enabled
}

// Cancel stops the utterance in flight, if any
func (n *Notifier) Cancel() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.synth != nil {
		n.synth.Cancel()
	}
}
