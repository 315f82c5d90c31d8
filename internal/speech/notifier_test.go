package speech

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	mu    sync.Mutex
	calls []string
	texts []string
	err   error
}

func (f *fakeSynth) Speak(text string, opts Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "speak")
	f.texts = append(f.texts, text)
	return f.err
}

func (f *fakeSynth) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "cancel")
}

func TestNotifier_SpeakCancelsFirst(t *testing.T) {
	synth := &fakeSynth{}
	n := NewNotifier(synth, DefaultOptions(), true, nil)

	n.Speak("**Bakpia** enak")
	n.Speak("Gudeg [resep](https://gudeg.id)")

	assert.Equal(t, []string{"cancel", "speak", "cancel", "speak"}, synth.calls)
	assert.Equal(t, []string{"Bakpia enak", "Gudeg resep (https://gudeg.id)"}, synth.texts)
}

func TestNotifier_SkipsEmptyAndDisabled(t *testing.T) {
	synth := &fakeSynth{}
	n := NewNotifier(synth, DefaultOptions(), true, nil)

	n.Speak("")
	n.Speak("  ![foto](x.png)  ")
	n.Speak("***")
	assert.Empty(t, synth.calls)

	require.False(t, n.Toggle())
	assert.Equal(t, []string{"cancel"}, synth.calls)

	n.Speak("halo")
	assert.Equal(t, []string{"cancel"}, synth.calls)

	require.True(t, n.Toggle())
	assert.True(t, n.Enabled())
	n.Speak("halo")
	assert.Equal(t, []string{"cancel", "cancel", "speak"}, synth.calls)
}

func TestNotifier_SwallowsFailures(t *testing.T) {
	synth := &fakeSynth{err: errors.New("no audio device")}
	n := NewNotifier(synth, DefaultOptions(), true, nil)

	require.NotPanics(t, func() { n.Speak("halo") })
	assert.Equal(t, []string{"halo"}, synth.texts)
}

func TestNotifier_NilSynthesizer(t *testing.T) {
	n := NewNotifier(nil, DefaultOptions(), true, nil)
	assert.False(t, n.Available())
	assert.True(t, NewNotifier(&fakeSynth{}, DefaultOptions(), true, nil).Available())
	require.NotPanics(t, func() {
		n.Speak("halo")
		n.Cancel()
		n.Toggle()
	})
}

func TestEspeakArgs(t *testing.T) {
	args := espeakArgs("halo", DefaultOptions())
	assert.Equal(t, []string{"-v", "id", "-s", "157", "-p", "55", "-a", "80", "--", "halo"}, args)
}
