package speech

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	espeakBaseWPM       = 175
	espeakBasePitch     = 50
	espeakBaseAmplitude = 100
)

// ExecSynthesizer speaks through an espeak-compatible command line engine
// (espeak-ng, espeak). Each utterance is one child process.
type ExecSynthesizer struct {
	mu     sync.Mutex
	binary string
	cmd    *exec.Cmd
	logger *zap.Logger
}

// NewExecSynthesizer resolves engine on PATH. It returns ErrUnavailable when
// the engine is not installed.
func NewExecSynthesizer(engine string, logger *zap.Logger) (*ExecSynthesizer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	path, err := exec.LookPath(engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, engine, err)
	}
	return &ExecSynthesizer{binary: path, logger: logger}, nil
}

// Speak starts a new utterance without waiting for it to finish
func (s *ExecSynthesizer) Speak(text string, opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := exec.Command(s.binary, espeakArgs(text, opts)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", s.binary, err)
	}
	s.cmd = cmd

	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Debug("Speech process ended", zap.Error(err))
		}
		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd = nil
		}
		s.mu.Unlock()
	}()
	return nil
}

// Cancel kills the running utterance
func (s *ExecSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	if err := s.cmd.Process.Kill(); err != nil {
		s.logger.Debug("Failed to stop speech process", zap.Error(err))
	}
	s.cmd = nil
}

func espeakArgs(text string, opts Options) []string {
	voice := strings.ToLower(strings.SplitN(opts.Locale, "-", 2)[0])
	if voice == "" {
		voice = "id"
	}
	return []string{
		"-v", voice,
		"-s", strconv.Itoa(int(espeakBaseWPM * opts.Rate)),
		"-p", strconv.Itoa(clamp(int(espeakBasePitch*opts.Pitch), 0, 99)),
		"-a", strconv.Itoa(clamp(int(espeakBaseAmplitude*opts.Volume), 0, 200)),
		"--", text,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
