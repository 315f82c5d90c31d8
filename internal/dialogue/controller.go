// Package dialogue drives the widget conversation: it appends user lines,
// stages the typing placeholder, calls the assistant, classifies replies,
// speaks them and resets the conversation on request.
package dialogue

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/liliang-cn/jogjachat/internal/classifier"
	"github.com/liliang-cn/jogjachat/internal/conversation"
	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/liliang-cn/jogjachat/internal/session"
	"go.uber.org/zap"
)

// Default cosmetic delays
const (
	DefaultPlaceholderDelay = 300 * time.Millisecond
	DefaultSpeechDelay      = 500 * time.Millisecond
	DefaultQuickSendDelay   = 100 * time.Millisecond
)

// Assistant is the remote conversation service
type Assistant interface {
	Ask(ctx context.Context, message, sessionID string) (*domain.AskResponse, error)
	Forget(ctx context.Context, sessionID string) error
}

// Speaker reads replies aloud; *speech.Notifier implements it
type Speaker interface {
	Speak(text string)
	Cancel()
	Toggle() bool
	Enabled() bool
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	SessionID        string
	PlaceholderDelay time.Duration
	SpeechDelay      time.Duration
	QuickSendDelay   time.Duration
	Scheduler        Scheduler
	Now              func() time.Time
	Logger           *zap.Logger
	// OnChange is called with a fresh snapshot after every mutation. It
	// runs outside the controller lock and may be called from any goroutine.
	OnChange func(Snapshot)
}

// Snapshot is a point-in-time copy of the controller's observable state
type Snapshot struct {
	// Revision increases with every snapshot taken; observers receiving
	// snapshots from several goroutines use it to drop stale ones.
	Revision     uint64
	SessionID    string
	State        State
	Messages     []domain.Message
	Stats        domain.Stats
	Context      domain.Context
	Suggestions  []string
	Input        string
	VoiceEnabled bool
}

// Controller owns the transcript, its statistics and the in-flight
// exchange. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	assistant  Assistant
	speaker    Speaker
	classifier *classifier.Classifier
	store      *conversation.Store
	sched      Scheduler
	now        func() time.Time
	logger     *zap.Logger
	onChange   func(Snapshot)

	placeholderDelay time.Duration
	speechDelay      time.Duration
	quickSendDelay   time.Duration

	sessionID   string
	state       State
	context     domain.Context
	suggestions []string
	input       string
	revision    uint64

	// gen is bumped by Reset and Close; work started under an older
	// generation is discarded when it completes.
	gen         uint64
	tasks       map[*task]struct{}
	placeholder *task
	speech      *task
	cancelReq   context.CancelFunc
	wg          sync.WaitGroup
	closed      bool

	baseCtx    context.Context
	baseCancel context.CancelFunc
}

// New creates a controller. A nil speaker disables speech; a nil
// classifier uses the default vocabulary.
func New(assistant Assistant, speaker Speaker, cls *classifier.Classifier, opts Options) *Controller {
	if speaker == nil {
		speaker = nopSpeaker{}
	}
	if cls == nil {
		cls = classifier.New(classifier.DefaultVocabulary())
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SessionID == "" {
		opts.SessionID = session.NewID()
	}
	if opts.PlaceholderDelay <= 0 {
		opts.PlaceholderDelay = DefaultPlaceholderDelay
	}
	if opts.SpeechDelay <= 0 {
		opts.SpeechDelay = DefaultSpeechDelay
	}
	if opts.QuickSendDelay <= 0 {
		opts.QuickSendDelay = DefaultQuickSendDelay
	}

	baseCtx, baseCancel := context.WithCancel(context.Background())
	return &Controller{
		assistant:        assistant,
		speaker:          speaker,
		classifier:       cls,
		store:            conversation.NewStore(domain.GreetingText, opts.Now()),
		sched:            opts.Scheduler,
		now:              opts.Now,
		logger:           opts.Logger.With(zap.String("session_id", opts.SessionID)),
		onChange:         opts.OnChange,
		placeholderDelay: opts.PlaceholderDelay,
		speechDelay:      opts.SpeechDelay,
		quickSendDelay:   opts.QuickSendDelay,
		sessionID:        opts.SessionID,
		state:            StateIdle,
		context:          domain.ContextWelcome,
		suggestions:      cls.Suggestions(domain.ContextWelcome),
		tasks:            make(map[*task]struct{}),
		baseCtx:          baseCtx,
		baseCancel:       baseCancel,
	}
}

// SessionID returns the identifier sent with every request
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Send starts an exchange with raw as the user message. It returns false
// when the message is blank or another exchange is still awaiting its reply.
func (c *Controller) Send(raw string) bool {
	c.mu.Lock()
	ok := c.sendLocked(raw)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	if ok {
		c.notify(snap)
	}
	return ok
}

// QuickSend fills the input buffer with a suggestion and sends it after
// the quick-send delay. It is a no-op while a reply is pending.
func (c *Controller) QuickSend(suggestion string) bool {
	c.mu.Lock()
	if c.closed || c.state == StateAwaitingReply {
		c.mu.Unlock()
		return false
	}
	c.input = suggestion
	c.scheduleLocked(c.quickSendDelay, func() {
		c.sendLocked(c.input)
	})
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

// ToggleVoice flips speech on or off and returns the new state
func (c *Controller) ToggleVoice() bool {
	on := c.speaker.Toggle()
	c.notify(c.Snapshot())
	return on
}

// Reset asks the service to forget this session, then starts a new
// conversation locally without waiting for the answer. The session ID is
// kept. A pending exchange and its timers are abandoned.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.wg.Add(1)
	go c.forget()

	c.gen++
	c.abandonLocked()
	c.store.Reset(c.now())
	c.state = StateIdle
	c.input = ""
	c.context = domain.ContextWelcome
	c.suggestions = c.classifier.Suggestions(domain.ContextWelcome)
	c.speaker.Cancel()

	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("Conversation reset")
	c.notify(snap)
}

// Wait blocks until the pending exchange, its timers and any reset
// request have finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close tears the controller down: pending timers are stopped, the
// in-flight request is cancelled and speech is silenced. It waits for
// background work to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.gen++
	c.abandonLocked()
	c.speaker.Cancel()
	c.baseCancel()
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Controller) sendLocked(raw string) bool {
	text := strings.TrimSpace(raw)
	if c.closed || text == "" || c.state == StateAwaitingReply {
		return false
	}

	if c.speech != nil {
		c.cancelTaskLocked(c.speech)
		c.speech = nil
	}
	c.speaker.Cancel()
	if err := c.store.Append(domain.NewUserMessage(text, c.now())); err != nil {
		c.logger.Error("Failed to append user message", zap.Error(err))
		return false
	}
	c.input = ""
	c.state = StateAwaitingReply

	c.placeholder = c.scheduleLocked(c.placeholderDelay, c.showPlaceholderLocked)

	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancelReq = cancel
	c.wg.Add(1)
	go c.exchange(ctx, c.gen, text)
	return true
}

func (c *Controller) exchange(ctx context.Context, gen uint64, text string) {
	defer c.wg.Done()

	resp, err := c.assistant.Ask(ctx, text, c.sessionID)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("Discarding reply from abandoned exchange")
		return
	}
	if c.cancelReq != nil {
		c.cancelReq()
		c.cancelReq = nil
	}

	if err != nil {
		c.failLocked(err)
	} else {
		c.settleLocked(resp)
	}
	c.state = StateIdle

	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) showPlaceholderLocked() {
	c.placeholder = nil
	if err := c.store.AppendPlaceholder(c.now()); err != nil {
		c.logger.Warn("Failed to show typing placeholder", zap.Error(err))
	}
}

func (c *Controller) settleLocked(resp *domain.AskResponse) {
	reply := resp.Response
	if strings.TrimSpace(reply) == "" {
		reply = domain.EmptyReplyText
	}
	c.resolveLocked(domain.NewAssistantMessage(reply, c.now(), resp.IsError))
	c.store.CountExchange()

	result := c.classifier.Classify(classifier.State{Stats: c.store.Stats(), Context: c.context}, reply)
	c.store.AdoptStats(result.Stats)
	c.context = result.Context
	c.suggestions = result.Suggestions

	c.speech = c.scheduleLocked(c.speechDelay, func() {
		c.speech = nil
		c.speaker.Speak(reply)
	})
}

func (c *Controller) failLocked(err error) {
	c.logger.Warn("Assistant request failed", zap.Error(err))
	c.resolveLocked(domain.NewAssistantMessage(domain.FallbackText, c.now(), true))
	c.store.CountExchange()
}

// resolveLocked puts the terminal message of an exchange in place of the
// placeholder. If the reply beat the placeholder delay, the placeholder is
// never shown and the message is appended instead.
func (c *Controller) resolveLocked(msg domain.Message) {
	if c.placeholder != nil {
		c.cancelTaskLocked(c.placeholder)
		c.placeholder = nil
		if err := c.store.Append(msg); err != nil {
			c.logger.Error("Failed to append reply", zap.Error(err))
		}
		return
	}
	if err := c.store.ReplacePlaceholder(msg); err != nil {
		c.logger.Warn("Placeholder missing, appending reply", zap.Error(err))
		if err := c.store.Append(msg); err != nil {
			c.logger.Error("Failed to append reply", zap.Error(err))
		}
	}
}

// abandonLocked cancels the in-flight request and every pending timer
func (c *Controller) abandonLocked() {
	if c.cancelReq != nil {
		c.cancelReq()
		c.cancelReq = nil
	}
	for t := range c.tasks {
		c.cancelTaskLocked(t)
	}
	c.placeholder = nil
	c.speech = nil
}

func (c *Controller) forget() {
	defer c.wg.Done()
	if err := c.assistant.Forget(c.baseCtx, c.sessionID); err != nil {
		c.logger.Warn("Failed to delete server-side history", zap.Error(err))
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	c.revision++
	return Snapshot{
		Revision:     c.revision,
		SessionID:    c.sessionID,
		State:        c.state,
		Messages:     c.store.Messages(),
		Stats:        c.store.Stats(),
		Context:      c.context,
		Suggestions:  append([]string{}, c.suggestions...),
		Input:        c.input,
		VoiceEnabled: c.speaker.Enabled(),
	}
}

func (c *Controller) notify(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}

type nopSpeaker struct{}

func (nopSpeaker) Speak(string)  {}
func (nopSpeaker) Cancel()       {}
func (nopSpeaker) Toggle() bool  { return false }
func (nopSpeaker) Enabled() bool { return false }
