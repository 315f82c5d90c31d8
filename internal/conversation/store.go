// Package conversation holds the widget transcript and its derived
// statistics. A Store is owned by a single controller and is not safe for
// concurrent use on its own.
package conversation

import (
	"time"

	"github.com/liliang-cn/jogjachat/internal/domain"
)

// Store is the ordered transcript plus conversation statistics
type Store struct {
	greeting string
	messages []domain.Message
	stats    domain.Stats
}

// NewStore creates a store seeded with a single greeting line
func NewStore(greeting string, now time.Time) *Store {
	s := &Store{greeting: greeting}
	s.Reset(now)
	return s
}

// Reset drops the transcript back to a fresh greeting and clears statistics
func (s *Store) Reset(now time.Time) {
	s.messages = []domain.Message{domain.NewAssistantMessage(s.greeting, now, false)}
	s.stats = domain.NewStats()
}

// Messages returns a copy of the transcript in insertion order
func (s *Store) Messages() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Last returns the most recent line
func (s *Store) Last() (domain.Message, bool) {
	if len(s.messages) == 0 {
		return domain.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// HasPlaceholder reports whether the last line is a pending placeholder
func (s *Store) HasPlaceholder() bool {
	last, ok := s.Last()
	return ok && last.IsPlaceholder()
}

// Append adds a line. A placeholder may not follow another placeholder.
func (s *Store) Append(msg domain.Message) error {
	if msg.IsPlaceholder() && s.HasPlaceholder() {
		return domain.ErrDuplicatePlaceholder
	}
	s.messages = append(s.messages, msg)
	return nil
}

// AppendPlaceholder adds the "typing" line
func (s *Store) AppendPlaceholder(now time.Time) error {
	return s.Append(domain.NewPlaceholder(now))
}

// ReplacePlaceholder swaps the pending placeholder for msg
func (s *Store) ReplacePlaceholder(msg domain.Message) error {
	if !s.HasPlaceholder() {
		return domain.ErrNoPlaceholder
	}
	s.messages[len(s.messages)-1] = msg
	return nil
}

// Stats returns a copy of the statistics
func (s *Store) Stats() domain.Stats {
	return s.stats.Clone()
}

// CountExchange records one finished user/assistant exchange
func (s *Store) CountExchange() {
	s.stats.MessageCount += 2
}

// AdoptStats merges classifier output into the statistics. Products and
// interests only ever grow; the message count is owned by CountExchange.
func (s *Store) AdoptStats(next domain.Stats) {
	for _, p := range next.ProductsDiscussed {
		if !s.stats.HasProduct(p) {
			s.stats.ProductsDiscussed = append(s.stats.ProductsDiscussed, p)
		}
	}
	for _, i := range next.UserInterests {
		if !s.stats.HasInterest(i) {
			s.stats.UserInterests = append(s.stats.UserInterests, i)
		}
	}
}
