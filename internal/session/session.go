// Package session implements the question-session state machine. A session
// owns a frozen question ordering, the user's selections and an optional
// deadline; all transitions are total functions that absorb invalid calls
// as no-ops.
package session

import (
	"math/rand"
	"time"

	"github.com/FINAL094/CDMP-exam-practice/internal/model"
)

// Status is the lifecycle state of a session. Transitions only move
// forward: in_progress -> completed or in_progress -> expired.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusExpired    Status = "expired"
)

// Options control how a session is built.
type Options struct {
	ShuffleQuestions bool
	ShuffleOptions   bool
	// TimeLimit sets the deadline to now + TimeLimit; zero means untimed.
	TimeLimit time.Duration
	// Rand is the permutation source; nil seeds one from the clock.
	Rand *rand.Rand
}

// Session is the state of a single quiz run. It is a plain value owned by
// the caller; nothing here touches global state or spawns timers.
type Session struct {
	questions  []model.Question
	selections map[string][]string
	current    int
	deadline   time.Time
	timed      bool
	status     Status
}

// New builds a session over the given questions. Ordering is decided here
// once: shuffled question order and per-question option display order when
// requested, source order otherwise. Labels travel with their texts, so
// shuffling options never changes which answers are correct.
func New(questions []model.Question, opts Options) *Session {
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Copy so the caller's slice is never reordered.
	ordered := make([]model.Question, len(questions))
	copy(ordered, questions)

	if opts.ShuffleQuestions {
		r.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	if opts.ShuffleOptions {
		for i := range ordered {
			shuffled := make([]model.Option, len(ordered[i].Options))
			copy(shuffled, ordered[i].Options)
			r.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			ordered[i].Options = shuffled
		}
	}

	s := &Session{
		questions:  ordered,
		selections: make(map[string][]string),
		status:     StatusInProgress,
	}
	if opts.TimeLimit > 0 {
		s.deadline = time.Now().Add(opts.TimeLimit)
		s.timed = true
	}
	return s
}

// Questions returns a copy of the session's frozen question ordering.
func (s *Session) Questions() []model.Question {
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.questions)
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// CurrentIndex returns the position of the question on display.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the question on display. ok is false for an empty session.
func (s *Session) Current() (model.Question, bool) {
	if len(s.questions) == 0 {
		return model.Question{}, false
	}
	return s.questions[s.current], true
}

// Select records the user's choice for a question, replacing any earlier
// choice. Labels are normalized before storing. Once the session has left
// in_progress the call is a no-op: a stray event after expiry is expected
// interaction, not an error.
func (s *Session) Select(number string, labels []string) {
	if s.status != StatusInProgress {
		return
	}
	s.selections[number] = model.NormalizeLabels(labels)
}

// Selection returns a copy of the normalized labels picked for a question;
// nil means unanswered.
func (s *Session) Selection(number string) []string {
	sel, ok := s.selections[number]
	if !ok {
		return nil
	}
	out := make([]string, len(sel))
	copy(out, sel)
	return out
}

// Answered reports whether the user recorded any choice for a question.
func (s *Session) Answered(number string) bool {
	return len(s.selections[number]) > 0
}

// Advance moves the cursor by delta, clamped to the question range. No
// other state changes.
func (s *Session) Advance(delta int) {
	if len(s.questions) == 0 {
		return
	}
	s.current += delta
	if s.current < 0 {
		s.current = 0
	}
	if max := len(s.questions) - 1; s.current > max {
		s.current = max
	}
}

// Tick checks the deadline against now. It is the only time-driven
// transition and is safe to call redundantly; it reports whether this call
// expired the session so the caller can announce it exactly once.
func (s *Session) Tick(now time.Time) bool {
	if !s.timed || s.status != StatusInProgress {
		return false
	}
	if now.Before(s.deadline) {
		return false
	}
	s.status = StatusExpired
	return true
}

// Finish completes an in-progress session. Idempotent; never resurrects an
// expired session.
func (s *Session) Finish() {
	if s.status == StatusInProgress {
		s.status = StatusCompleted
	}
}

// ReviewAvailable reports whether review mode may be entered. Evaluated
// freshly from the current status, never cached.
func (s *Session) ReviewAvailable() bool {
	return s.status != StatusInProgress
}

// Deadline returns the expiry time and whether the session is timed.
func (s *Session) Deadline() (time.Time, bool) {
	return s.deadline, s.timed
}

// Remaining returns the time left before expiry, never negative. Untimed
// sessions report zero with timed == false via Deadline.
func (s *Session) Remaining(now time.Time) time.Duration {
	if !s.timed {
		return 0
	}
	if d := s.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}
