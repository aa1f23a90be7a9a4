// Package timer implements the study timer as an explicit state machine.
// The timer is a plain value: it never schedules anything itself, it only
// reacts to ticks the UI feeds it.
package timer

import (
	"time"

	"studydesk/internal/models"
)

// State of the timer.
type State int

const (
	Idle State = iota
	Running
	Paused
)

// Timer accumulates elapsed study time for one subject. It hands off to the
// store exactly once, when Commit turns the elapsed time into a session.
type Timer struct {
	state     State
	subjectID string
	elapsed   time.Duration
}

// State returns the current state.
func (t *Timer) State() State { return t.state }

// SubjectID returns the subject being studied, if any.
func (t *Timer) SubjectID() string { return t.subjectID }

// Elapsed returns the accumulated duration.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Start begins timing the given subject. It only fires from Idle with a
// non-empty subject.
func (t *Timer) Start(subjectID string) bool {
	if t.state != Idle || subjectID == "" {
		return false
	}
	t.state = Running
	t.subjectID = subjectID
	return true
}

// Pause suspends a running timer.
func (t *Timer) Pause() {
	if t.state == Running {
		t.state = Paused
	}
}

// Resume continues a paused timer.
func (t *Timer) Resume() {
	if t.state == Paused {
		t.state = Running
	}
}

// Reset discards accumulated time and returns to Idle. The selected subject
// is kept so the user can start again without re-picking it.
func (t *Timer) Reset() {
	t.state = Idle
	t.elapsed = 0
}

// Tick advances the clock. Time only accumulates while Running.
func (t *Timer) Tick(delta time.Duration) {
	if t.state == Running {
		t.elapsed += delta
	}
}

// Commit converts the accumulated time into a study session dated now, in
// whole minutes rounded up, and resets the machine to Idle. ok is false when
// there is nothing to commit.
func (t *Timer) Commit(now time.Time) (models.StudySession, bool) {
	if t.elapsed <= 0 || t.subjectID == "" {
		return models.StudySession{}, false
	}
	sess := models.StudySession{
		SubjectID: t.subjectID,
		Date:      now,
		Duration:  int((t.elapsed + time.Minute - 1) / time.Minute),
	}
	t.Reset()
	return sess, true
}
