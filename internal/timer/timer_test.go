package timer

import (
	"testing"
	"time"
)

func TestStartRequiresSubject(t *testing.T) {
	var tm Timer
	if tm.Start("") {
		t.Error("Start with empty subject should fail")
	}
	if !tm.Start("subj-1") {
		t.Error("Start from Idle should succeed")
	}
	if tm.Start("subj-2") {
		t.Error("Start while Running should fail")
	}
	if tm.SubjectID() != "subj-1" {
		t.Errorf("SubjectID = %q, want subj-1", tm.SubjectID())
	}
}

func TestTickOnlyAccumulatesWhileRunning(t *testing.T) {
	var tm Timer
	tm.Tick(time.Second)
	if tm.Elapsed() != 0 {
		t.Error("idle timer accumulated time")
	}

	tm.Start("subj-1")
	tm.Tick(30 * time.Second)
	tm.Pause()
	if tm.State() != Paused {
		t.Fatalf("State = %v, want Paused", tm.State())
	}
	tm.Tick(30 * time.Second)
	if tm.Elapsed() != 30*time.Second {
		t.Errorf("Elapsed = %v, want 30s", tm.Elapsed())
	}

	tm.Resume()
	tm.Tick(15 * time.Second)
	if tm.Elapsed() != 45*time.Second {
		t.Errorf("Elapsed = %v, want 45s", tm.Elapsed())
	}
}

func TestResetKeepsSubject(t *testing.T) {
	var tm Timer
	tm.Start("subj-1")
	tm.Tick(time.Minute)
	tm.Reset()

	if tm.State() != Idle || tm.Elapsed() != 0 {
		t.Errorf("after Reset: state=%v elapsed=%v", tm.State(), tm.Elapsed())
	}
	if tm.SubjectID() != "subj-1" {
		t.Error("Reset dropped the selected subject")
	}
}

func TestCommitRoundsUpToWholeMinutes(t *testing.T) {
	var tm Timer
	tm.Start("subj-1")
	tm.Tick(90 * time.Second)
	tm.Pause()

	now := time.Date(2025, 6, 1, 16, 0, 0, 0, time.Local)
	sess, ok := tm.Commit(now)
	if !ok {
		t.Fatal("Commit with elapsed time should succeed")
	}
	if sess.Duration != 2 {
		t.Errorf("Duration = %d minutes, want 2", sess.Duration)
	}
	if sess.SubjectID != "subj-1" || !sess.Date.Equal(now) {
		t.Errorf("unexpected session: %+v", sess)
	}
	if tm.State() != Idle || tm.Elapsed() != 0 {
		t.Error("Commit did not reset the machine")
	}
}

func TestCommitWithNothingAccumulatedFails(t *testing.T) {
	var tm Timer
	if _, ok := tm.Commit(time.Now()); ok {
		t.Error("Commit from zero should fail")
	}
	tm.Start("subj-1")
	if _, ok := tm.Commit(time.Now()); ok {
		t.Error("Commit with zero elapsed should fail")
	}
}
