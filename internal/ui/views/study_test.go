package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studydesk/internal/models"
	"studydesk/internal/store"
	"studydesk/internal/timer"
)

type memBackend map[string][]byte

func (m memBackend) Load(key string) ([]byte, error) { return m[key], nil }

func (m memBackend) Store(key string, value []byte) error {
	m[key] = value
	return nil
}

func (m memBackend) Close() error { return nil }

func press(t *testing.T, v *StudyView, r rune) tea.Cmd {
	t.Helper()
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func newLoadedStudyView(t *testing.T) *StudyView {
	t.Helper()
	st := store.New(memBackend{})
	if _, err := st.AddSubject(models.Subject{Name: "Physics", Color: models.ColorDefault}); err != nil {
		t.Fatal(err)
	}
	v := NewStudyView(st)
	v.Update(v.loadStudy())
	return v
}

func TestStudyRestartKeepsOneTickChain(t *testing.T) {
	v := newLoadedStudyView(t)

	// Start, reset, and start again before the first chain's tick arrives.
	if cmd := press(t, v, 's'); cmd == nil {
		t.Fatal("start did not schedule a tick")
	}
	press(t, v, 'r')
	if cmd := press(t, v, 's'); cmd == nil {
		t.Fatal("restart did not schedule a tick")
	}

	// Both chains now deliver their pending ticks for the same wall second.
	if _, cmd := v.Update(tickMsg{gen: 1}); cmd != nil {
		t.Error("stale tick chain rescheduled itself")
	}
	if _, cmd := v.Update(tickMsg{gen: v.tickGen}); cmd == nil {
		t.Error("live tick chain did not reschedule")
	}

	if got := v.timer.Elapsed(); got != time.Second {
		t.Errorf("elapsed after one wall second = %v, want 1s", got)
	}
}

func TestStudyCommitInvalidatesPendingTicks(t *testing.T) {
	v := newLoadedStudyView(t)

	press(t, v, 's')
	v.Update(tickMsg{gen: 1})
	press(t, v, 'c')
	press(t, v, 's')

	// The first chain's next tick straggles in after commit and restart.
	v.Update(tickMsg{gen: 1})
	if got := v.timer.Elapsed(); got != 0 {
		t.Errorf("stale tick advanced the fresh timer by %v", got)
	}
	v.Update(tickMsg{gen: v.tickGen})
	if got := v.timer.Elapsed(); got != time.Second {
		t.Errorf("elapsed = %v, want 1s", got)
	}
	if v.timer.State() != timer.Running {
		t.Errorf("state = %v, want Running", v.timer.State())
	}
}
