package store

import (
	"testing"
	"time"

	"studydesk/internal/models"
	"studydesk/internal/storage"
)

// memBackend keeps collections in a map, standing in for sqlite/bbolt.
type memBackend struct {
	data map[string][]byte
}

func newMemBackend() *memBackend {
	return &memBackend{data: make(map[string][]byte)}
}

func (m *memBackend) Load(key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memBackend) Store(key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memBackend) Close() error { return nil }

func mustAddSubject(t *testing.T, s *Store, name string) models.Subject {
	t.Helper()
	sub, err := s.AddSubject(models.Subject{Name: name, Code: "X100", Color: models.ColorDefault})
	if err != nil {
		t.Fatalf("AddSubject(%q): %v", name, err)
	}
	return *sub
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := New(newMemBackend())

	a := mustAddSubject(t, s, "Algebra")
	b := mustAddSubject(t, s, "Biology")

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty ids")
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both %q", a.ID)
	}
}

func TestRoundTrip(t *testing.T) {
	backend := newMemBackend()
	s := New(backend)

	sub := mustAddSubject(t, s, "Physics")
	due := time.Date(2025, 3, 10, 23, 59, 0, 0, time.Local)
	added, err := s.AddAssignment(models.Assignment{
		SubjectID: sub.ID,
		Title:     "Problem set 4",
		DueDate:   due,
		Status:    models.StatusPending,
		Priority:  models.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("AddAssignment: %v", err)
	}
	if _, err := s.AddStudySession(models.StudySession{
		SubjectID: sub.ID,
		Date:      time.Date(2025, 3, 8, 14, 0, 0, 0, time.Local),
		Duration:  45,
	}); err != nil {
		t.Fatalf("AddStudySession: %v", err)
	}

	// A fresh store over the same backend must see equivalent records.
	reloaded := New(backend)

	subjects := reloaded.Subjects()
	if len(subjects) != 1 || subjects[0] != sub {
		t.Fatalf("subjects did not round-trip: %+v", subjects)
	}
	assignments := reloaded.Assignments()
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].ID != added.ID || assignments[0].Title != "Problem set 4" {
		t.Fatalf("assignment did not round-trip: %+v", assignments[0])
	}
	if !assignments[0].DueDate.Equal(due) {
		t.Fatalf("due date changed across reload: got %v, want %v", assignments[0].DueDate, due)
	}
	if sessions := reloaded.StudySessions(); len(sessions) != 1 || sessions[0].Duration != 45 {
		t.Fatalf("sessions did not round-trip: %+v", sessions)
	}
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "Chemistry")

	professor := "Dr. Iqbal"
	if err := s.UpdateSubject(sub.ID, SubjectPatch{Professor: &professor}); err != nil {
		t.Fatalf("UpdateSubject: %v", err)
	}

	got := s.GetSubjectByID(sub.ID)
	if got == nil {
		t.Fatal("subject disappeared")
	}
	if got.Professor != professor {
		t.Errorf("Professor = %q, want %q", got.Professor, professor)
	}
	if got.Name != "Chemistry" || got.Code != "X100" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestCascadeDelete(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "Physics")
	other := mustAddSubject(t, s, "History")

	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.Local)
	for _, subjectID := range []string{sub.ID, other.ID} {
		if _, err := s.AddAssignment(models.Assignment{SubjectID: subjectID, Title: "hw", DueDate: now, Status: models.StatusPending, Priority: models.PriorityLow}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.AddExperiment(models.Experiment{SubjectID: subjectID, Title: "lab", Date: now, Status: models.ExperimentUpcoming}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.AddTimetableSlot(models.TimetableSlot{SubjectID: subjectID, Day: models.Monday, StartTime: "09:00", EndTime: "10:00"}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.AddChapter(models.Chapter{SubjectID: subjectID, Title: "ch", Status: models.StatusPending}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.AddStudySession(models.StudySession{SubjectID: subjectID, Date: now, Duration: 30}); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.DeleteSubject(sub.ID); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}

	if s.GetSubjectByID(sub.ID) != nil {
		t.Error("subject survived deletion")
	}
	for _, a := range s.Assignments() {
		if a.SubjectID == sub.ID {
			t.Error("assignment survived cascade")
		}
	}
	for _, e := range s.Experiments() {
		if e.SubjectID == sub.ID {
			t.Error("experiment survived cascade")
		}
	}
	for _, slot := range s.Timetable() {
		if slot.SubjectID == sub.ID {
			t.Error("timetable slot survived cascade")
		}
	}
	for _, c := range s.Chapters() {
		if c.SubjectID == sub.ID {
			t.Error("chapter survived cascade")
		}
	}

	// Study sessions are exempt from the cascade.
	orphans := 0
	for _, sess := range s.StudySessions() {
		if sess.SubjectID == sub.ID {
			orphans++
		}
	}
	if orphans != 1 {
		t.Errorf("expected 1 orphaned session, got %d", orphans)
	}

	// The other subject's records are untouched.
	if len(s.Assignments()) != 1 || len(s.Chapters()) != 1 {
		t.Error("cascade reached another subject's records")
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "English")

	name := "changed"
	if err := s.UpdateSubject("no-such-id", SubjectPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateSubject: %v", err)
	}
	if err := s.DeleteSubject("no-such-id"); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}
	if err := s.UpdateChapter("no-such-id", ChapterPatch{Title: &name}); err != nil {
		t.Fatalf("UpdateChapter: %v", err)
	}
	if err := s.DeleteAssignment("no-such-id"); err != nil {
		t.Fatalf("DeleteAssignment: %v", err)
	}

	subjects := s.Subjects()
	if len(subjects) != 1 || subjects[0] != sub {
		t.Fatalf("collection changed by no-op: %+v", subjects)
	}
}

func TestStudySessionPatchAndDelete(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "Physics")

	date := time.Date(2025, 3, 8, 14, 0, 0, 0, time.Local)
	sess, err := s.AddStudySession(models.StudySession{SubjectID: sub.ID, Date: date, Duration: 45})
	if err != nil {
		t.Fatalf("AddStudySession: %v", err)
	}

	duration := 50
	topic := "optics"
	if err := s.UpdateStudySession(sess.ID, StudySessionPatch{Duration: &duration, Topic: &topic}); err != nil {
		t.Fatalf("UpdateStudySession: %v", err)
	}

	sessions := s.StudySessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Duration != 50 || sessions[0].Topic != "optics" {
		t.Errorf("patch did not apply: %+v", sessions[0])
	}
	if sessions[0].SubjectID != sub.ID || !sessions[0].Date.Equal(date) {
		t.Errorf("untouched fields changed: %+v", sessions[0])
	}

	if err := s.UpdateStudySession("no-such-id", StudySessionPatch{Duration: &duration}); err != nil {
		t.Fatalf("UpdateStudySession (unknown id): %v", err)
	}
	if err := s.DeleteStudySession("no-such-id"); err != nil {
		t.Fatalf("DeleteStudySession (unknown id): %v", err)
	}
	if got := len(s.StudySessions()); got != 1 {
		t.Fatalf("collection changed by no-op: %d sessions", got)
	}

	if err := s.DeleteStudySession(sess.ID); err != nil {
		t.Fatalf("DeleteStudySession: %v", err)
	}
	if got := len(s.StudySessions()); got != 0 {
		t.Errorf("expected empty collection, got %d sessions", got)
	}
}

func TestChaptersBySubjectSortsByOrder(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "CS")

	for _, order := range []int{3, 1, 2} {
		if _, err := s.AddChapter(models.Chapter{SubjectID: sub.ID, Title: "ch", Order: order, Status: models.StatusPending}); err != nil {
			t.Fatal(err)
		}
	}

	chapters := s.ChaptersBySubject(sub.ID)
	if len(chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(chapters))
	}
	for i, want := range []int{1, 2, 3} {
		if chapters[i].Order != want {
			t.Errorf("chapters[%d].Order = %d, want %d", i, chapters[i].Order, want)
		}
	}
}

func TestAddChapterAssignsNextOrder(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "Math")

	first, err := s.AddChapter(models.Chapter{SubjectID: sub.ID, Title: "Limits", Status: models.StatusPending})
	if err != nil {
		t.Fatal(err)
	}
	if first.Order != 1 {
		t.Errorf("first chapter Order = %d, want 1", first.Order)
	}

	if _, err := s.AddChapter(models.Chapter{SubjectID: sub.ID, Title: "Derivatives", Order: 3, Status: models.StatusPending}); err != nil {
		t.Fatal(err)
	}
	next, err := s.AddChapter(models.Chapter{SubjectID: sub.ID, Title: "Integrals", Status: models.StatusPending})
	if err != nil {
		t.Fatal(err)
	}
	if next.Order != 4 {
		t.Errorf("after max order 3, new chapter Order = %d, want 4", next.Order)
	}
}

func TestMalformedStorageFallsBackEmpty(t *testing.T) {
	backend := newMemBackend()
	backend.data[storage.KeySubjects] = []byte("{not json")
	backend.data[storage.KeyAssignments] = []byte(`[{"id":"bare-array-no-envelope"}]`)
	backend.data[storage.KeyChapters] = []byte(`{"version":99,"records":[]}`)

	s := New(backend)

	if n := len(s.Subjects()); n != 0 {
		t.Errorf("garbage subjects entry: got %d records, want 0", n)
	}
	if n := len(s.Assignments()); n != 0 {
		t.Errorf("unversioned assignments entry: got %d records, want 0", n)
	}
	if n := len(s.Chapters()); n != 0 {
		t.Errorf("future-version chapters entry: got %d records, want 0", n)
	}

	// A broken load must not block new writes.
	if _, err := s.AddSubject(models.Subject{Name: "Fresh", Color: models.ColorDefault}); err != nil {
		t.Fatalf("AddSubject after bad load: %v", err)
	}
}
