package store

import (
	"fmt"
	"testing"
	"time"

	"studydesk/internal/models"
)

func TestUpcomingAssignmentsCapAndOrder(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "Physics")

	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < 8; i++ {
		if _, err := s.AddAssignment(models.Assignment{
			SubjectID: sub.ID,
			Title:     fmt.Sprintf("hw-%d", i),
			DueDate:   base.AddDate(0, 0, 7-i), // later first, to exercise sorting
			Status:    models.StatusPending,
			Priority:  models.PriorityMedium,
		}); err != nil {
			t.Fatal(err)
		}
	}
	// Completed work never shows up, however early it is due.
	if _, err := s.AddAssignment(models.Assignment{
		SubjectID: sub.ID,
		Title:     "done",
		DueDate:   base.AddDate(0, 0, -30),
		Status:    models.StatusCompleted,
		Priority:  models.PriorityMedium,
	}); err != nil {
		t.Fatal(err)
	}

	upcoming := s.UpcomingAssignments()
	if len(upcoming) != 5 {
		t.Fatalf("expected 5 upcoming, got %d", len(upcoming))
	}
	for i := 1; i < len(upcoming); i++ {
		if upcoming[i].DueDate.Before(upcoming[i-1].DueDate) {
			t.Fatalf("upcoming not sorted ascending at %d", i)
		}
	}
	if upcoming[0].Title != "hw-7" {
		t.Errorf("earliest upcoming = %q, want hw-7", upcoming[0].Title)
	}
	for _, a := range upcoming {
		if a.Status == models.StatusCompleted {
			t.Error("completed assignment in upcoming list")
		}
	}
}

func TestOverdueBoundary(t *testing.T) {
	now := time.Date(2025, 4, 15, 8, 30, 0, 0, time.Local)

	yesterday := models.Assignment{DueDate: now.AddDate(0, 0, -1), Status: models.StatusPending}
	if !Overdue(yesterday, now) {
		t.Error("due yesterday should be overdue")
	}

	// Due later today, even at a time already past, is not overdue.
	todayEarly := models.Assignment{
		DueDate: time.Date(2025, 4, 15, 0, 1, 0, 0, time.Local),
		Status:  models.StatusInProgress,
	}
	if Overdue(todayEarly, now) {
		t.Error("due today should not be overdue")
	}

	completed := models.Assignment{DueDate: now.AddDate(0, 0, -10), Status: models.StatusCompleted}
	if Overdue(completed, now) {
		t.Error("completed assignment should never be overdue")
	}
}

func TestTodaySlotsSortedByStart(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "Math")

	for _, slot := range []models.TimetableSlot{
		{SubjectID: sub.ID, Day: models.Monday, StartTime: "10:00", EndTime: "11:00"},
		{SubjectID: sub.ID, Day: models.Monday, StartTime: "08:00", EndTime: "09:00"},
		{SubjectID: sub.ID, Day: models.Tuesday, StartTime: "09:00", EndTime: "10:00"},
	} {
		if _, err := s.AddTimetableSlot(slot); err != nil {
			t.Fatal(err)
		}
	}

	monday := time.Date(2025, 1, 13, 10, 0, 0, 0, time.Local) // a Monday
	today := s.TodaySlots(monday)
	if len(today) != 2 {
		t.Fatalf("expected 2 slots on Monday, got %d", len(today))
	}
	if today[0].StartTime != "08:00" || today[1].StartTime != "10:00" {
		t.Errorf("slots not sorted by start time: %+v", today)
	}

	sunday := time.Date(2025, 1, 12, 10, 0, 0, 0, time.Local)
	if got := s.TodaySlots(sunday); len(got) != 0 {
		t.Errorf("expected no slots on Sunday, got %d", len(got))
	}
}

func TestChapterProgress(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "Biology")

	if got := s.ChapterProgress(sub.ID); got != 0 {
		t.Errorf("progress with no chapters = %d, want 0", got)
	}

	statuses := []models.WorkStatus{
		models.StatusCompleted, models.StatusCompleted,
		models.StatusPending, models.StatusInProgress,
	}
	for _, status := range statuses {
		if _, err := s.AddChapter(models.Chapter{SubjectID: sub.ID, Title: "ch", Status: status}); err != nil {
			t.Fatal(err)
		}
	}

	if got := s.ChapterProgress(sub.ID); got != 50 {
		t.Errorf("progress 2/4 = %d, want 50", got)
	}
}

func TestWeeklyStats(t *testing.T) {
	s := New(newMemBackend())
	subA := mustAddSubject(t, s, "A")
	subB := mustAddSubject(t, s, "B")

	// 2025-01-15 is a Wednesday; the week runs Mon Jan 13 – Sun Jan 19.
	now := time.Date(2025, 1, 15, 18, 0, 0, 0, time.Local)

	sessions := []models.StudySession{
		{SubjectID: subA.ID, Date: time.Date(2025, 1, 13, 9, 0, 0, 0, time.Local), Duration: 40},
		{SubjectID: subA.ID, Date: time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local), Duration: 20},
		{SubjectID: subB.ID, Date: time.Date(2025, 1, 12, 9, 0, 0, 0, time.Local), Duration: 30}, // prior Sunday
	}
	for _, sess := range sessions {
		if _, err := s.AddStudySession(sess); err != nil {
			t.Fatal(err)
		}
	}

	stats := s.WeeklyStats(now)
	if stats.TotalMinutes != 60 {
		t.Errorf("TotalMinutes = %d, want 60", stats.TotalMinutes)
	}
	if len(stats.Subjects) != 1 {
		t.Fatalf("expected 1 ranked subject, got %d", len(stats.Subjects))
	}
	if stats.Subjects[0].SubjectID != subA.ID {
		t.Errorf("ranked subject = %q, want %q", stats.Subjects[0].SubjectID, subA.ID)
	}
	if stats.Subjects[0].Percent != 100 {
		t.Errorf("subject share = %v%%, want 100", stats.Subjects[0].Percent)
	}

	if start := stats.Start; start.Weekday() != time.Monday || start.Day() != 13 {
		t.Errorf("week start = %v, want Monday Jan 13", start)
	}
}

func TestWeeklyStatsEmptyWeek(t *testing.T) {
	s := New(newMemBackend())

	stats := s.WeeklyStats(time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local))
	if stats.TotalMinutes != 0 || len(stats.Subjects) != 0 {
		t.Errorf("empty week should have no totals: %+v", stats)
	}
}

func TestWeeklyStatsTopFive(t *testing.T) {
	s := New(newMemBackend())
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)

	for i := 0; i < 6; i++ {
		sub := mustAddSubject(t, s, fmt.Sprintf("S%d", i))
		if _, err := s.AddStudySession(models.StudySession{
			SubjectID: sub.ID,
			Date:      now,
			Duration:  10 * (i + 1),
		}); err != nil {
			t.Fatal(err)
		}
	}

	stats := s.WeeklyStats(now)
	if len(stats.Subjects) != 5 {
		t.Fatalf("expected top 5 subjects, got %d", len(stats.Subjects))
	}
	for i := 1; i < len(stats.Subjects); i++ {
		if stats.Subjects[i].Minutes > stats.Subjects[i-1].Minutes {
			t.Fatalf("subjects not ranked descending at %d", i)
		}
	}
	if stats.Subjects[0].Minutes != 60 {
		t.Errorf("top subject minutes = %d, want 60", stats.Subjects[0].Minutes)
	}
}

func TestSlotOccupancy(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "Chemistry")

	slot, err := s.AddTimetableSlot(models.TimetableSlot{
		SubjectID: sub.ID,
		Day:       models.Monday,
		StartTime: "09:00",
		EndTime:   "11:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Occupied hours are [startHour, endHour).
	for _, hour := range []int{9, 10} {
		if got := s.SlotAt(models.Monday, hour); got == nil || got.ID != slot.ID {
			t.Errorf("SlotAt(monday, %d) = %v, want slot", hour, got)
		}
	}
	for _, hour := range []int{8, 11} {
		if got := s.SlotAt(models.Monday, hour); got != nil {
			t.Errorf("SlotAt(monday, %d) occupied, want empty", hour)
		}
	}
	if s.SlotAt(models.Tuesday, 9) != nil {
		t.Error("slot leaked onto another day")
	}

	if !s.SlotStartsAt(models.Monday, 9) {
		t.Error("start hour not recognized")
	}
	if s.SlotStartsAt(models.Monday, 10) {
		t.Error("continuation hour reported as start")
	}

	if span := SlotSpan(*slot); span != 2 {
		t.Errorf("SlotSpan = %d, want 2", span)
	}
}

func TestDashboardCounters(t *testing.T) {
	s := New(newMemBackend())
	sub := mustAddSubject(t, s, "CS")
	now := time.Date(2025, 2, 1, 10, 0, 0, 0, time.Local)

	for _, status := range []models.WorkStatus{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		if _, err := s.AddAssignment(models.Assignment{SubjectID: sub.ID, Title: "hw", DueDate: now, Status: status, Priority: models.PriorityLow}); err != nil {
			t.Fatal(err)
		}
	}
	for _, status := range []models.ExperimentStatus{models.ExperimentUpcoming, models.ExperimentCompleted} {
		if _, err := s.AddExperiment(models.Experiment{SubjectID: sub.ID, Title: "lab", Date: now, Status: status}); err != nil {
			t.Fatal(err)
		}
	}
	for _, minutes := range []int{25, 35} {
		if _, err := s.AddStudySession(models.StudySession{SubjectID: sub.ID, Date: now, Duration: minutes}); err != nil {
			t.Fatal(err)
		}
	}

	if got := s.PendingAssignmentCount(); got != 2 {
		t.Errorf("PendingAssignmentCount = %d, want 2", got)
	}
	if got := s.UpcomingExperimentCount(); got != 1 {
		t.Errorf("UpcomingExperimentCount = %d, want 1", got)
	}
	if got := s.TotalStudyMinutes(); got != 60 {
		t.Errorf("TotalStudyMinutes = %d, want 60", got)
	}
}
