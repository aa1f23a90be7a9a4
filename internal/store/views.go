package store

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"studydesk/internal/models"
)

// upcomingLimit caps the dashboard's upcoming-assignments list.
const upcomingLimit = 5

// UpcomingAssignments returns non-completed assignments sorted ascending by
// due date, capped to the five earliest.
func (s *Store) UpcomingAssignments() []models.Assignment {
	var out []models.Assignment
	for _, a := range s.assignments {
		if a.Status != models.StatusCompleted {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b models.Assignment) int {
		return a.DueDate.Compare(b.DueDate)
	})
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}

// Overdue reports whether a non-completed assignment's due day precedes
// now's calendar day. Granularity is whole days: due today is not overdue.
func Overdue(a models.Assignment, now time.Time) bool {
	if a.Status == models.StatusCompleted {
		return false
	}
	return startOfDay(a.DueDate).Before(startOfDay(now))
}

// TodaySlots returns the timetable slots for now's weekday, sorted ascending
// by start time. Sundays have no schedulable slots.
func (s *Store) TodaySlots(now time.Time) []models.TimetableSlot {
	day, ok := models.DayOf(now)
	if !ok {
		return nil
	}
	var out []models.TimetableSlot
	for _, t := range s.timetable {
		if t.Day == day {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.TimetableSlot) int {
		return strings.Compare(a.StartTime, b.StartTime)
	})
	return out
}

// ChapterProgress returns the subject's completion percentage, rounded to
// the nearest integer. A subject without chapters is 0%, not an error.
func (s *Store) ChapterProgress(subjectID string) int {
	total, completed := 0, 0
	for _, c := range s.chapters {
		if c.SubjectID != subjectID {
			continue
		}
		total++
		if c.Status == models.StatusCompleted {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// SubjectMinutes is one subject's share of a week's study time.
type SubjectMinutes struct {
	SubjectID string
	Minutes   int
	Percent   float64
}

// WeekStats aggregates the study sessions of one week.
type WeekStats struct {
	Start        time.Time // Monday 00:00
	End          time.Time // the following Sunday
	TotalMinutes int
	Subjects     []SubjectMinutes // descending by minutes, top five
}

// weeklyTop caps the per-subject ranking in WeeklyStats.
const weeklyTop = 5

// WeeklyStats sums the durations of sessions falling in now's week (Monday
// through Sunday, local time), in total and per subject. Subjects are ranked
// descending by minutes and truncated to the top five.
func (s *Store) WeeklyStats(now time.Time) WeekStats {
	start := startOfWeek(now)
	end := start.AddDate(0, 0, 7)

	stats := WeekStats{Start: start, End: start.AddDate(0, 0, 6)}
	bySubject := make(map[string]int)
	for _, sess := range s.studySessions {
		if sess.Date.Before(start) || !sess.Date.Before(end) {
			continue
		}
		stats.TotalMinutes += sess.Duration
		bySubject[sess.SubjectID] += sess.Duration
	}

	for id, minutes := range bySubject {
		stats.Subjects = append(stats.Subjects, SubjectMinutes{SubjectID: id, Minutes: minutes})
	}
	slices.SortFunc(stats.Subjects, func(a, b SubjectMinutes) int {
		if a.Minutes != b.Minutes {
			return b.Minutes - a.Minutes
		}
		return strings.Compare(a.SubjectID, b.SubjectID)
	})
	if len(stats.Subjects) > weeklyTop {
		stats.Subjects = stats.Subjects[:weeklyTop]
	}
	if stats.TotalMinutes > 0 {
		for i := range stats.Subjects {
			stats.Subjects[i].Percent = 100 * float64(stats.Subjects[i].Minutes) / float64(stats.TotalMinutes)
		}
	}
	return stats
}

// SlotAt returns the slot occupying the given day and whole hour, if any.
// A slot occupies hours in [startHour, endHour).
func (s *Store) SlotAt(day models.Weekday, hour int) *models.TimetableSlot {
	for i := range s.timetable {
		t := &s.timetable[i]
		if t.Day == day && hour >= HourOf(t.StartTime) && hour < HourOf(t.EndTime) {
			slot := *t
			return &slot
		}
	}
	return nil
}

// SlotStartsAt reports whether some slot on the given day starts at the
// given hour; the start cell is the only one that renders slot content.
func (s *Store) SlotStartsAt(day models.Weekday, hour int) bool {
	for _, t := range s.timetable {
		if t.Day == day && HourOf(t.StartTime) == hour {
			return true
		}
	}
	return false
}

// SlotSpan is a slot's rendered height in grid rows.
func SlotSpan(t models.TimetableSlot) int {
	return HourOf(t.EndTime) - HourOf(t.StartTime)
}

// HourOf extracts the hour from an "HH:MM" string. Malformed times count as
// hour 0.
func HourOf(hhmm string) int {
	h, _, _ := strings.Cut(hhmm, ":")
	n, _ := strconv.Atoi(h)
	return n
}

// PendingAssignmentCount counts assignments not yet completed.
func (s *Store) PendingAssignmentCount() int {
	n := 0
	for _, a := range s.assignments {
		if a.Status != models.StatusCompleted {
			n++
		}
	}
	return n
}

// UpcomingExperimentCount counts experiments still marked upcoming.
func (s *Store) UpcomingExperimentCount() int {
	n := 0
	for _, e := range s.experiments {
		if e.Status == models.ExperimentUpcoming {
			n++
		}
	}
	return n
}

// TotalStudyMinutes sums every recorded session, regardless of week.
func (s *Store) TotalStudyMinutes() int {
	n := 0
	for _, sess := range s.studySessions {
		n += sess.Duration
	}
	return n
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday 00:00 at or before t, local time.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
