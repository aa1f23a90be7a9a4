package views

import (
	"fmt"
	"strings"
	"time"

	"studydesk/internal/models"
	"studydesk/internal/store"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// subjectName resolves a subject id for display.
func subjectName(st *store.Store, id string) string {
	if sub := st.GetSubjectByID(id); sub != nil {
		return sub.Name
	}
	return "Unknown"
}

// dueLabel renders a due date relative to now: Today, Tomorrow, Overdue, a
// day count inside a week, or the date itself. Days are counted by calendar
// arithmetic, so a DST transition can't shift the label.
func dueLabel(due, now time.Time) string {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dueDay.Before(today) {
		return "Overdue"
	}
	days := 0
	for d := today; d.Before(dueDay); d = d.AddDate(0, 0, 1) {
		days++
		if days > 7 {
			return due.Format("Jan 2")
		}
	}
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	return fmt.Sprintf("%d days", days)
}

// formatMinutes renders a duration like "2h 5m" or "45m".
func formatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// formatClock renders elapsed seconds as MM:SS, or HH:MM:SS past an hour.
func formatClock(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// progressBar renders a filled bar of the given width for a 0-100 percent.
func progressBar(percent float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := clamp(int(percent/100*float64(width)+0.5), 0, width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// statusGlyph marks work status in lists.
func statusGlyph(s models.WorkStatus) string {
	switch s {
	case models.StatusCompleted:
		return "[x]"
	case models.StatusInProgress:
		return "[~]"
	}
	return "[ ]"
}

// parseDateTime accepts "YYYY-MM-DD HH:MM" or "YYYY-MM-DD" in local time.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// validClock accepts a wall-clock "HH:MM" between 00:00 and 23:59.
func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return false
	}
	return true
}
