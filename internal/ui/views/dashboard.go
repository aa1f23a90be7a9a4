package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studydesk/internal/models"
	"studydesk/internal/store"
	"studydesk/internal/ui/styles"
)

// DashboardView is the read-only overview screen.
type DashboardView struct {
	store  *store.Store
	styles *styles.Styles
	width  int
	height int
	loaded bool

	now          time.Time
	subjectCount int
	pending      int
	upcomingLabs int
	totalMinutes int
	upcoming     []models.Assignment
	today        []models.TimetableSlot
}

// NewDashboardView creates the dashboard.
func NewDashboardView(st *store.Store) *DashboardView {
	return &DashboardView{
		store:  st,
		styles: styles.NewStyles(),
	}
}

func (v *DashboardView) Init() tea.Cmd {
	return v.loadStats
}

type statsLoadedMsg struct {
	now          time.Time
	subjectCount int
	pending      int
	upcomingLabs int
	totalMinutes int
	upcoming     []models.Assignment
	today        []models.TimetableSlot
}

func (v *DashboardView) loadStats() tea.Msg {
	now := time.Now()
	return statsLoadedMsg{
		now:          now,
		subjectCount: len(v.store.Subjects()),
		pending:      v.store.PendingAssignmentCount(),
		upcomingLabs: v.store.UpcomingExperimentCount(),
		totalMinutes: v.store.TotalStudyMinutes(),
		upcoming:     v.store.UpcomingAssignments(),
		today:        v.store.TodaySlots(now),
	}
}

// Capturing is always false: the dashboard has no input modes.
func (v *DashboardView) Capturing() bool { return false }

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case statsLoadedMsg:
		v.now = msg.now
		v.subjectCount = msg.subjectCount
		v.pending = msg.pending
		v.upcomingLabs = msg.upcomingLabs
		v.totalMinutes = msg.totalMinutes
		v.upcoming = msg.upcoming
		v.today = msg.today
		v.loaded = true

	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return v, tea.Quit
		}
	}
	return v, nil
}

func (v *DashboardView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderCard("Subjects", fmt.Sprintf("%d", v.subjectCount), "active courses"),
		v.renderCard("Pending", fmt.Sprintf("%d", v.pending), "assignments"),
		v.renderCard("Labs", fmt.Sprintf("%d", v.upcomingLabs), "upcoming"),
		v.renderCard("Study", fmt.Sprintf("%dh", v.totalMinutes/60), "total tracked"),
	)

	panelWidth := clamp(contentWidth/2-2, 28, 46)
	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderUpcoming(panelWidth),
		" ",
		v.renderToday(panelWidth),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Dashboard"),
		"",
		cards,
		"",
		panels,
	)
	return styles.CenterView(s.List.Render(content), v.width, v.height)
}

func (v *DashboardView) renderCard(title, value, subtitle string) string {
	s := v.styles
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.CardTitle.Render(title),
		s.CardValue.Render(value),
		s.TitleMuted.Render(subtitle),
	))
}

func (v *DashboardView) renderUpcoming(width int) string {
	s := v.styles

	lines := []string{s.Title.Render("Upcoming Assignments"), ""}
	if len(v.upcoming) == 0 {
		lines = append(lines, s.TitleMuted.Render("No upcoming assignments"))
	}
	for _, a := range v.upcoming {
		label := dueLabel(a.DueDate, v.now)
		badge := s.Badge
		if store.Overdue(a, v.now) {
			badge = s.BadgeError
		} else if a.Priority == models.PriorityHigh {
			badge = s.BadgeWarning
		}
		lines = append(lines,
			fmt.Sprintf("%s %s", a.Title, badge.Render(label)),
			s.TitleMuted.Render("  "+subjectName(v.store, a.SubjectID)+" · "+string(a.Priority)),
		)
	}
	return s.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *DashboardView) renderToday(width int) string {
	s := v.styles

	lines := []string{s.Title.Render("Today's Schedule"), ""}
	if len(v.today) == 0 {
		lines = append(lines, s.TitleMuted.Render("No classes today"))
	}
	for _, slot := range v.today {
		sub := v.store.GetSubjectByID(slot.SubjectID)
		name, color := "Unknown", models.ColorDefault
		if sub != nil {
			name, color = sub.Name, sub.Color
		}
		marker := lipgloss.NewStyle().Foreground(styles.SubjectColor(color)).Render("▌")
		line := fmt.Sprintf("%s%s–%s  %s", marker, slot.StartTime, slot.EndTime, name)
		if slot.Room != "" {
			line += s.TitleMuted.Render(" · " + slot.Room)
		}
		lines = append(lines, line)
	}
	return s.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
