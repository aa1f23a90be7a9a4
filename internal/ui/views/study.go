package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studydesk/internal/models"
	"studydesk/internal/store"
	"studydesk/internal/timer"
	"studydesk/internal/ui/keys"
	"studydesk/internal/ui/styles"
)

// StudyView hosts the study timer and the weekly statistics.
type StudyView struct {
	store      *store.Store
	timer      timer.Timer
	styles     *styles.Styles
	keys       keys.KeyMap
	width      int
	height     int
	subjects   []models.Subject
	subjectIdx int
	tickGen    int
	stats      store.WeekStats
	loaded     bool
	lastErr    error
}

// NewStudyView creates the study screen.
func NewStudyView(st *store.Store) *StudyView {
	return &StudyView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *StudyView) Init() tea.Cmd {
	return v.loadStudy
}

type studyLoadedMsg struct {
	subjects []models.Subject
	stats    store.WeekStats
}

func (v *StudyView) loadStudy() tea.Msg {
	return studyLoadedMsg{
		subjects: v.store.Subjects(),
		stats:    v.store.WeeklyStats(time.Now()),
	}
}

// tickMsg drives the timer at one-second resolution. The generation is
// bumped whenever the timer restarts, so a chain left over from before a
// reset can't double the clock rate.
type tickMsg struct {
	gen int
}

func studyTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Capturing is always false: the study screen has no text inputs.
func (v *StudyView) Capturing() bool { return false }

func (v *StudyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case studyLoadedMsg:
		v.subjects = msg.subjects
		v.stats = msg.stats
		v.subjectIdx = clamp(v.subjectIdx, 0, max(0, len(v.subjects)-1))
		v.loaded = true
		return v, nil

	case tickMsg:
		if msg.gen != v.tickGen {
			return v, nil
		}
		v.timer.Tick(time.Second)
		if v.timer.State() != timer.Idle {
			return v, studyTick(msg.gen)
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Left):
			if v.timer.State() == timer.Idle && len(v.subjects) > 0 {
				v.subjectIdx = (v.subjectIdx + len(v.subjects) - 1) % len(v.subjects)
			}
		case key.Matches(msg, v.keys.Right):
			if v.timer.State() == timer.Idle && len(v.subjects) > 0 {
				v.subjectIdx = (v.subjectIdx + 1) % len(v.subjects)
			}

		case msg.String() == "s", key.Matches(msg, v.keys.Enter):
			if len(v.subjects) > 0 && v.timer.Start(v.subjects[v.subjectIdx].ID) {
				v.tickGen++
				return v, studyTick(v.tickGen)
			}

		case key.Matches(msg, v.keys.Cycle):
			switch v.timer.State() {
			case timer.Running:
				v.timer.Pause()
			case timer.Paused:
				v.timer.Resume()
			}

		case msg.String() == "r":
			v.timer.Reset()
			v.tickGen++

		case msg.String() == "c":
			if sess, ok := v.timer.Commit(time.Now()); ok {
				v.tickGen++
				_, v.lastErr = v.store.AddStudySession(sess)
				return v, v.loadStudy
			}
		}
	}
	return v, nil
}

func (v *StudyView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	panelWidth := clamp(contentWidth/2-2, 28, 44)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderTimer(panelWidth),
		" ",
		v.renderStats(panelWidth),
	)

	parts := []string{
		s.Title.Render("Study Tracker"),
		"",
		panels,
		"",
		v.renderHelp(),
	}
	if v.lastErr != nil {
		parts = append(parts, s.Error.Render(v.lastErr.Error()))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return styles.CenterView(s.List.Render(content), v.width, v.height)
}

func (v *StudyView) renderTimer(width int) string {
	s := v.styles

	if len(v.subjects) == 0 {
		return s.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Timer"),
			"",
			s.TitleMuted.Render("Add subjects first to track study time"),
		))
	}

	subject := v.subjects[v.subjectIdx]
	subjectLine := lipgloss.NewStyle().
		Foreground(styles.SubjectColor(subject.Color)).
		Render("● " + subject.Name)
	if v.timer.State() == timer.Idle {
		subjectLine = "‹ " + subjectLine + " ›"
	}

	state := "idle"
	switch v.timer.State() {
	case timer.Running:
		state = "running"
	case timer.Paused:
		state = "paused"
	}

	return s.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Timer"),
		"",
		subjectLine,
		"",
		s.CardValue.Render(formatClock(v.timer.Elapsed()))+" "+s.TitleMuted.Render(state),
	))
}

func (v *StudyView) renderStats(width int) string {
	s := v.styles

	lines := []string{s.Title.Render("This Week"), ""}
	lines = append(lines,
		s.CardValue.Render(formatMinutes(v.stats.TotalMinutes)),
		s.TitleMuted.Render("total study time"),
		"",
	)

	if len(v.stats.Subjects) == 0 {
		lines = append(lines, s.TitleMuted.Render("No sessions recorded this week"))
	}
	barWidth := clamp(width-14, 8, 20)
	for _, sm := range v.stats.Subjects {
		lines = append(lines,
			fmt.Sprintf("%s %s", subjectName(v.store, sm.SubjectID), s.TitleMuted.Render(formatMinutes(sm.Minutes))),
			s.TitleMuted.Render(progressBar(sm.Percent, barWidth))+fmt.Sprintf(" %.0f%%", sm.Percent),
		)
	}

	lines = append(lines, "",
		s.TitleMuted.Render(fmt.Sprintf("Week of %s – %s",
			v.stats.Start.Format("Jan 2"), v.stats.End.Format("Jan 2"))))

	return s.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *StudyView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s subject • %s start • %s pause/resume • %s reset • %s save session • %s quit",
			v.styles.HelpKey.Render("←/→"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("c"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
