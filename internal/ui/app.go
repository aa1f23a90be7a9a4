package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"studydesk/internal/store"
	"studydesk/internal/ui/styles"
	"studydesk/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewDashboard View = iota
	ViewSubjects
	ViewAssignments
	ViewExperiments
	ViewTimetable
	ViewStudy
	ViewChapters
)

// tabs in switcher order; chapters is reached through subjects, not a tab.
var tabs = []struct {
	view  View
	label string
	key   string
}{
	{ViewDashboard, "Dashboard", "1"},
	{ViewSubjects, "Subjects", "2"},
	{ViewAssignments, "Assignments", "3"},
	{ViewExperiments, "Experiments", "4"},
	{ViewTimetable, "Timetable", "5"},
	{ViewStudy, "Study", "6"},
}

// view is what the App needs from a screen. Capturing reports whether the
// screen is in a text-entry or confirm mode, in which case the App keeps its
// tab-switching keys to itself.
type view interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
	Capturing() bool
}

type App struct {
	store       *store.Store
	styles      *styles.Styles
	currentView View
	dashboard   *views.DashboardView
	subjects    *views.SubjectListView
	assignments *views.AssignmentListView
	experiments *views.ExperimentListView
	timetable   *views.TimetableView
	study       *views.StudyView
	chapters    *views.ChapterListView
	width       int
	height      int
}

// NewApp creates the root model.
func NewApp(st *store.Store) *App {
	return &App{
		store:       st,
		styles:      styles.NewStyles(),
		currentView: ViewDashboard,
		dashboard:   views.NewDashboardView(st),
		subjects:    views.NewSubjectListView(st),
		assignments: views.NewAssignmentListView(st),
		experiments: views.NewExperimentListView(st),
		timetable:   views.NewTimetableView(st),
		study:       views.NewStudyView(st),
	}
}

func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

func (a *App) active() view {
	switch a.currentView {
	case ViewSubjects:
		return a.subjects
	case ViewAssignments:
		return a.assignments
	case ViewExperiments:
		return a.experiments
	case ViewTimetable:
		return a.timetable
	case ViewStudy:
		return a.study
	case ViewChapters:
		return a.chapters
	}
	return a.dashboard
}

// switchTo activates a view, refreshing its data and replaying the window
// size so it lays out correctly.
func (a *App) switchTo(v View) tea.Cmd {
	a.currentView = v
	return tea.Batch(
		a.active().Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.OpenChapters:
		a.chapters = views.NewChapterListView(a.store, msg.Subject)
		return a, a.switchTo(ViewChapters)

	case views.BackToSubjects:
		return a, a.switchTo(ViewSubjects)

	case tea.KeyMsg:
		if !a.active().Capturing() {
			for _, t := range tabs {
				if msg.String() == t.key {
					return a, a.switchTo(t.view)
				}
			}
			if msg.String() == "tab" && a.currentView != ViewChapters {
				for i, t := range tabs {
					if t.view == a.currentView {
						return a, a.switchTo(tabs[(i+1)%len(tabs)].view)
					}
				}
			}
		}
	}

	var cmd tea.Cmd
	_, cmd = a.active().Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.renderTabs() + "\n" + a.active().View()
}

func (a *App) renderTabs() string {
	s := a.styles
	out := ""
	current := a.currentView
	if current == ViewChapters {
		current = ViewSubjects
	}
	for _, t := range tabs {
		label := t.key + " " + t.label
		if t.view == current {
			out += s.TabActive.Render(label)
		} else {
			out += s.Tab.Render(label)
		}
	}
	return out
}
