package views

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studydesk/internal/models"
	"studydesk/internal/store"
	"studydesk/internal/ui/keys"
	"studydesk/internal/ui/styles"
)

// AssignmentListView shows every assignment ordered by due date.
type AssignmentListView struct {
	store       *store.Store
	assignments []models.Assignment
	styles      *styles.Styles
	keys        keys.KeyMap
	width       int
	height      int
	cursor      int
	now         time.Time
	lastErr     error

	creating    bool
	focusIdx    int // 0=subject, 1=title, 2=description, 3=due, 4=priority, 5=save
	subjects    []models.Subject
	subjectIdx  int
	priorityIdx int
	newTitle    textinput.Model
	newDesc     textinput.Model
	newDue      textinput.Model
	formErr     string

	confirmingDelete bool
	deleteTargetID   string
}

// NewAssignmentListView creates the assignments screen.
func NewAssignmentListView(st *store.Store) *AssignmentListView {
	newTitle := textinput.New()
	newTitle.Placeholder = "Assignment title"
	newTitle.CharLimit = 200

	newDesc := textinput.New()
	newDesc.Placeholder = "Description (optional)"
	newDesc.CharLimit = 200

	newDue := textinput.New()
	newDue.Placeholder = "2025-01-31 23:59"
	newDue.CharLimit = 16

	return &AssignmentListView{
		store:    st,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		newTitle: newTitle,
		newDesc:  newDesc,
		newDue:   newDue,
	}
}

func (v *AssignmentListView) Init() tea.Cmd {
	return v.loadAssignments
}

type assignmentsLoadedMsg struct {
	assignments []models.Assignment
	now         time.Time
}

func (v *AssignmentListView) loadAssignments() tea.Msg {
	assignments := v.store.Assignments()
	slices.SortFunc(assignments, func(a, b models.Assignment) int {
		return a.DueDate.Compare(b.DueDate)
	})
	return assignmentsLoadedMsg{assignments: assignments, now: time.Now()}
}

// Capturing reports whether a form or confirm dialog is open.
func (v *AssignmentListView) Capturing() bool {
	return v.creating || v.confirmingDelete
}

func (v *AssignmentListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case assignmentsLoadedMsg:
		v.assignments = msg.assignments
		v.now = msg.now
		v.cursor = clamp(v.cursor, 0, max(0, len(v.assignments)-1))
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Up):
			v.cursor = max(0, v.cursor-1)
		case key.Matches(msg, v.keys.Down):
			v.cursor = min(len(v.assignments)-1, v.cursor+1)
		case key.Matches(msg, v.keys.New):
			v.subjects = v.store.Subjects()
			if len(v.subjects) == 0 {
				v.lastErr = fmt.Errorf("add a subject first")
				return v, nil
			}
			v.creating = true
			v.focusIdx = 0
			v.subjectIdx = 0
			v.priorityIdx = 1 // medium
			v.formErr = ""
			v.lastErr = nil
			v.newTitle.Reset()
			v.newDesc.Reset()
			v.newDue.Reset()
			return v, nil
		case key.Matches(msg, v.keys.Cycle):
			if v.cursor < len(v.assignments) {
				a := v.assignments[v.cursor]
				next := nextStatus(a.Status)
				v.lastErr = v.store.UpdateAssignment(a.ID, store.AssignmentPatch{Status: &next})
				return v, v.loadAssignments
			}
		case key.Matches(msg, v.keys.Delete):
			if v.cursor < len(v.assignments) {
				v.confirmingDelete = true
				v.deleteTargetID = v.assignments[v.cursor].ID
				return v, nil
			}
		}
	}
	return v, nil
}

func (v *AssignmentListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.lastErr = v.store.DeleteAssignment(v.deleteTargetID)
		v.confirmingDelete = false
		return v, v.loadAssignments
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *AssignmentListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveAssignment()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 5) % 6
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 6
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 5 {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.saveAssignment()
	}

	switch v.focusIdx {
	case 0:
		switch msg.String() {
		case "left", "h":
			v.subjectIdx = (v.subjectIdx + len(v.subjects) - 1) % len(v.subjects)
			return v, nil
		case "right", "l", " ":
			v.subjectIdx = (v.subjectIdx + 1) % len(v.subjects)
			return v, nil
		}
	case 4:
		switch msg.String() {
		case "left", "h":
			v.priorityIdx = (v.priorityIdx + len(models.Priorities) - 1) % len(models.Priorities)
			return v, nil
		case "right", "l", " ":
			v.priorityIdx = (v.priorityIdx + 1) % len(models.Priorities)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 1:
		v.newTitle, cmd = v.newTitle.Update(msg)
	case 2:
		v.newDesc, cmd = v.newDesc.Update(msg)
	case 3:
		v.newDue, cmd = v.newDue.Update(msg)
	}
	return v, cmd
}

func (v *AssignmentListView) saveAssignment() tea.Cmd {
	title := strings.TrimSpace(v.newTitle.Value())
	if title == "" {
		v.formErr = "title is required"
		return nil
	}
	due, err := parseDateTime(v.newDue.Value())
	if err != nil {
		v.formErr = "due date must be YYYY-MM-DD or YYYY-MM-DD HH:MM"
		return nil
	}
	_, err = v.store.AddAssignment(models.Assignment{
		SubjectID:   v.subjects[v.subjectIdx].ID,
		Title:       title,
		Description: strings.TrimSpace(v.newDesc.Value()),
		DueDate:     due,
		Status:      models.StatusPending,
		Priority:    models.Priorities[v.priorityIdx],
	})
	if err != nil {
		v.lastErr = err
		return nil
	}
	v.creating = false
	return v.loadAssignments
}

func (v *AssignmentListView) updateFocus() {
	v.newTitle.Blur()
	v.newDesc.Blur()
	v.newDue.Blur()
	switch v.focusIdx {
	case 1:
		v.newTitle.Focus()
	case 2:
		v.newDesc.Focus()
	case 3:
		v.newDue.Focus()
	}
}

func (v *AssignmentListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.creating {
		return v.renderCreateForm()
	}

	s := v.styles

	var rows []string
	if len(v.assignments) == 0 {
		rows = append(rows, s.TitleMuted.Render("No assignments. Press 'n' to add one."))
	}
	for i, a := range v.assignments {
		badge := s.Badge
		label := dueLabel(a.DueDate, v.now)
		if store.Overdue(a, v.now) {
			badge = s.BadgeError
		} else if a.Priority == models.PriorityHigh {
			badge = s.BadgeWarning
		}
		line := fmt.Sprintf("%s %s %s %s %s",
			statusGlyph(a.Status),
			a.Title,
			s.TitleMuted.Render(subjectName(v.store, a.SubjectID)),
			badge.Render(string(a.Priority)),
			badge.Render(label),
		)
		if i == v.cursor {
			rows = append(rows, s.ListSelected.Render(line))
		} else {
			rows = append(rows, s.ListItem.Render(line))
		}
	}

	parts := []string{
		s.Title.Render("Assignments"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		v.renderHelp(),
	}
	if v.lastErr != nil {
		parts = append(parts, s.Error.Render(v.lastErr.Error()))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return styles.CenterView(s.List.Render(content), v.width, v.height)
}

func (v *AssignmentListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	inputStyle := func(idx int) lipgloss.Style {
		if v.focusIdx == idx {
			return s.InputFocused
		}
		return s.Input
	}
	btnStyle := s.Button
	if v.focusIdx == 5 {
		btnStyle = s.ButtonFocused
	}

	subjectLine := v.subjects[v.subjectIdx].Name
	if v.focusIdx == 0 {
		subjectLine = "‹ " + subjectLine + " ›"
	}
	priorityLine := string(models.Priorities[v.priorityIdx])
	if v.focusIdx == 4 {
		priorityLine = "‹ " + priorityLine + " ›"
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{
		s.Title.Render("New Assignment"),
		"",
		"Subject:",
		subjectLine,
		"Title:",
		inputStyle(1).Width(inputWidth).Render(v.newTitle.View()),
		"Description:",
		inputStyle(2).Width(inputWidth).Render(v.newDesc.View()),
		"Due (YYYY-MM-DD HH:MM):",
		inputStyle(3).Width(inputWidth).Render(v.newDue.View()),
		"Priority:",
		priorityLine,
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • ←/→: change choice • Ctrl+S: save • Esc: cancel"),
	}
	if v.formErr != "" {
		rows = append(rows, s.Error.Render(v.formErr))
	}
	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *AssignmentListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s status • %s new • %s del • %s quit",
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *AssignmentListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Assignment?"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
