package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studydesk/internal/models"
	"studydesk/internal/store"
	"studydesk/internal/ui/keys"
	"studydesk/internal/ui/styles"
)

// ExperimentListView shows lab experiments ordered by date.
type ExperimentListView struct {
	store       *store.Store
	experiments []models.Experiment
	styles      *styles.Styles
	keys        keys.KeyMap
	width       int
	height      int
	cursor      int
	lastErr     error

	creating   bool
	focusIdx   int // 0=subject, 1=title, 2=description, 3=date, 4=lab, 5=save
	subjects   []models.Subject
	subjectIdx int
	newTitle   textinput.Model
	newDesc    textinput.Model
	newDate    textinput.Model
	newLab     textinput.Model
	formErr    string

	confirmingDelete bool
	deleteTargetID   string
}

// NewExperimentListView creates the experiments screen.
func NewExperimentListView(st *store.Store) *ExperimentListView {
	newTitle := textinput.New()
	newTitle.Placeholder = "Experiment title"
	newTitle.CharLimit = 200

	newDesc := textinput.New()
	newDesc.Placeholder = "Description (optional)"
	newDesc.CharLimit = 200

	newDate := textinput.New()
	newDate.Placeholder = "2025-01-31"
	newDate.CharLimit = 10

	newLab := textinput.New()
	newLab.Placeholder = "Lab number (optional)"
	newLab.CharLimit = 20

	return &ExperimentListView{
		store:    st,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		newTitle: newTitle,
		newDesc:  newDesc,
		newDate:  newDate,
		newLab:   newLab,
	}
}

func (v *ExperimentListView) Init() tea.Cmd {
	return v.loadExperiments
}

type experimentsLoadedMsg struct {
	experiments []models.Experiment
}

func (v *ExperimentListView) loadExperiments() tea.Msg {
	experiments := v.store.Experiments()
	slices.SortFunc(experiments, func(a, b models.Experiment) int {
		return a.Date.Compare(b.Date)
	})
	return experimentsLoadedMsg{experiments: experiments}
}

// Capturing reports whether a form or confirm dialog is open.
func (v *ExperimentListView) Capturing() bool {
	return v.creating || v.confirmingDelete
}

func (v *ExperimentListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case experimentsLoadedMsg:
		v.experiments = msg.experiments
		v.cursor = clamp(v.cursor, 0, max(0, len(v.experiments)-1))
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
			v.cursor = min(len(v.experiments)-1, v.cursor+1)
		case key.Matches(msg, v.keys.New):
			v.subjects = v.store.Subjects()
			if len(v.subjects) == 0 {
				v.lastErr = fmt.Errorf("add a subject first")
				return v, nil
			}
			v.creating = true
			v.focusIdx = 0
			v.subjectIdx = 0
			v.formErr = ""
			v.lastErr = nil
			v.newTitle.Reset()
			v.newDesc.Reset()
			v.newDate.Reset()
			v.newLab.Reset()
			return v, nil
		case key.Matches(msg, v.keys.Cycle):
			if v.cursor < len(v.experiments) {
				e := v.experiments[v.cursor]
				next := models.ExperimentUpcoming
				if e.Status == models.ExperimentUpcoming {
					next = models.ExperimentCompleted
				}
				v.lastErr = v.store.UpdateExperiment(e.ID, store.ExperimentPatch{Status: &next})
				return v, v.loadExperiments
			}
		case key.Matches(msg, v.keys.Delete):
			if v.cursor < len(v.experiments) {
				v.confirmingDelete = true
				v.deleteTargetID = v.experiments[v.cursor].ID
				return v, nil
			}
		}
	}
	return v, nil
}

func (v *ExperimentListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.lastErr = v.store.DeleteExperiment(v.deleteTargetID)
		v.confirmingDelete = false
		return v, v.loadExperiments
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ExperimentListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveExperiment()

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
		return v, v.saveExperiment()
	}

	if v.focusIdx == 0 {
		switch msg.String() {
		case "left", "h":
			v.subjectIdx = (v.subjectIdx + len(v.subjects) - 1) % len(v.subjects)
			return v, nil
		case "right", "l", " ":
			v.subjectIdx = (v.subjectIdx + 1) % len(v.subjects)
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
		v.newDate, cmd = v.newDate.Update(msg)
	case 4:
		v.newLab, cmd = v.newLab.Update(msg)
	}
	return v, cmd
}

func (v *ExperimentListView) saveExperiment() tea.Cmd {
	title := strings.TrimSpace(v.newTitle.Value())
	if title == "" {
		v.formErr = "title is required"
		return nil
	}
	date, err := parseDateTime(v.newDate.Value())
	if err != nil {
		v.formErr = "date must be YYYY-MM-DD"
		return nil
	}
	_, err = v.store.AddExperiment(models.Experiment{
		SubjectID:   v.subjects[v.subjectIdx].ID,
		Title:       title,
		Description: strings.TrimSpace(v.newDesc.Value()),
		Date:        date,
		Status:      models.ExperimentUpcoming,
		LabNumber:   strings.TrimSpace(v.newLab.Value()),
	})
	if err != nil {
		v.lastErr = err
		return nil
	}
	v.creating = false
	return v.loadExperiments
}

func (v *ExperimentListView) updateFocus() {
	v.newTitle.Blur()
	v.newDesc.Blur()
	v.newDate.Blur()
	v.newLab.Blur()
	switch v.focusIdx {
	case 1:
		v.newTitle.Focus()
	case 2:
		v.newDesc.Focus()
	case 3:
		v.newDate.Focus()
	case 4:
		v.newLab.Focus()
	}
}

func (v *ExperimentListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.creating {
		return v.renderCreateForm()
	}

	s := v.styles

	var rows []string
	if len(v.experiments) == 0 {
		rows = append(rows, s.TitleMuted.Render("No experiments. Press 'n' to add one."))
	}
	for i, e := range v.experiments {
		glyph := "[ ]"
		if e.Status == models.ExperimentCompleted {
			glyph = "[x]"
		}
		line := fmt.Sprintf("%s %s %s %s",
			glyph,
			e.Title,
			s.TitleMuted.Render(subjectName(v.store, e.SubjectID)),
			s.Badge.Render(e.Date.Format("Jan 2")),
		)
		if e.LabNumber != "" {
			line += s.TitleMuted.Render(" · lab " + e.LabNumber)
		}
		if i == v.cursor {
			rows = append(rows, s.ListSelected.Render(line))
		} else {
			rows = append(rows, s.ListItem.Render(line))
		}
	}

	parts := []string{
		s.Title.Render("Experiments"),
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

func (v *ExperimentListView) renderCreateForm() string {
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

	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{
		s.Title.Render("New Experiment"),
		"",
		"Subject:",
		subjectLine,
		"Title:",
		inputStyle(1).Width(inputWidth).Render(v.newTitle.View()),
		"Description:",
		inputStyle(2).Width(inputWidth).Render(v.newDesc.View()),
		"Date (YYYY-MM-DD):",
		inputStyle(3).Width(inputWidth).Render(v.newDate.View()),
		"Lab number:",
		inputStyle(4).Width(inputWidth).Render(v.newLab.View()),
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
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

func (v *ExperimentListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s toggle done • %s new • %s del • %s quit",
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *ExperimentListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Experiment?"),
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
