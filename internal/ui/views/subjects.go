package views

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studydesk/internal/models"
	"studydesk/internal/store"
	"studydesk/internal/ui/keys"
	"studydesk/internal/ui/styles"
)

type subjectItem struct {
	subject  models.Subject
	progress int
	chapters int
}

func (i subjectItem) Title() string       { return i.subject.Name }
func (i subjectItem) Description() string { return i.subject.Code }
func (i subjectItem) FilterValue() string { return i.subject.Name }

type subjectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d subjectDelegate) Height() int                               { return 2 }
func (d subjectDelegate) Spacing() int                              { return 1 }
func (d subjectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d subjectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(subjectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	swatch := lipgloss.NewStyle().
		Foreground(styles.SubjectColor(it.subject.Color)).
		Render("●")

	header := swatch + " " + it.subject.Name
	if it.subject.Code != "" {
		header += " (" + it.subject.Code + ")"
	}

	details := []string{}
	if it.subject.Professor != "" {
		details = append(details, it.subject.Professor)
	}
	if it.subject.Credits > 0 {
		details = append(details, fmt.Sprintf("%d credits", it.subject.Credits))
	}
	if it.chapters > 0 {
		details = append(details, fmt.Sprintf("chapters %d%%", it.progress))
	}

	fmt.Fprintf(w, "%s\n%s",
		titleStyle.Render(header),
		descStyle.Render(strings.Join(details, " · ")))
}

// SubjectListView lists subjects; enter drills into chapters.
type SubjectListView struct {
	store    *store.Store
	list     list.Model
	delegate *subjectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool
	lastErr  error

	creating     bool
	focusIdx     int // 0=name, 1=code, 2=professor, 3=credits, 4=color, 5=save
	newName      textinput.Model
	newCode      textinput.Model
	newProfessor textinput.Model
	newCredits   textinput.Model
	colorIdx     int

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

// OpenChapters asks the app to show the chapter list for a subject.
type OpenChapters struct {
	Subject models.Subject
}

// NewSubjectListView creates the subjects screen.
func NewSubjectListView(st *store.Store) *SubjectListView {
	s := styles.NewStyles()

	newName := textinput.New()
	newName.Placeholder = "Subject name"
	newName.CharLimit = 100

	newCode := textinput.New()
	newCode.Placeholder = "Course code (e.g. CS201)"
	newCode.CharLimit = 20

	newProfessor := textinput.New()
	newProfessor.Placeholder = "Professor (optional)"
	newProfessor.CharLimit = 100

	newCredits := textinput.New()
	newCredits.Placeholder = "Credits (optional)"
	newCredits.CharLimit = 2

	delegate := &subjectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Subjects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &SubjectListView{
		store:        st,
		list:         l,
		delegate:     delegate,
		styles:       s,
		keys:         keys.DefaultKeyMap(),
		newName:      newName,
		newCode:      newCode,
		newProfessor: newProfessor,
		newCredits:   newCredits,
	}
}

func (v *SubjectListView) Init() tea.Cmd {
	return v.loadSubjects
}

type subjectsLoadedMsg struct {
	items []subjectItem
}

func (v *SubjectListView) loadSubjects() tea.Msg {
	subjects := v.store.Subjects()
	items := make([]subjectItem, len(subjects))
	for i, sub := range subjects {
		items[i] = subjectItem{
			subject:  sub,
			progress: v.store.ChapterProgress(sub.ID),
			chapters: len(v.store.ChaptersBySubject(sub.ID)),
		}
	}
	return subjectsLoadedMsg{items: items}
}

// Capturing reports whether a form or confirm dialog is open.
func (v *SubjectListView) Capturing() bool {
	return v.creating || v.confirmingDelete || v.list.FilterState() == list.Filtering
}

func (v *SubjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-7)
		return v, nil

	case subjectsLoadedMsg:
		items := make([]list.Item, len(msg.items))
		for i, it := range msg.items {
			items[i] = it
		}
		v.list.SetItems(items)
		v.loaded = true
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
			if v.list.FilterState() != list.Filtering {
				return v, tea.Quit
			}
		case key.Matches(msg, v.keys.New):
			v.creating = true
			v.focusIdx = 0
			v.colorIdx = 0
			v.lastErr = nil
			v.newName.Reset()
			v.newCode.Reset()
			v.newProfessor.Reset()
			v.newCredits.Reset()
			v.newName.Focus()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(subjectItem); ok {
				return v, func() tea.Msg {
					return OpenChapters{Subject: item.subject}
				}
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(subjectItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.subject.ID
				v.deleteTargetName = item.subject.Name
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *SubjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.lastErr = v.store.DeleteSubject(v.deleteTargetID)
		v.confirmingDelete = false
		return v, v.loadSubjects
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *SubjectListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveSubject()

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
		return v, v.saveSubject()
	}

	if v.focusIdx == 4 {
		switch msg.String() {
		case "left", "h":
			v.colorIdx = (v.colorIdx + len(models.SubjectColors) - 1) % len(models.SubjectColors)
			return v, nil
		case "right", "l", " ":
			v.colorIdx = (v.colorIdx + 1) % len(models.SubjectColors)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newName, cmd = v.newName.Update(msg)
	case 1:
		v.newCode, cmd = v.newCode.Update(msg)
	case 2:
		v.newProfessor, cmd = v.newProfessor.Update(msg)
	case 3:
		v.newCredits, cmd = v.newCredits.Update(msg)
	}
	return v, cmd
}

func (v *SubjectListView) saveSubject() tea.Cmd {
	name := strings.TrimSpace(v.newName.Value())
	if name == "" {
		return nil
	}
	credits, _ := strconv.Atoi(strings.TrimSpace(v.newCredits.Value()))
	_, err := v.store.AddSubject(models.Subject{
		Name:      name,
		Code:      strings.TrimSpace(v.newCode.Value()),
		Color:     models.SubjectColors[v.colorIdx],
		Professor: strings.TrimSpace(v.newProfessor.Value()),
		Credits:   credits,
	})
	if err != nil {
		v.lastErr = err
		return nil
	}
	v.creating = false
	return v.loadSubjects
}

func (v *SubjectListView) updateFocus() {
	v.newName.Blur()
	v.newCode.Blur()
	v.newProfessor.Blur()
	v.newCredits.Blur()
	switch v.focusIdx {
	case 0:
		v.newName.Focus()
	case 1:
		v.newCode.Focus()
	case 2:
		v.newProfessor.Focus()
	case 3:
		v.newCredits.Focus()
	}
}

// View renders the view
func (v *SubjectListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.creating {
		return v.renderCreateForm()
	}
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}
	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *SubjectListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Subjects"),
		"",
		s.TitleMuted.Render("Press 'n' to add your first subject"),
		"",
		s.ButtonPrimary.Render(" New Subject "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *SubjectListView) renderCreateForm() string {
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

	color := models.SubjectColors[v.colorIdx]
	colorLine := lipgloss.NewStyle().
		Foreground(styles.SubjectColor(color)).
		Render("● " + string(color))
	if v.focusIdx == 4 {
		colorLine = "‹ " + colorLine + " ›"
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{
		s.Title.Render("New Subject"),
		"",
		"Name:",
		inputStyle(0).Width(inputWidth).Render(v.newName.View()),
		"Code:",
		inputStyle(1).Width(inputWidth).Render(v.newCode.View()),
		"Professor:",
		inputStyle(2).Width(inputWidth).Render(v.newProfessor.View()),
		"Credits:",
		inputStyle(3).Width(inputWidth).Render(v.newCredits.View()),
		"Color:",
		colorLine,
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	}
	if v.lastErr != nil {
		rows = append(rows, s.Error.Render(v.lastErr.Error()))
	}
	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *SubjectListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s chapters • %s new • %s del • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *SubjectListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Subject?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("\"%s\" and its assignments, experiments,", v.deleteTargetName)),
		s.TitleMuted.Render("timetable slots and chapters will be removed."),
		s.TitleMuted.Render("Study history is kept."),
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
