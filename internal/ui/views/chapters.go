package views

import (
	"fmt"
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

// BackToSubjects returns from the chapter list to the subject list.
type BackToSubjects struct{}

// ChapterListView shows one subject's chapters in reading order.
type ChapterListView struct {
	store    *store.Store
	subject  models.Subject
	chapters []models.Chapter
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	cursor   int
	lastErr  error

	creating bool
	focusIdx int // 0=title, 1=description, 2=save
	newTitle textinput.Model
	newDesc  textinput.Model

	confirmingDelete bool
	deleteTargetID   string
}

// NewChapterListView creates the chapter screen for one subject.
func NewChapterListView(st *store.Store, subject models.Subject) *ChapterListView {
	newTitle := textinput.New()
	newTitle.Placeholder = "Chapter title"
	newTitle.CharLimit = 200

	newDesc := textinput.New()
	newDesc.Placeholder = "Description (optional)"
	newDesc.CharLimit = 200

	return &ChapterListView{
		store:    st,
		subject:  subject,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		newTitle: newTitle,
		newDesc:  newDesc,
	}
}

func (v *ChapterListView) Init() tea.Cmd {
	return v.loadChapters
}

type chaptersLoadedMsg struct {
	chapters []models.Chapter
}

func (v *ChapterListView) loadChapters() tea.Msg {
	return chaptersLoadedMsg{chapters: v.store.ChaptersBySubject(v.subject.ID)}
}

// Capturing reports whether a form or confirm dialog is open.
func (v *ChapterListView) Capturing() bool {
	return v.creating || v.confirmingDelete
}

func (v *ChapterListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case chaptersLoadedMsg:
		v.chapters = msg.chapters
		v.cursor = clamp(v.cursor, 0, max(0, len(v.chapters)-1))
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
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToSubjects{} }
		case key.Matches(msg, v.keys.Up):
			v.cursor = max(0, v.cursor-1)
		case key.Matches(msg, v.keys.Down):
			v.cursor = min(len(v.chapters)-1, v.cursor+1)
		case key.Matches(msg, v.keys.New):
			v.creating = true
			v.focusIdx = 0
			v.lastErr = nil
			v.newTitle.Reset()
			v.newDesc.Reset()
			v.newTitle.Focus()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Cycle):
			if v.cursor < len(v.chapters) {
				c := v.chapters[v.cursor]
				next := nextStatus(c.Status)
				v.lastErr = v.store.UpdateChapter(c.ID, store.ChapterPatch{Status: &next})
				return v, v.loadChapters
			}
		case key.Matches(msg, v.keys.Delete):
			if v.cursor < len(v.chapters) {
				v.confirmingDelete = true
				v.deleteTargetID = v.chapters[v.cursor].ID
				return v, nil
			}
		}
	}
	return v, nil
}

func nextStatus(s models.WorkStatus) models.WorkStatus {
	for i, status := range models.WorkStatuses {
		if status == s {
			return models.WorkStatuses[(i+1)%len(models.WorkStatuses)]
		}
	}
	return models.StatusPending
}

func (v *ChapterListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.lastErr = v.store.DeleteChapter(v.deleteTargetID)
		v.confirmingDelete = false
		return v, v.loadChapters
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ChapterListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveChapter()

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 3
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 2 {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.saveChapter()
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newTitle, cmd = v.newTitle.Update(msg)
	case 1:
		v.newDesc, cmd = v.newDesc.Update(msg)
	}
	return v, cmd
}

func (v *ChapterListView) saveChapter() tea.Cmd {
	title := strings.TrimSpace(v.newTitle.Value())
	if title == "" {
		return nil
	}
	// Order is assigned by the store: current max for the subject plus one.
	_, err := v.store.AddChapter(models.Chapter{
		SubjectID:   v.subject.ID,
		Title:       title,
		Description: strings.TrimSpace(v.newDesc.Value()),
		Status:      models.StatusPending,
	})
	if err != nil {
		v.lastErr = err
		return nil
	}
	v.creating = false
	return v.loadChapters
}

func (v *ChapterListView) updateFocus() {
	v.newTitle.Blur()
	v.newDesc.Blur()
	switch v.focusIdx {
	case 0:
		v.newTitle.Focus()
	case 1:
		v.newDesc.Focus()
	}
}

func (v *ChapterListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.creating {
		return v.renderCreateForm()
	}

	s := v.styles
	progress := v.store.ChapterProgress(v.subject.ID)

	header := s.Title.Render(v.subject.Name+" — Chapters") + "  " +
		s.TitleMuted.Render(fmt.Sprintf("%d%% complete", progress))

	var rows []string
	if len(v.chapters) == 0 {
		rows = append(rows, s.TitleMuted.Render("No chapters yet. Press 'n' to add one."))
	}
	for i, c := range v.chapters {
		line := fmt.Sprintf("%s %d. %s", statusGlyph(c.Status), c.Order, c.Title)
		if c.Description != "" {
			line += s.TitleMuted.Render(" — " + c.Description)
		}
		if i == v.cursor {
			rows = append(rows, s.ListSelected.Render(line))
		} else {
			rows = append(rows, s.ListItem.Render(line))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		v.renderHelp(),
	)
	return styles.CenterView(s.List.Render(content), v.width, v.height)
}

func (v *ChapterListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	titleStyle, descStyle, btnStyle := s.Input, s.Input, s.Button
	switch v.focusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Chapter"),
		s.TitleMuted.Render(fmt.Sprintf("Will be chapter %d of %s",
			v.store.NextChapterOrder(v.subject.ID), v.subject.Name)),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.newTitle.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(v.newDesc.View()),
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ChapterListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s status • %s new • %s del • %s back",
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("esc"),
		),
	)
}

func (v *ChapterListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Chapter?"),
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
