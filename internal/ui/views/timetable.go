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

// Displayed hour range, matching a typical class day.
const (
	gridFirstHour = 8
	gridLastHour  = 17
)

var dayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// TimetableView renders the weekly grid. The cursor addresses one day/hour
// cell; slots are created and deleted from there.
type TimetableView struct {
	store   *store.Store
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
	dayIdx  int
	hourIdx int
	loaded  bool
	lastErr error

	creating   bool
	focusIdx   int // 0=subject, 1=day, 2=start, 3=end, 4=room, 5=save
	subjects   []models.Subject
	subjectIdx int
	formDayIdx int
	newStart   textinput.Model
	newEnd     textinput.Model
	newRoom    textinput.Model
	formErr    string

	confirmingDelete bool
	deleteTargetID   string
}

// NewTimetableView creates the timetable screen.
func NewTimetableView(st *store.Store) *TimetableView {
	newStart := textinput.New()
	newStart.Placeholder = "09:00"
	newStart.CharLimit = 5

	newEnd := textinput.New()
	newEnd.Placeholder = "10:00"
	newEnd.CharLimit = 5

	newRoom := textinput.New()
	newRoom.Placeholder = "Room (optional)"
	newRoom.CharLimit = 30

	return &TimetableView{
		store:    st,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		newStart: newStart,
		newEnd:   newEnd,
		newRoom:  newRoom,
	}
}

func (v *TimetableView) Init() tea.Cmd {
	return func() tea.Msg { return timetableLoadedMsg{} }
}

// timetableLoadedMsg just triggers a redraw; the grid reads the store
// directly.
type timetableLoadedMsg struct{}

// Capturing reports whether a form or confirm dialog is open.
func (v *TimetableView) Capturing() bool {
	return v.creating || v.confirmingDelete
}

func (v *TimetableView) cursorDay() models.Weekday {
	return models.Weekdays[v.dayIdx]
}

func (v *TimetableView) cursorHour() int {
	return gridFirstHour + v.hourIdx
}

func (v *TimetableView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case timetableLoadedMsg:
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
			return v, tea.Quit
		case key.Matches(msg, v.keys.Left):
			v.dayIdx = max(0, v.dayIdx-1)
		case key.Matches(msg, v.keys.Right):
			v.dayIdx = min(len(models.Weekdays)-1, v.dayIdx+1)
		case key.Matches(msg, v.keys.Up):
			v.hourIdx = max(0, v.hourIdx-1)
		case key.Matches(msg, v.keys.Down):
			v.hourIdx = min(gridLastHour-gridFirstHour, v.hourIdx+1)
		case key.Matches(msg, v.keys.New):
			v.subjects = v.store.Subjects()
			if len(v.subjects) == 0 {
				v.lastErr = fmt.Errorf("add a subject first")
				return v, nil
			}
			v.creating = true
			v.focusIdx = 0
			v.subjectIdx = 0
			v.formDayIdx = v.dayIdx
			v.formErr = ""
			v.lastErr = nil
			v.newStart.SetValue(fmt.Sprintf("%02d:00", v.cursorHour()))
			v.newEnd.SetValue(fmt.Sprintf("%02d:00", min(v.cursorHour()+1, 23)))
			v.newRoom.Reset()
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if slot := v.store.SlotAt(v.cursorDay(), v.cursorHour()); slot != nil {
				v.confirmingDelete = true
				v.deleteTargetID = slot.ID
				return v, nil
			}
		}
	}
	return v, nil
}

func (v *TimetableView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.lastErr = v.store.DeleteTimetableSlot(v.deleteTargetID)
		v.confirmingDelete = false
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TimetableView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveSlot()

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
		return v, v.saveSlot()
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
	case 1:
		switch msg.String() {
		case "left", "h":
			v.formDayIdx = (v.formDayIdx + len(models.Weekdays) - 1) % len(models.Weekdays)
			return v, nil
		case "right", "l", " ":
			v.formDayIdx = (v.formDayIdx + 1) % len(models.Weekdays)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 2:
		v.newStart, cmd = v.newStart.Update(msg)
	case 3:
		v.newEnd, cmd = v.newEnd.Update(msg)
	case 4:
		v.newRoom, cmd = v.newRoom.Update(msg)
	}
	return v, cmd
}

func (v *TimetableView) saveSlot() tea.Cmd {
	start := strings.TrimSpace(v.newStart.Value())
	end := strings.TrimSpace(v.newEnd.Value())
	if !validClock(start) || !validClock(end) {
		v.formErr = "times must be HH:MM"
		return nil
	}
	if end <= start {
		v.formErr = "end must be after start"
		return nil
	}
	_, err := v.store.AddTimetableSlot(models.TimetableSlot{
		SubjectID: v.subjects[v.subjectIdx].ID,
		Day:       models.Weekdays[v.formDayIdx],
		StartTime: start,
		EndTime:   end,
		Room:      strings.TrimSpace(v.newRoom.Value()),
	})
	if err != nil {
		v.lastErr = err
		return nil
	}
	v.creating = false
	return nil
}

func (v *TimetableView) updateFocus() {
	v.newStart.Blur()
	v.newEnd.Blur()
	v.newRoom.Blur()
	switch v.focusIdx {
	case 2:
		v.newStart.Focus()
	case 3:
		v.newEnd.Focus()
	case 4:
		v.newRoom.Focus()
	}
}

func (v *TimetableView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.creating {
		return v.renderCreateForm()
	}
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	parts := []string{
		s.Title.Render("Timetable"),
		"",
		v.renderGrid(),
		"",
		v.renderHelp(),
	}
	if v.lastErr != nil {
		parts = append(parts, s.Error.Render(v.lastErr.Error()))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return styles.CenterView(s.List.Render(content), v.width, v.height)
}

const cellWidth = 11

func (v *TimetableView) renderGrid() string {
	s := v.styles

	header := fmt.Sprintf("%6s", "")
	for i, label := range dayLabels {
		cell := fmt.Sprintf("%-*s", cellWidth, label)
		if i == v.dayIdx {
			header += s.Title.Render(cell)
		} else {
			header += s.TitleMuted.Render(cell)
		}
	}

	rows := []string{header}
	for hour := gridFirstHour; hour <= gridLastHour; hour++ {
		row := s.TitleMuted.Render(fmt.Sprintf("%02d:00 ", hour))
		for i, day := range models.Weekdays {
			row += v.renderCell(day, hour, i == v.dayIdx && hour == v.cursorHour())
		}
		rows = append(rows, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCell draws one day/hour cell. Only a slot's start cell shows its
// subject; continuation hours are shaded so the block reads as one unit
// spanning endHour minus startHour rows.
func (v *TimetableView) renderCell(day models.Weekday, hour int, selected bool) string {
	s := v.styles

	slot := v.store.SlotAt(day, hour)
	text := "·"
	style := lipgloss.NewStyle().Foreground(styles.Current.ForegroundDim)

	if slot != nil {
		color := models.ColorDefault
		name := ""
		if sub := v.store.GetSubjectByID(slot.SubjectID); sub != nil {
			color = sub.Color
			name = sub.Code
			if name == "" {
				name = sub.Name
			}
		}
		text = "▌"
		if store.HourOf(slot.StartTime) == hour {
			text += name
			if slot.Room != "" {
				text += " " + slot.Room
			}
		}
		style = lipgloss.NewStyle().Foreground(styles.SubjectColor(color))
	}

	if len([]rune(text)) > cellWidth-1 {
		text = string([]rune(text)[:cellWidth-1])
	}
	cell := fmt.Sprintf("%-*s", cellWidth, text)
	if selected {
		return s.ListSelected.Padding(0).Render(cell)
	}
	return style.Render(cell)
}

func (v *TimetableView) renderCreateForm() string {
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
	dayLine := dayLabels[v.formDayIdx]
	if v.focusIdx == 1 {
		dayLine = "‹ " + dayLine + " ›"
	}

	inputWidth := clamp(contentWidth-6, 20, 30)

	rows := []string{
		s.Title.Render("New Class"),
		"",
		"Subject:",
		subjectLine,
		"Day:",
		dayLine,
		"Start (HH:MM):",
		inputStyle(2).Width(inputWidth).Render(v.newStart.View()),
		"End (HH:MM):",
		inputStyle(3).Width(inputWidth).Render(v.newEnd.View()),
		"Room:",
		inputStyle(4).Width(inputWidth).Render(v.newRoom.View()),
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

func (v *TimetableView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s move • %s new • %s del • %s quit",
			v.styles.HelpKey.Render("←↑↓→"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TimetableView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Class?"),
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
