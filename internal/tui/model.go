package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	charmLog "github.com/charmbracelet/log"

	"github.com/hylla/syssla/internal/app"
	"github.com/hylla/syssla/internal/domain"
)

// Service is the slice of the application service the model renders and
// mutates through. All calls are synchronous; the service owns persistence.
type Service interface {
	Tasks() []domain.Task
	Filtered(domain.Section) []domain.Task
	Stats() app.Stats
	Add(context.Context, string) (domain.Task, bool, error)
	Toggle(context.Context, string) (bool, error)
	MarkForRemoval(string) bool
	IsMarkedForRemoval(string) bool
	CommitRemoval(context.Context, string) (bool, error)
	Theme() domain.Theme
	ToggleTheme(context.Context) (domain.Theme, error)
}

// inputMode represents a selectable mode.
type inputMode int

// modeNormal and related constants define the model's input modes.
const (
	modeNormal inputMode = iota
	modeAdd
	modeGuide
)

// removalDueMsg fires when a marked task's cosmetic removal delay elapses.
type removalDueMsg struct {
	id string
}

// guideMarkdown is the in-app guide rendered through glamour.
const guideMarkdown = `# syssla

A small task list that stays out of the way.

## Sections

- **all** shows every open task
- **today** shows open tasks created today
- **completed** shows what is done

## Keys

| Key | Action |
|-----|--------|
| n | add a task |
| space | toggle done |
| d | delete (after a short fade) |
| tab / 1 2 3 | switch section |
| T | flip light/dark theme |
| y | copy task text |

Press esc or g to close this guide.`

// Model represents model data used by this package.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int
	err    error

	status  string
	mode    inputMode
	section domain.Section
	cursor  int

	input textinput.Model
	help  help.Model
	keys  keyMap
	md    *markdownRenderer

	theme       domain.Theme
	removeDelay time.Duration
	showSummary bool

	logger         *charmLog.Logger
	writeClipboard func(string) error
}

// NewModel constructs the task-list model over a loaded service.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "what needs doing?"
	input.CharLimit = 240

	m := Model{
		svc:            svc,
		status:         "ready",
		section:        domain.SectionAll,
		input:          input,
		help:           h,
		keys:           newKeyMap(KeyConfig{}),
		md:             &markdownRenderer{},
		theme:          svc.Theme(),
		removeDelay:    350 * time.Millisecond,
		showSummary:    true,
		logger:         charmLog.New(io.Discard),
		writeClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case removalDueMsg:
		removed, err := m.svc.CommitRemoval(context.Background(), msg.id)
		if err != nil {
			m.logger.Error("commit removal failed", "task_id", msg.id, "err", err)
			m.status = "delete failed: " + err.Error()
			return m, nil
		}
		if removed {
			m.status = "task removed"
		}
		m.cursor = clamp(m.cursor, 0, len(m.visibleTasks())-1)
		return m, nil

	case tea.KeyPressMsg:
		switch m.mode {
		case modeAdd:
			return m.handleAddKey(msg)
		case modeGuide:
			return m.handleGuideKey(msg)
		default:
			return m.handleNormalKey(msg)
		}

	default:
		return m, nil
	}
}

// handleNormalKey dispatches list-mode key presses.
func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.guide):
		m.mode = modeGuide
		m.status = "guide"
		return m, nil

	case key.Matches(msg, m.keys.moveDown):
		if m.cursor < len(m.visibleTasks())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.addTask):
		m.mode = modeAdd
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.toggleTask):
		return m.toggleSelected()

	case key.Matches(msg, m.keys.deleteTask):
		return m.deleteSelected()

	case key.Matches(msg, m.keys.yankText):
		return m.yankSelected()

	case key.Matches(msg, m.keys.nextSection):
		return m.switchSection(nextSection(m.section, 1)), nil

	case key.Matches(msg, m.keys.prevSection):
		return m.switchSection(nextSection(m.section, -1)), nil

	case key.Matches(msg, m.keys.sectionAll):
		return m.switchSection(domain.SectionAll), nil

	case key.Matches(msg, m.keys.sectionToday):
		return m.switchSection(domain.SectionToday), nil

	case key.Matches(msg, m.keys.sectionCompleted):
		return m.switchSection(domain.SectionCompleted), nil

	case key.Matches(msg, m.keys.toggleTheme):
		theme, err := m.svc.ToggleTheme(context.Background())
		if err != nil {
			m.logger.Error("theme toggle failed", "err", err)
			m.status = "theme not saved: " + err.Error()
			return m, nil
		}
		m.theme = theme
		m.status = "theme: " + string(theme)
		return m, nil

	default:
		return m, nil
	}
}

// handleAddKey feeds key presses to the add-task input.
func (m Model) handleAddKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		m.status = "cancelled"
		return m, nil
	case "enter":
		text := m.input.Value()
		m.mode = modeNormal
		m.input.Blur()
		task, added, err := m.svc.Add(context.Background(), text)
		if err != nil {
			m.logger.Error("add task failed", "err", err)
			m.status = "add failed: " + err.Error()
			return m, nil
		}
		if !added {
			// Empty input is absorbed silently, not reported as an error.
			m.status = "ready"
			return m, nil
		}
		m.cursor = 0
		m.status = fmt.Sprintf("added %q", truncate(task.Text, 32))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// handleGuideKey closes the guide overlay.
func (m Model) handleGuideKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc", key.Matches(msg, m.keys.guide), key.Matches(msg, m.keys.quit):
		m.mode = modeNormal
		m.status = "ready"
		return m, nil
	default:
		return m, nil
	}
}

// toggleSelected flips completion on the task under the cursor.
func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	changed, err := m.svc.Toggle(context.Background(), task.ID)
	if err != nil {
		m.logger.Error("toggle failed", "task_id", task.ID, "err", err)
		m.status = "toggle failed: " + err.Error()
		return m, nil
	}
	if changed {
		m.status = "toggled"
	}
	// The row may leave the current filter once toggled.
	m.cursor = clamp(m.cursor, 0, len(m.visibleTasks())-1)
	return m, nil
}

// deleteSelected marks the task under the cursor and schedules the commit
// after the cosmetic delay.
func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if !m.svc.MarkForRemoval(task.ID) {
		return m, nil
	}
	m.status = "removing..."
	return m, m.scheduleRemoval(task.ID)
}

// scheduleRemoval emits removalDueMsg once the removal delay elapses.
func (m Model) scheduleRemoval(id string) tea.Cmd {
	delay := m.removeDelay
	return func() tea.Msg {
		if delay > 0 {
			time.Sleep(delay)
		}
		return removalDueMsg{id: id}
	}
}

// yankSelected copies the selected task's text to the system clipboard. A
// missing clipboard is reported and skipped, never fatal.
func (m Model) yankSelected() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if err := m.writeClipboard(task.Text); err != nil {
		m.logger.Warn("clipboard unavailable", "err", err)
		m.status = "clipboard unavailable"
		return m, nil
	}
	m.status = "copied"
	return m, nil
}

// switchSection activates a section; the selection resets to the top.
func (m Model) switchSection(section domain.Section) Model {
	m.section = section
	m.cursor = 0
	m.status = "section: " + string(section)
	return m
}

// selectedTask returns the task under the cursor in the visible list.
func (m Model) selectedTask() (domain.Task, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return domain.Task{}, false
	}
	return visible[clamp(m.cursor, 0, len(visible)-1)], true
}

// visibleTasks recomputes the filtered view for the active section.
func (m Model) visibleTasks() []domain.Task {
	return m.svc.Filtered(m.section)
}

// View handles view.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress q to quit\n")
		v.AltScreen = true
		return v
	}
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	pal := paletteFor(m.theme)

	if m.mode == modeGuide {
		guide := m.md.render(guideMarkdown, max(24, m.width-4), m.theme)
		content := guide + "\n\n" + pal.dim.Render("esc to close")
		v := tea.NewView(content)
		v.AltScreen = true
		return v
	}

	sections := []string{
		m.renderHeader(pal),
		"",
		m.renderList(pal),
	}
	if m.showSummary {
		sections = append(sections, "", pal.muted.Render(app.SummaryText(m.svc.Stats(), m.section)))
	}
	if m.mode == modeAdd {
		sections = append(sections, "", m.input.View())
	}
	if strings.TrimSpace(m.status) != "" {
		sections = append(sections, "", pal.dim.Render(m.status))
	}

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	sections = append(sections, "", helpBubble.View(m.keys))

	v := tea.NewView(strings.Join(sections, "\n"))
	v.AltScreen = true
	return v
}

// renderHeader renders the title, theme indicator, and section tabs.
func (m Model) renderHeader(pal palette) string {
	tabs := make([]string, 0, 3)
	for _, section := range domain.Sections() {
		label := string(section)
		if section == m.section {
			tabs = append(tabs, pal.accent.Bold(true).Underline(true).Render(label))
			continue
		}
		tabs = append(tabs, pal.muted.Render(label))
	}
	return pal.title.Render("syssla") + " " + themeIcon(m.theme) + "  " + strings.Join(tabs, pal.dim.Render(" · "))
}

// renderList renders the filtered rows or the per-section empty state.
func (m Model) renderList(pal palette) string {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return pal.muted.Render(app.EmptyStateMessage(m.section))
	}

	cursor := clamp(m.cursor, 0, len(visible)-1)
	rows := make([]string, 0, len(visible))
	for idx, task := range visible {
		mark := "[ ]"
		if task.Completed {
			mark = "[x]"
		}
		prefix := "  "
		if idx == cursor {
			prefix = pal.cursor.Render("│ ")
		}

		text := sanitizeDisplayText(task.Text)
		line := mark + " " + truncate(text, max(1, m.width-10))
		switch {
		case m.svc.IsMarkedForRemoval(task.ID):
			line = pal.remove.Render(line)
		case task.Completed:
			line = pal.done.Render(line)
		}
		rows = append(rows, prefix+line)
	}
	return strings.Join(rows, "\n")
}

// sanitizeDisplayText drops control characters so stored text cannot disturb
// the terminal. The HTML export escapes markup separately.
func sanitizeDisplayText(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
}

// truncate shortens text to width runes.
func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// nextSection steps through the section ring in display order.
func nextSection(current domain.Section, delta int) domain.Section {
	sections := domain.Sections()
	idx := 0
	for i, section := range sections {
		if section == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(sections)) % len(sections)
	return sections[idx]
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
