package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View renders the whole application.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}
	if m.showSplash {
		return m.viewSplash()
	}

	header := m.viewHeader()
	footer := m.viewFooter()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.activeTab {
	case TabDashboard:
		content = m.viewDashboard(contentHeight)
	case TabStacks:
		content = m.viewStacks(contentHeight)
	case TabEnvironments:
		content = m.viewEnvironments(contentHeight)
	case TabAgent:
		content = m.viewAgent(contentHeight)
	case TabPlatform:
		content = m.viewPlatform(contentHeight)
	}
	content = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(content)

	screen := lipgloss.JoinVertical(lipgloss.Left, header, content, footer)

	if popup := m.viewPopup(); popup != "" {
		return m.overlay(screen, popup)
	}
	return screen
}

func (m Model) viewHeader() string {
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		if t == m.activeTab {
			tabs = append(tabs, tabActiveStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(t.String()))
		}
	}
	row := logoStyle.Render("Lazy Pulumi") + "  " + strings.Join(tabs, " ")

	right := ""
	if m.org != "" {
		right = orgBadgeStyle.Render(" " + m.org + " ")
	}
	if m.Loading() {
		right = m.spinner.View() + " " + right
	}

	gap := m.width - lipgloss.Width(row) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return row + strings.Repeat(" ", gap) + right + "\n" +
		lipgloss.NewStyle().Foreground(borderColor).Render(strings.Repeat("─", max(m.width, 1)))
}

func (m Model) viewFooter() string {
	hints := m.footerHints()
	return footerStyle.Width(m.width).Render(hints)
}

func (m Model) footerHints() string {
	common := "tab: switch  o: org  r: refresh  l: logs  ?: help  q: quit"
	switch m.activeTab {
	case TabStacks:
		return "enter: updates  " + common
	case TabEnvironments:
		if m.envFocusPane {
			return "j/k: scroll  y: yank  esc: back  " + common
		}
		return "enter: definition  o: open  e: edit  y: yank  " + common
	case TabAgent:
		if m.inputFocused {
			return "enter: send  /: commands  esc: blur"
		}
		if m.taskListVisible {
			return "enter: open  n: new  d: details  " + common
		}
		return "i: reply  n: new  d: details  y: yank  esc: tasks  " + common
	case TabPlatform:
		return "[/]: section  enter: readme  " + common
	}
	return common
}

// viewPopup returns the topmost popup, or empty when none is open.
func (m Model) viewPopup() string {
	switch {
	case m.errorText != "":
		return m.viewErrorPopup()
	case m.showHelp:
		return m.viewHelpPopup()
	case m.showTaskDetails:
		return m.viewTaskDetailsPopup()
	case m.showEnvEditor:
		return m.viewEnvEditorPopup()
	case m.showLogs:
		return m.viewLogsPopup()
	case m.showOrgPicker:
		return m.viewOrgPickerPopup()
	}
	return ""
}

// overlay centers the popup over the base screen, replacing the rows it
// covers. Lipgloss has no z-ordering so the rows are spliced by hand.
func (m Model) overlay(base, popup string) string {
	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	top := (len(baseLines) - len(popupLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (m.width - lipgloss.Width(popup)) / 2
	if left < 0 {
		left = 0
	}

	pad := strings.Repeat(" ", left)
	for i, pl := range popupLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = pad + pl
	}
	return strings.Join(baseLines, "\n")
}

// listRows renders the visible window of a list with cursor highlight.
func listRows[T any](l *List[T], height int, render func(T, bool) string) string {
	items := l.Items()
	if len(items) == 0 {
		return rowStyle.Render("Nothing here yet.")
	}
	if height < 1 {
		height = 1
	}

	start := 0
	if l.Cursor() >= height {
		start = l.Cursor() - height + 1
	}
	end := start + height
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteByte('\n')
		}
		b.WriteString(render(items[i], i == l.Cursor()))
	}
	return b.String()
}

func countLabel(n int, noun string) string {
	return fmt.Sprintf("%d %s", n, noun)
}

// clipRow keeps a list row on one terminal line. The windowed lists assume
// one row per item, so a long description must not wrap.
func clipRow(line string, width int) string {
	if width <= 0 {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}
