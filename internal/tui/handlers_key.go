package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lazypulumi/internal/agent"
	"lazypulumi/internal/clip"
	"lazypulumi/internal/pulumi"
	"lazypulumi/internal/startup"
)

// handleKey dispatches a keystroke through the surface precedence chain.
// Exactly one surface consumes each key.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showSplash {
		return m.handleSplashKey(msg)
	}
	if m.errorText != "" {
		return m.handleErrorKey(msg)
	}
	if m.showHelp {
		return m.handleHelpKey(msg)
	}
	if m.showTaskDetails {
		return m.handleTaskDetailsKey(msg)
	}
	if m.showEnvEditor {
		return m.handleEnvEditorKey(msg)
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if m.showOrgPicker {
		return m.handleOrgPickerKey(msg)
	}
	if m.inputFocused {
		return m.handleInputKey(msg)
	}
	if model, cmd, handled := m.handleGlobalKey(msg); handled {
		return model, cmd
	}
	return m.handleTabKey(msg)
}

func (m Model) handleSplashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case " ":
		if m.checks.AllPassed() {
			m.splashSkip = !m.splashSkip
		}
		return m, nil
	case "enter", "esc":
		// Failed checks pin the splash open.
		if m.checks.AllPassed() {
			m.dismissSplash()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.errorText = ""
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.showHelp = false
	}
	return m, nil
}

func (m Model) handleTaskDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "d":
		m.showTaskDetails = false
		m.taskDetails = nil
	}
	return m, nil
}

// handleEnvEditorKey runs the modal YAML editor. Ctrl+S submits the buffer
// as the new environment definition.
func (m Model) handleEnvEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.showEnvEditor = false
		m.envEditor.Blur()
		return m, nil
	case tea.KeyCtrlS:
		m.showEnvEditor = false
		m.envEditor.Blur()
		return m, updateEnvironment(m.client, m.envEditing, m.envEditor.Value())
	}

	var cmd tea.Cmd
	m.envEditor, cmd = m.envEditor.Update(msg)
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "l":
		m.showLogs = false
		return m, nil
	case "y":
		entries := m.logBuffer.Entries()
		var b strings.Builder
		for _, e := range entries {
			b.WriteString(e.Time.Format("15:04:05"))
			b.WriteByte(' ')
			b.WriteString(e.Message)
			b.WriteByte('\n')
		}
		m.yank(b.String())
		return m, nil
	}

	var cmd tea.Cmd
	m.logsViewport, cmd = m.logsViewport.Update(msg)
	return m, cmd
}

func (m Model) handleOrgPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showOrgPicker = false
		m.orgPicker.SetFilter("")
		return m, nil
	case "up", "ctrl+p":
		m.orgPicker.Prev()
		return m, nil
	case "down", "ctrl+n":
		m.orgPicker.Next()
		return m, nil
	case "enter":
		org, ok := m.orgPicker.Selected()
		m.showOrgPicker = false
		m.orgPicker.SetFilter("")
		if !ok || org == m.org {
			return m, nil
		}
		startup.SetDefaultOrg(org)
		return m.switchOrg(org)
	case "backspace":
		if f := m.orgPicker.Filter(); f != "" {
			m.orgPicker.SetFilter(f[:len(f)-1])
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.orgPicker.SetFilter(m.orgPicker.Filter() + string(msg.Runes))
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.slashActive {
			m.slashActive = false
			return m, nil
		}
		m.inputFocused = false
		m.textarea.Blur()
		return m, nil
	case "up", "ctrl+p":
		if m.slashActive {
			if m.slashCursor > 0 {
				m.slashCursor--
			}
			return m, nil
		}
	case "down", "ctrl+n":
		if m.slashActive {
			if m.slashCursor < len(m.slashMatches)-1 {
				m.slashCursor++
			}
			return m, nil
		}
	case "tab":
		if m.slashActive {
			m.acceptSlashCommand()
			return m, nil
		}
	case "enter":
		if m.slashActive {
			m.acceptSlashCommand()
			return m, nil
		}
		return m.submitMessage()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.updateSlashPicker()
	return m, cmd
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "?":
		m.showHelp = true
		return m, nil, true
	case "l":
		m.showLogs = true
		m.refreshLogsViewport()
		return m, nil, true
	case "o":
		// The environments tab uses o to open values; org picker moves to O.
		if m.activeTab == TabEnvironments {
			return m, nil, false
		}
		m.openOrgPicker()
		return m, nil, true
	case "O":
		m.openOrgPicker()
		return m, nil, true
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		m.onTabChanged()
		return m, nil, true
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		m.onTabChanged()
		return m, nil, true
	case "r":
		model, cmd := m.refresh()
		return model, cmd, true
	}
	return m, nil, false
}

func (m *Model) openOrgPicker() {
	m.showOrgPicker = true
	m.orgPicker.SetFilter("")
	m.orgPicker.SetItems(m.organizations)
}

// onTabChanged keeps the conversation cadence in step with visibility.
func (m *Model) onTabChanged() {
	if m.activeTab == TabAgent {
		if m.conversation.State() == agent.StateStopped {
			m.conversation.Suspend()
		}
		return
	}
	m.conversation.Pause()
}

func (m Model) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case TabStacks:
		return m.handleStacksKey(msg)
	case TabEnvironments:
		return m.handleEnvironmentsKey(msg)
	case TabAgent:
		return m.handleAgentKey(msg)
	case TabPlatform:
		return m.handlePlatformKey(msg)
	}
	return m, nil
}

func (m Model) handleStacksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.stacks.Prev()
	case "down", "j":
		m.stacks.Next()
	case "g":
		m.stacks.First()
	case "G":
		m.stacks.Last()
	case "enter":
		if stack, ok := m.stacks.Selected(); ok {
			return m, loadStackUpdates(m.client, stack)
		}
	case "c":
		if stack, ok := m.stacks.Selected(); ok {
			if stack.URL != "" {
				m.yank(stack.URL)
			} else {
				m.yank(stack.FullName())
			}
		}
	}
	return m, nil
}

func (m Model) handleEnvironmentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.envFocusPane {
		switch msg.String() {
		case "esc", "h":
			m.envFocusPane = false
			return m, nil
		case "y":
			m.yankEnvironment()
			return m, nil
		}
		var cmd tea.Cmd
		m.envViewport, cmd = m.envViewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		m.environments.Prev()
	case "down", "j":
		m.environments.Next()
	case "g":
		m.environments.First()
	case "G":
		m.environments.Last()
	case "enter":
		if env, ok := m.environments.Selected(); ok {
			return m, loadEnvDetails(m.client, env)
		}
	case "o":
		if env, ok := m.environments.Selected(); ok {
			return m, openEnvironment(m.client, env)
		}
	case "e":
		return m.openEnvEditor()
	case "y":
		m.yankEnvironment()
	case "c":
		if env, ok := m.environments.Selected(); ok {
			m.yank(env.FullName())
		}
	case "right":
		if m.envDetails != nil || m.envValues != nil {
			m.envFocusPane = true
		}
	}
	return m, nil
}

// openEnvEditor loads the selected environment's definition into the modal
// editor. The definition must already be loaded so the buffer starts from
// the server's current revision.
func (m Model) openEnvEditor() (tea.Model, tea.Cmd) {
	env, ok := m.environments.Selected()
	if !ok {
		return m, nil
	}
	if m.envDetails == nil || m.envDetailsFor != env.FullName() {
		return m, loadEnvDetails(m.client, env)
	}

	m.envEditing = env
	m.envEditor.SetValue(m.envDetails.YAML)
	m.envEditor.Focus()
	m.showEnvEditor = true
	return m, nil
}

// yankEnvironment copies the visible environment document to the clipboard.
func (m *Model) yankEnvironment() {
	var text string
	switch {
	case m.envValues != nil:
		text = renderValues(m.envValues)
	case m.envDetails != nil:
		text = m.envDetails.YAML
	default:
		return
	}
	m.yank(text)
}

// yank copies text via the clipboard fallback chain, logging the outcome.
func (m *Model) yank(text string) {
	res, err := clip.WriteAll(text)
	if err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		return
	}
	if res.Method == clip.MethodFile {
		m.logger.Info("clipboard unavailable, wrote file", "path", res.FilePath)
	}
}

func (m Model) handleAgentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.taskListVisible {
		switch msg.String() {
		case "up", "k":
			m.tasks.Prev()
		case "down", "j":
			m.tasks.Next()
		case "g":
			m.tasks.First()
		case "G":
			m.tasks.Last()
		case "enter":
			if task, ok := m.tasks.Selected(); ok {
				m.conversation.LoadTask(task.ID)
				m.taskListVisible = false
				m.pinnedBottom = true
				m.refreshTranscript()
				return m, pollTask(m.client, m.org, task.ID)
			}
		case "n":
			m.startNewTask()
		case "d":
			if task, ok := m.tasks.Selected(); ok {
				return m, loadTaskMetadata(m.client, m.org, task.ID)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.taskListVisible = true
		return m, nil
	case "i", "enter":
		m.inputFocused = true
		m.textarea.Focus()
		return m, nil
	case "n":
		m.startNewTask()
		return m, nil
	case "d":
		if m.conversation.TaskID != "" {
			return m, loadTaskMetadata(m.client, m.org, m.conversation.TaskID)
		}
		return m, nil
	case "y":
		m.yankLastAssistant()
		return m, nil
	case "up", "k":
		m.pinnedBottom = false
		m.transcript.ScrollUp(1)
		return m, nil
	case "down", "j":
		m.transcript.ScrollDown(1)
		if m.transcript.AtBottom() {
			m.pinnedBottom = true
		}
		return m, nil
	case "K":
		m.pinnedBottom = false
		m.transcript.HalfPageUp()
		return m, nil
	case "J":
		m.transcript.HalfPageDown()
		if m.transcript.AtBottom() {
			m.pinnedBottom = true
		}
		return m, nil
	case "g":
		m.pinnedBottom = false
		m.transcript.GotoTop()
		return m, nil
	case "G":
		m.pinnedBottom = true
		m.transcript.GotoBottom()
		return m, nil
	}
	return m, nil
}

// yankLastAssistant copies the newest assistant message to the clipboard.
func (m *Model) yankLastAssistant() {
	msgs := m.conversation.Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Variant == agent.VariantAssistant && msgs[i].Content != "" {
			m.yank(msgs[i].Content)
			return
		}
	}
}

func (m Model) handlePlatformKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.platformList()
	switch msg.String() {
	case "]":
		m.section = (m.section + 1) % sectionCount
	case "[":
		m.section = (m.section + sectionCount - 1) % sectionCount
	case "up", "k":
		list.Prev()
	case "down", "j":
		list.Next()
	case "g":
		list.First()
	case "G":
		list.Last()
	case "enter":
		if m.section == sectionPackages {
			if pkg, ok := m.packages.Selected(); ok {
				return m.requestReadme(pkg)
			}
		}
	}
	return m, nil
}

// requestReadme lazily loads a package README once.
func (m Model) requestReadme(pkg pulumi.RegistryPackage) (tea.Model, tea.Cmd) {
	if pkg.ReadmeURL == "" {
		return m, nil
	}
	if _, ok := m.readmes[pkg.Key()]; ok {
		return m, nil
	}
	m.pendingLoads++
	return m, loadReadme(m.client, pkg.Key(), pkg.ReadmeURL)
}

// submitMessage sends the input buffer as a user turn.
func (m Model) submitMessage() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.textarea.Value())
	if content == "" {
		return m, nil
	}
	if m.org == "" {
		return m, nil
	}

	commands := m.pendingCommands
	m.pendingCommands = nil
	m.textarea.Reset()
	m.slashActive = false
	m.taskListVisible = false
	m.pinnedBottom = true

	m.conversation.StartSend(content)
	m.refreshTranscript()

	if m.conversation.TaskID == "" {
		return m, createTask(m.client, m.org, content, commands)
	}
	return m, continueTask(m.client, m.org, m.conversation.TaskID, content, commands)
}

// updateSlashPicker recomputes the picker from the input buffer. Visible
// only while the text after the last '/' runs unbroken to the end and at
// least one command matches.
func (m *Model) updateSlashPicker() {
	filter, active := agent.SlashFilter(m.textarea.Value())
	if !active {
		m.slashActive = false
		m.slashMatches = nil
		return
	}
	matches := agent.MatchCommands(m.slashCommands, filter)
	m.slashMatches = matches
	m.slashActive = len(matches) > 0
	if m.slashCursor >= len(matches) {
		m.slashCursor = 0
	}
}

// acceptSlashCommand inserts the highlighted command into the buffer and
// queues it for the next send.
func (m *Model) acceptSlashCommand() {
	if m.slashCursor >= len(m.slashMatches) {
		return
	}
	cmd := m.slashMatches[m.slashCursor]
	m.textarea.SetValue(agent.InsertCommand(m.textarea.Value(), cmd))
	m.textarea.CursorEnd()
	m.pendingCommands = append(m.pendingCommands, cmd)
	m.slashActive = false
	m.slashMatches = nil
	m.slashCursor = 0
}
