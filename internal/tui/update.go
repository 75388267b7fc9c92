package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"lazypulumi/internal/agent"
	"lazypulumi/internal/config"
)

// Update is the single message dispatcher. Keys go through the router in
// handlers_key.go; everything else is absorbed here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.recalculateLayout()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.conversation.Thinking() {
			m.refreshTranscript()
		}
		return m, cmd

	case checksDoneMsg:
		return m.handleChecksDone(msg)

	case orgsLoadedMsg:
		return m.handleOrgsLoaded(msg)

	case stacksLoadedMsg:
		m.finishLoad()
		m.stacks.SetItems(msg.stacks)
		return m, nil

	case stackUpdatesLoadedMsg:
		m.stackUpdates = msg.updates
		m.updatesForStack = msg.stack
		return m, nil

	case environmentsLoadedMsg:
		m.finishLoad()
		m.environments.SetItems(msg.environments)
		return m, nil

	case envDetailsLoadedMsg:
		m.envDetails = msg.details
		m.envDetailsFor = msg.env
		m.refreshEnvPane()
		return m, nil

	case envUpdatedMsg:
		m.logger.Info("environment updated", "environment", msg.env)
		// Refresh the definition so the pane shows the saved revision.
		for _, env := range m.environments.Items() {
			if env.FullName() == msg.env {
				return m, loadEnvDetails(m.client, env)
			}
		}
		return m, nil

	case envOpenedMsg:
		m.envValues = msg.values
		m.envValuesFor = msg.env
		m.refreshEnvPane()
		return m, nil

	case tasksLoadedMsg:
		m.finishLoad()
		m.tasks.SetItems(msg.tasks)
		return m, nil

	case slashCommandsLoadedMsg:
		m.finishLoad()
		m.slashCommands = msg.commands
		m.logger.Info("slash commands loaded", "count", len(msg.commands))
		return m, nil

	case resourcesLoadedMsg:
		m.finishLoad()
		m.resources.SetItems(msg.resources)
		return m, nil

	case servicesLoadedMsg:
		m.finishLoad()
		m.services.SetItems(msg.services)
		return m, nil

	case packagesLoadedMsg:
		m.finishLoad()
		m.packages.SetItems(msg.packages)
		return m, nil

	case templatesLoadedMsg:
		m.finishLoad()
		m.templates.SetItems(msg.templates)
		return m, nil

	case readmeLoadedMsg:
		m.finishLoad()
		m.readmes[msg.key] = msg.content
		return m, nil

	case loadErrMsg:
		m.finishLoad()
		m.logger.Warn("background load failed", "label", msg.label, "error", msg.err)
		return m, nil

	case errMsg:
		m.setError(msg.err)
		return m, nil

	case taskCreatedMsg:
		m.conversation.SendAccepted(msg.taskID)
		m.logger.WithTask(msg.taskID).Info("task created")
		return m, nil

	case taskContinuedMsg:
		m.conversation.SendAccepted(m.conversation.TaskID)
		return m, nil

	case sendFailedMsg:
		m.conversation.SendFailed()
		m.setError(msg.err)
		return m, nil

	case pollResultMsg:
		return m.handlePollResult(msg)

	case pollFailedMsg:
		m.logger.Warn("poll failed", "error", msg.err)
		return m, nil

	case taskMetadataMsg:
		m.taskDetails = msg.task
		m.showTaskDetails = true
		return m, nil
	}

	return m, nil
}

// finishLoad decrements the pending-loads counter for one fetch result.
func (m *Model) finishLoad() {
	if m.pendingLoads > 0 {
		m.pendingLoads--
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}

	if m.conversation.Tick() && m.org != "" && m.conversation.TaskID != "" {
		cmds = append(cmds, pollTask(m.client, m.org, m.conversation.TaskID))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleChecksDone(msg checksDoneMsg) (tea.Model, tea.Cmd) {
	m.checks = msg.checks
	m.checksStarted = true

	if !m.checks.AllPassed() {
		// Failures hold the splash; quit is the only way out.
		return m, nil
	}

	var cmd tea.Cmd
	if !m.loadsStarted {
		m.loadsStarted = true
		cmd = loadOrganizations(m.client)
	}
	if !m.prefs.ShowSplash {
		m.showSplash = false
	}
	return m, cmd
}

func (m Model) handleOrgsLoaded(msg orgsLoadedMsg) (tea.Model, tea.Cmd) {
	m.organizations = msg.orgs
	m.orgPicker.SetItems(msg.orgs)

	selected := ""
	for _, candidate := range []string{m.client.DefaultOrg(), msg.defaultOrg} {
		if candidate == "" {
			continue
		}
		for _, org := range msg.orgs {
			if org == candidate {
				selected = candidate
				break
			}
		}
		if selected != "" {
			break
		}
	}
	if selected == "" && len(msg.orgs) > 0 {
		selected = msg.orgs[0]
	}

	if selected == "" {
		return m, nil
	}
	return m.switchOrg(selected)
}

// switchOrg activates an organization and fans out a full refresh.
func (m Model) switchOrg(org string) (tea.Model, tea.Cmd) {
	m.org = org
	m.client.SetDefaultOrg(org)
	m.logger.WithOrg(org).Info("organization selected")
	return m.refresh()
}

// refresh re-fetches everything for the active organization.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	if m.org == "" {
		return m, nil
	}
	cmds := refreshCmds(m.client, m.org)
	m.pendingLoads += len(cmds)
	return m, tea.Batch(cmds...)
}

func (m Model) handlePollResult(msg pollResultMsg) (tea.Model, tea.Cmd) {
	if msg.taskID != m.conversation.TaskID {
		// Stale result from a task the user has navigated away from.
		return m, nil
	}

	m.conversation.ApplyPoll(msg.messages, msg.status, msg.statusKnown)
	m.refreshTranscript()

	if m.conversation.State() == agent.StateStopped && m.activeTab == TabAgent {
		m.conversation.Suspend()
	}
	return m, nil
}

// dismissSplash closes the splash and persists the checkbox choice.
func (m *Model) dismissSplash() {
	m.showSplash = false
	m.prefs.ShowSplash = !m.splashSkip
	if err := config.SavePreferences(m.prefs); err != nil {
		m.logger.Warn("saving preferences failed", "error", err)
	}
}

// startNewTask clears the conversation for a fresh exchange.
func (m *Model) startNewTask() {
	m.conversation.Reset()
	m.pendingCommands = nil
	m.taskListVisible = false
	m.inputFocused = true
	m.pinnedBottom = true
	m.textarea.Reset()
	m.textarea.Focus()
	m.refreshTranscript()
}
