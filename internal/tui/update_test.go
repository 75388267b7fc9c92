package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lazypulumi/internal/config"
	"lazypulumi/internal/pulumi"
	"lazypulumi/internal/startup"
)

func newTestModel() Model {
	m := NewModel(Options{Preferences: config.DefaultPreferences()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func passingChecks() startup.Checks {
	c := startup.NewChecks()
	c.Token.Pass("Token: pul-a12...cdef")
	c.CLI.Pass("Version: v3.100.0")
	return c
}

func TestUpdate_ChecksFailureHoldsSplash(t *testing.T) {
	m := newTestModel()

	checks := startup.NewChecks()
	checks.Token.Fail("PULUMI_ACCESS_TOKEN is not set")
	checks.CLI.Pass("Version: v3.100.0")

	updated, cmd := m.Update(checksDoneMsg{checks: checks})
	m = updated.(Model)

	if !m.showSplash {
		t.Error("splash should stay up after a failed check")
	}
	if cmd != nil {
		t.Error("no loads should start after a failed check")
	}

	// Enter must not dismiss the splash either.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !updated.(Model).showSplash {
		t.Error("enter should not dismiss a splash with failed checks")
	}
}

func TestUpdate_ChecksPassStartsLoads(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(checksDoneMsg{checks: passingChecks()})
	m = updated.(Model)

	if cmd == nil {
		t.Error("passing checks should kick off the organization load")
	}
	if !m.loadsStarted {
		t.Error("loadsStarted should be set")
	}
	if !m.showSplash {
		t.Error("splash stays up until dismissed when preferences allow it")
	}
}

func TestUpdate_SplashSkippedByPreference(t *testing.T) {
	m := NewModel(Options{Preferences: config.Preferences{ShowSplash: false}})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	updated, _ = m.Update(checksDoneMsg{checks: passingChecks()})
	if updated.(Model).showSplash {
		t.Error("splash should auto-hide when the preference is off")
	}
}

func TestUpdate_OrgsLoadedPicksDefault(t *testing.T) {
	m := newTestModel()
	client, err := pulumi.New("pul-test")
	if err != nil {
		t.Fatal(err)
	}
	m.client = client

	updated, cmd := m.Update(orgsLoadedMsg{
		orgs:       []string{"personal", "acme", "globex"},
		defaultOrg: "acme",
	})
	m = updated.(Model)

	if m.org != "acme" {
		t.Errorf("expected the CLI default org, got %q", m.org)
	}
	if cmd == nil {
		t.Error("selecting an org should fan out a refresh")
	}
	if m.pendingLoads == 0 {
		t.Error("refresh should account for its pending loads")
	}
}

func TestUpdate_OrgsLoadedFallsBackToFirst(t *testing.T) {
	m := newTestModel()
	client, err := pulumi.New("pul-test")
	if err != nil {
		t.Fatal(err)
	}
	m.client = client

	updated, _ := m.Update(orgsLoadedMsg{
		orgs:       []string{"personal", "acme"},
		defaultOrg: "not-a-member",
	})

	if got := updated.(Model).org; got != "personal" {
		t.Errorf("expected first org fallback, got %q", got)
	}
}

func TestUpdate_LoadResultsDrainPendingLoads(t *testing.T) {
	m := newTestModel()
	m.pendingLoads = 3

	updated, _ := m.Update(stacksLoadedMsg{stacks: []pulumi.Stack{{StackName: "dev"}}})
	m = updated.(Model)
	updated, _ = m.Update(environmentsLoadedMsg{})
	m = updated.(Model)
	updated, _ = m.Update(loadErrMsg{label: "tasks", err: errors.New("boom")})
	m = updated.(Model)

	if m.pendingLoads != 0 {
		t.Errorf("expected all loads drained, got %d", m.pendingLoads)
	}
	if m.Loading() {
		t.Error("Loading should be false once drained")
	}
	if m.stacks.Len() != 1 {
		t.Errorf("stacks should be stored, got %d", m.stacks.Len())
	}

	// Extra results never push the counter negative.
	updated, _ = m.Update(tasksLoadedMsg{})
	if updated.(Model).pendingLoads != 0 {
		t.Error("pendingLoads must saturate at zero")
	}
}

func TestUpdate_LoadErrorNeverOpensPopup(t *testing.T) {
	m := newTestModel()
	m.pendingLoads = 1

	updated, _ := m.Update(loadErrMsg{label: "stacks", err: errors.New("500")})
	if updated.(Model).errorText != "" {
		t.Error("background load failures belong in the log, not the popup")
	}
}

func TestUpdate_SendFailedSurfacesError(t *testing.T) {
	m := newTestModel()
	m.conversation.StartSend("hello")

	updated, _ := m.Update(sendFailedMsg{err: errors.New("API error: 502 - bad gateway")})
	m = updated.(Model)

	if m.errorText == "" {
		t.Error("send failures must open the error popup")
	}
	if m.conversation.Thinking() {
		t.Error("the thinking indicator must clear on failure")
	}
}

func TestUpdate_PollResultForOtherTaskIgnored(t *testing.T) {
	m := newTestModel()
	m.conversation.LoadTask("task-a")

	updated, _ := m.Update(pollResultMsg{
		taskID:      "task-b",
		status:      "completed",
		statusKnown: true,
	})
	m = updated.(Model)

	if len(m.conversation.Messages) != 0 {
		t.Error("a stale poll result must not touch the transcript")
	}
}

func TestUpdate_TaskCreatedStartsPolling(t *testing.T) {
	m := newTestModel()
	m.conversation.StartSend("deploy it")

	updated, _ := m.Update(taskCreatedMsg{taskID: "task-1"})
	m = updated.(Model)

	if m.conversation.TaskID != "task-1" {
		t.Errorf("expected task id recorded, got %q", m.conversation.TaskID)
	}
}

func TestUpdate_WindowSizeMarksReady(t *testing.T) {
	m := NewModel(Options{Preferences: config.DefaultPreferences()})
	if m.ready {
		t.Fatal("model should not be ready before the first resize")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !updated.(Model).ready {
		t.Error("resize should mark the model ready")
	}
}
