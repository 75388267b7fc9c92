package tui

import (
	"strings"
	"testing"

	"lazypulumi/internal/pulumi"
)

func TestView_SplashShowsChecks(t *testing.T) {
	m := newTestModel()
	m.checks = passingChecks()
	m.version = "1.2.3"

	out := m.View()
	if !strings.Contains(out, "PULUMI_ACCESS_TOKEN") {
		t.Error("splash should name the token check")
	}
	if !strings.Contains(out, "Pulumi CLI") {
		t.Error("splash should name the CLI check")
	}
	if !strings.Contains(out, "Don't show this screen again") {
		t.Error("splash should offer the skip checkbox once checks pass")
	}
	if !strings.Contains(out, "1.2.3") {
		t.Error("splash should show the version")
	}
}

func TestView_SplashFailureHidesCheckbox(t *testing.T) {
	m := newTestModel()
	m.checks.Token.Fail("PULUMI_ACCESS_TOKEN is not set")
	m.checks.CLI.Pass("Version: v3.100.0")

	out := m.View()
	if strings.Contains(out, "Don't show this screen again") {
		t.Error("a failed check must not offer to skip the splash")
	}
	if !strings.Contains(out, "PULUMI_ACCESS_TOKEN is not set") {
		t.Error("the failure reason should be visible")
	}
}

func TestView_HeaderShowsTabsAndOrg(t *testing.T) {
	m := mainModel()

	out := m.View()
	for _, label := range []string{"Dashboard", "Stacks", "Environments", "Agent", "Platform"} {
		if !strings.Contains(out, label) {
			t.Errorf("header should list the %s tab", label)
		}
	}
	if !strings.Contains(out, "acme") {
		t.Error("header should show the active organization")
	}
}

func TestView_StacksTabListsStacks(t *testing.T) {
	m := mainModel()
	m.activeTab = TabStacks
	m.stacks.SetItems([]pulumi.Stack{
		{OrgName: "acme", ProjectName: "web", StackName: "prod", LastUpdate: 1700000000},
	})

	out := m.View()
	if !strings.Contains(out, "acme/web/prod") {
		t.Errorf("expected the stack row, got:\n%s", out)
	}
}

func TestView_ErrorPopupOverlaysScreen(t *testing.T) {
	m := mainModel()
	m.errorText = "API error: 401 - unauthorized"

	out := m.View()
	if !strings.Contains(out, "unauthorized") {
		t.Error("the error text should be visible")
	}
}

func TestView_TaskDetailsPopup(t *testing.T) {
	m := mainModel()
	m.showTaskDetails = true
	m.taskDetails = &pulumi.Task{
		ID:     "task-1",
		Name:   "rotate credentials",
		Status: "completed",
		LinkedPRs: []pulumi.LinkedPR{
			{Number: 42, Title: "Rotate keys", State: "open"},
		},
	}

	out := m.View()
	if !strings.Contains(out, "rotate credentials") {
		t.Error("details should show the task name")
	}
	if !strings.Contains(out, "#42") {
		t.Error("details should list linked PRs")
	}
}

func TestView_NotReadyBeforeResize(t *testing.T) {
	m := NewModel(Options{})
	if out := m.View(); !strings.Contains(out, "Starting") {
		t.Errorf("expected the placeholder before the first resize, got %q", out)
	}
}
