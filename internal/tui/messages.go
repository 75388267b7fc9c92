package tui

import (
	"encoding/json"
	"time"

	"lazypulumi/internal/agent"
	"lazypulumi/internal/pulumi"
	"lazypulumi/internal/startup"
)

// tickMsg drives spinners and the polling cadence, every ~100ms.
type tickMsg time.Time

// checksDoneMsg carries the startup check results.
type checksDoneMsg struct {
	checks startup.Checks
}

// orgsLoadedMsg carries the organization list plus the CLI default org.
type orgsLoadedMsg struct {
	orgs       []string
	defaultOrg string
}

type stacksLoadedMsg struct {
	stacks []pulumi.Stack
}

type stackUpdatesLoadedMsg struct {
	stack   string
	updates []pulumi.StackUpdate
}

type environmentsLoadedMsg struct {
	environments []pulumi.Environment
}

type envDetailsLoadedMsg struct {
	env     string
	details *pulumi.EnvironmentDetails
}

type envOpenedMsg struct {
	env    string
	values json.RawMessage
}

// envUpdatedMsg means the PATCH of an environment definition succeeded.
type envUpdatedMsg struct {
	env string
}

type tasksLoadedMsg struct {
	tasks []pulumi.Task
}

type slashCommandsLoadedMsg struct {
	commands []pulumi.SlashCommand
}

type resourcesLoadedMsg struct {
	resources []pulumi.Resource
}

type servicesLoadedMsg struct {
	services []pulumi.Service
}

type packagesLoadedMsg struct {
	packages []pulumi.RegistryPackage
}

type templatesLoadedMsg struct {
	templates []pulumi.RegistryTemplate
}

type readmeLoadedMsg struct {
	key     string
	content string
}

// loadErrMsg is a failed background fetch. It decrements the pending-loads
// counter and lands in the log, never in the error popup.
type loadErrMsg struct {
	label string
	err   error
}

// errMsg is a user-facing error shown in the popup.
type errMsg struct {
	err error
}

// taskCreatedMsg means the create request was accepted.
type taskCreatedMsg struct {
	taskID string
}

// taskContinuedMsg means the continue request was accepted (202).
type taskContinuedMsg struct{}

// sendFailedMsg means a create or continue request failed.
type sendFailedMsg struct {
	err error
}

// pollResultMsg is one poll cycle's outcome. statusKnown is false when the
// metadata fetch failed but the events arrived.
type pollResultMsg struct {
	taskID      string
	messages    []agent.Message
	status      string
	statusKnown bool
}

// pollFailedMsg is a transient poll failure, logged and otherwise dropped.
type pollFailedMsg struct {
	err error
}

// taskMetadataMsg refreshes the details popup for a selected task.
type taskMetadataMsg struct {
	task *pulumi.Task
}
