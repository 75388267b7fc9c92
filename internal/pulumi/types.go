package pulumi

import (
	"encoding/json"
	"fmt"
	"time"
)

// Stack is a stack summary as returned by the user stacks listing.
type Stack struct {
	OrgName       string `json:"orgName"`
	ProjectName   string `json:"projectName"`
	StackName     string `json:"stackName"`
	LastUpdate    int64  `json:"lastUpdate,omitempty"`
	ResourceCount int    `json:"resourceCount,omitempty"`
	URL           string `json:"url,omitempty"`
}

// FullName returns org/project/stack.
func (s Stack) FullName() string {
	return fmt.Sprintf("%s/%s/%s", s.OrgName, s.ProjectName, s.StackName)
}

// LastUpdateFormatted renders the last update as a local timestamp, or "Never".
func (s Stack) LastUpdateFormatted() string {
	if s.LastUpdate == 0 {
		return "Never"
	}
	return time.Unix(s.LastUpdate, 0).Format("2006-01-02 15:04:05")
}

// ResourceChanges are the per-change counts of a stack update.
type ResourceChanges struct {
	Create int `json:"create"`
	Update int `json:"update"`
	Delete int `json:"delete"`
	Same   int `json:"same"`
}

// StackUpdate is one entry of a stack's update history.
type StackUpdate struct {
	Version         int              `json:"version"`
	StartTime       int64            `json:"startTime,omitempty"`
	EndTime         int64            `json:"endTime,omitempty"`
	Result          string           `json:"result,omitempty"`
	ResourceChanges *ResourceChanges `json:"resourceChanges,omitempty"`
}

// ResultSymbol returns a one-cell marker for the update outcome.
func (u StackUpdate) ResultSymbol() string {
	switch u.Result {
	case "succeeded":
		return "✓"
	case "failed":
		return "✗"
	case "in-progress":
		return "⟳"
	default:
		return "?"
	}
}

// ChangesSummary renders "+n ~n -n" for the update's resource changes.
func (u StackUpdate) ChangesSummary() string {
	if u.ResourceChanges == nil {
		return ""
	}
	out := ""
	if c := u.ResourceChanges.Create; c > 0 {
		out += fmt.Sprintf("+%d ", c)
	}
	if c := u.ResourceChanges.Update; c > 0 {
		out += fmt.Sprintf("~%d ", c)
	}
	if c := u.ResourceChanges.Delete; c > 0 {
		out += fmt.Sprintf("-%d ", c)
	}
	if out == "" {
		return "no changes"
	}
	return out[:len(out)-1]
}

// Environment is an ESC environment summary.
type Environment struct {
	Organization string `json:"organization"`
	Project      string `json:"project"`
	Name         string `json:"name"`
	Created      string `json:"created,omitempty"`
	Modified     string `json:"modified,omitempty"`
}

// FullName returns org/project/name.
func (e Environment) FullName() string {
	return fmt.Sprintf("%s/%s/%s", e.Organization, e.Project, e.Name)
}

// EnvironmentDetails is the environment definition document. The API varies;
// yaml is the source text when present.
type EnvironmentDetails struct {
	YAML       string          `json:"yaml,omitempty"`
	Definition json.RawMessage `json:"definition,omitempty"`
	Created    string          `json:"created,omitempty"`
	Modified   string          `json:"modified,omitempty"`
	Revision   int64           `json:"revision,omitempty"`
}

// TaskUser is the user who created an agent task.
type TaskUser struct {
	Name      string `json:"name,omitempty"`
	Login     string `json:"login,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// LinkedPR is a pull request linked to an agent task.
type LinkedPR struct {
	Number     int    `json:"number,omitempty"`
	Title      string `json:"title,omitempty"`
	URL        string `json:"url,omitempty"`
	Repository string `json:"repository,omitempty"`
	State      string `json:"state,omitempty"`
}

// TaskEntity is a stack, repository, pull request or policy issue involved in
// an agent task.
type TaskEntity struct {
	Type    string `json:"type,omitempty"`
	Name    string `json:"name,omitempty"`
	Project string `json:"project,omitempty"`
	Stack   string `json:"stack,omitempty"`
	URL     string `json:"url,omitempty"`
	Org     string `json:"org,omitempty"`
	Forge   string `json:"forge,omitempty"`
	ID      string `json:"id,omitempty"`
}

// TaskPolicy is a policy active on an agent task.
type TaskPolicy struct {
	Name             string `json:"name,omitempty"`
	PackName         string `json:"packName,omitempty"`
	EnforcementLevel string `json:"enforcementLevel,omitempty"`
}

// Task is an agent task's metadata.
type Task struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	Status    string       `json:"status,omitempty"`
	CreatedAt string       `json:"createdAt,omitempty"`
	UpdatedAt string       `json:"updatedAt,omitempty"`
	URL       string       `json:"url,omitempty"`
	CreatedBy *TaskUser    `json:"createdBy,omitempty"`
	IsShared  bool         `json:"isShared,omitempty"`
	SharedAt  string       `json:"sharedAt,omitempty"`
	LinkedPRs []LinkedPR   `json:"linkedPrs,omitempty"`
	Entities  []TaskEntity `json:"entities,omitempty"`
	Policies  []TaskPolicy `json:"policies,omitempty"`
}

// DisplayName returns the task name, falling back to a shortened id.
func (t Task) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}

// ToolCall is a structured tool invocation attached to an assistant event.
type ToolCall struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

// TaskEventBody is the payload of one event in a task's log. Content can be a
// string, null, or arbitrary JSON depending on the event kind.
type TaskEventBody struct {
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
	ToolCalls  []ToolCall      `json:"toolCalls,omitempty"`
	Name       string          `json:"name,omitempty"`
	ToolCallID string          `json:"toolCallId,omitempty"`
	Message    string          `json:"message,omitempty"`
	IsError    bool            `json:"isError,omitempty"`
}

// ContentString normalizes the content field: strings verbatim, null as the
// empty string, anything else in its serialized JSON form.
func (b TaskEventBody) ContentString() string {
	if len(b.Content) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Content, &s); err == nil {
		return s
	}
	if string(b.Content) == "null" {
		return ""
	}
	return string(b.Content)
}

// TaskEvent is one record of a task's append-only event log.
type TaskEvent struct {
	ID        string         `json:"id,omitempty"`
	Type      string         `json:"type"`
	EventBody *TaskEventBody `json:"eventBody,omitempty"`
}

// SlashCommand is a prompt shortcut offered by the agent commands endpoint.
type SlashCommand struct {
	Name        string `json:"name"`
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
	BuiltIn     bool   `json:"builtIn"`
	ModifiedAt  string `json:"modifiedAt,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

// Reference returns the {{cmd:name:tag}} form inserted into message content.
func (c SlashCommand) Reference() string {
	return fmt.Sprintf("{{cmd:%s:%s}}", c.Name, c.Tag)
}

// RegistryPackage is a component in the package registry.
type RegistryPackage struct {
	Name          string `json:"name"`
	Publisher     string `json:"publisher,omitempty"`
	Source        string `json:"source,omitempty"`
	Version       string `json:"version,omitempty"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	LogoURL       string `json:"logoUrl,omitempty"`
	RepositoryURL string `json:"repositoryUrl,omitempty"`
	ReadmeURL     string `json:"readmeURL,omitempty"`

	// ReadmeContent is fetched lazily, never part of the listing payload.
	ReadmeContent string `json:"-"`
}

// DisplayName prefers the human title over the package name.
func (p RegistryPackage) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// Key is the package identity used to attach lazily loaded READMEs.
func (p RegistryPackage) Key() string {
	source := p.Source
	if source == "" {
		source = "pulumi"
	}
	publisher := p.Publisher
	if publisher == "" {
		publisher = "unknown"
	}
	return fmt.Sprintf("%s/%s/%s", source, publisher, p.Name)
}

// RegistryTemplate is a project template in the registry.
type RegistryTemplate struct {
	Name        string `json:"name"`
	Publisher   string `json:"publisher,omitempty"`
	Source      string `json:"source,omitempty"`
	Version     string `json:"version,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
}

// Display prefers the display name over the template name.
func (t RegistryTemplate) Display() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Name
}

// ServiceOwner identifies who owns a service.
type ServiceOwner struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// ServiceItemCounts summarizes what a service groups together.
type ServiceItemCounts struct {
	Stacks       int `json:"stacks"`
	Environments int `json:"environments"`
}

// Service is a service grouping of stacks and environments.
type Service struct {
	OrganizationName string             `json:"organizationName"`
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	Owner            *ServiceOwner      `json:"owner,omitempty"`
	ItemCountSummary *ServiceItemCounts `json:"itemCountSummary,omitempty"`
	CreatedAt        string             `json:"createdAt,omitempty"`
	ModifiedAt       string             `json:"modifiedAt,omitempty"`
}

// ItemCount renders the service's contents as "n stacks, n envs".
func (s Service) ItemCount() string {
	if s.ItemCountSummary == nil {
		return "0 items"
	}
	return fmt.Sprintf("%d stacks, %d envs",
		s.ItemCountSummary.Stacks, s.ItemCountSummary.Environments)
}

// Resource is one result of the resource search API.
type Resource struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	ID       string `json:"id,omitempty"`
	Stack    string `json:"stack,omitempty"`
	Project  string `json:"project,omitempty"`
	Package  string `json:"package,omitempty"`
	Modified string `json:"modified,omitempty"`
}
