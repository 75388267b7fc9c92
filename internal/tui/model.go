// Package tui implements the terminal interface: one Bubble Tea program
// whose model owns all mutable state, fed by worker commands that fetch
// from the Pulumi Cloud API and report back as messages.
package tui

import (
	"encoding/json"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"lazypulumi/internal/agent"
	"lazypulumi/internal/config"
	"lazypulumi/internal/logging"
	"lazypulumi/internal/pulumi"
	"lazypulumi/internal/startup"
)

// Tab identifies one of the top-level views.
type Tab int

const (
	TabDashboard Tab = iota
	TabStacks
	TabEnvironments
	TabAgent
	TabPlatform

	tabCount
)

// String returns the tab's header label.
func (t Tab) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabStacks:
		return "Stacks"
	case TabEnvironments:
		return "Environments"
	case TabAgent:
		return "Agent"
	case TabPlatform:
		return "Platform"
	default:
		return "?"
	}
}

// platformSection cycles the Platform tab between its four lists.
type platformSection int

const (
	sectionPackages platformSection = iota
	sectionTemplates
	sectionServices
	sectionResources

	sectionCount
)

func (s platformSection) String() string {
	switch s {
	case sectionPackages:
		return "Packages"
	case sectionTemplates:
		return "Templates"
	case sectionServices:
		return "Services"
	case sectionResources:
		return "Resources"
	default:
		return "?"
	}
}

// Options configures a new Model.
type Options struct {
	Client      *pulumi.Client
	Logger      *logging.Logger
	LogBuffer   *LogBuffer
	Preferences config.Preferences
	Version     string
}

// Model is the Bubble Tea model for the whole application.
type Model struct {
	client    *pulumi.Client
	logger    *logging.Logger
	logBuffer *LogBuffer
	prefs     config.Preferences
	version   string

	width  int
	height int
	ready  bool

	// Splash screen and startup checks
	showSplash    bool
	splashSkip    bool // "don't show again" checkbox
	checks        startup.Checks
	checksStarted bool
	loadsStarted  bool

	// Organization scope
	org           string
	organizations []string

	activeTab Tab

	// Background load accounting
	pendingLoads int
	spinner      spinner.Model

	// Stacks tab
	stacks          List[pulumi.Stack]
	stackUpdates    []pulumi.StackUpdate
	updatesForStack string

	// Environments tab
	environments  List[pulumi.Environment]
	envDetails    *pulumi.EnvironmentDetails
	envDetailsFor string
	envValues     json.RawMessage
	envValuesFor  string
	envViewport   viewport.Model
	envFocusPane  bool // false = list, true = detail pane
	showEnvEditor bool
	envEditor     textarea.Model
	envEditing    pulumi.Environment

	// Agent tab
	tasks           List[pulumi.Task]
	conversation    *agent.Conversation
	slashCommands   []pulumi.SlashCommand
	pendingCommands []pulumi.SlashCommand
	slashMatches    []pulumi.SlashCommand
	slashCursor     int
	slashActive     bool
	taskListVisible bool
	transcript      viewport.Model
	transcriptLines int
	pinnedBottom    bool
	textarea        textarea.Model
	inputFocused    bool
	taskDetails     *pulumi.Task
	showTaskDetails bool

	// Platform tab
	packages  List[pulumi.RegistryPackage]
	templates List[pulumi.RegistryTemplate]
	services  List[pulumi.Service]
	resources List[pulumi.Resource]
	readmes   map[string]string
	section   platformSection

	// Popups
	errorText     string
	showHelp      bool
	showLogs      bool
	logsViewport  viewport.Model
	showOrgPicker bool
	orgPicker     List[string]

	mdRenderer *glamour.TermRenderer
}

// NewModel creates the application model.
func NewModel(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	ta := textarea.New()
	ta.Placeholder = "Ask the agent... (/ for commands)"
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	editor := textarea.New()
	editor.CharLimit = 0
	editor.SetHeight(20)
	editor.ShowLineNumbers = true

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	m := Model{
		client:          opts.Client,
		logger:          logger.WithComponent("tui"),
		logBuffer:       opts.LogBuffer,
		prefs:           opts.Preferences,
		version:         opts.Version,
		showSplash:      true,
		checks:          startup.NewChecks(),
		spinner:         sp,
		textarea:        ta,
		envEditor:       editor,
		conversation:    agent.NewConversation(),
		taskListVisible: true,
		pinnedBottom:    true,
		readmes:         make(map[string]string),
		stacks:          NewList(func(s pulumi.Stack) string { return s.FullName() }),
		environments:    NewList(func(e pulumi.Environment) string { return e.FullName() }),
		tasks:           NewList(func(t pulumi.Task) string { return t.DisplayName() }),
		packages:        NewList(func(p pulumi.RegistryPackage) string { return p.DisplayName() }),
		templates:       NewList(func(t pulumi.RegistryTemplate) string { return t.Display() }),
		services:        NewList(func(s pulumi.Service) string { return s.Name }),
		resources:       NewList(func(r pulumi.Resource) string { return r.Name + " " + r.Type }),
		orgPicker:       NewList(func(s string) string { return s }),
		mdRenderer:      renderer,
	}

	if m.logBuffer == nil {
		m.logBuffer = NewLogBuffer(500)
	}
	return m
}

// Init starts the tick loop and the startup checks.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spinner.Tick,
		runStartupChecks(),
	)
}

// Loading reports whether any refresh fetch is still in flight.
func (m Model) Loading() bool { return m.pendingLoads > 0 }

// activeList returns the platform section's list length and cursor movers.
func (m *Model) platformList() interface {
	Next()
	Prev()
	First()
	Last()
} {
	switch m.section {
	case sectionTemplates:
		return &m.templates
	case sectionServices:
		return &m.services
	case sectionResources:
		return &m.resources
	default:
		return &m.packages
	}
}

// setError surfaces a user-facing error in the popup.
func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.errorText = err.Error()
	m.logger.Error("operation failed", "error", err)
}
