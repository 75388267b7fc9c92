package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"lazypulumi/internal/agent"
	"lazypulumi/internal/pulumi"
	"lazypulumi/internal/startup"
)

// tickInterval paces spinners and poll counters.
const tickInterval = 100 * time.Millisecond

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func runStartupChecks() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		checks := startup.NewChecks()
		checks.Token = startup.CheckToken()
		checks.CLI = startup.CheckCLI(ctx)
		return checksDoneMsg{checks: checks}
	}
}

func loadOrganizations(client *pulumi.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		orgs, err := client.ListOrganizations(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return orgsLoadedMsg{orgs: orgs, defaultOrg: startup.DefaultOrg(ctx)}
	}
}

// refreshCmds fans out every data load for the organization. The caller
// sets pendingLoads to the length of the returned slice; each command
// reports exactly one message back.
func refreshCmds(client *pulumi.Client, org string) []tea.Cmd {
	bg := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), 60*time.Second)
	}

	return []tea.Cmd{
		func() tea.Msg {
			ctx, cancel := bg()
			defer cancel()
			stacks, err := client.ListStacks(ctx, org)
			if err != nil {
				return loadErrMsg{label: "Stacks", err: err}
			}
			return stacksLoadedMsg{stacks: stacks}
		},
		func() tea.Msg {
			ctx, cancel := bg()
			defer cancel()
			envs, err := client.ListEnvironments(ctx, org)
			if err != nil {
				return loadErrMsg{label: "Environments", err: err}
			}
			return environmentsLoadedMsg{environments: envs}
		},
		func() tea.Msg {
			ctx, cancel := bg()
			defer cancel()
			tasks, err := client.ListTasks(ctx, org)
			if err != nil {
				return loadErrMsg{label: "Agent tasks", err: err}
			}
			return tasksLoadedMsg{tasks: tasks}
		},
		func() tea.Msg {
			ctx, cancel := bg()
			defer cancel()
			commands, err := client.ListSlashCommands(ctx, org)
			if err != nil {
				// The endpoint is optional; an empty set is fine.
				return slashCommandsLoadedMsg{}
			}
			return slashCommandsLoadedMsg{commands: commands}
		},
		func() tea.Msg {
			ctx, cancel := bg()
			defer cancel()
			resources, err := client.SearchResources(ctx, org, "")
			if err != nil {
				return loadErrMsg{label: "Resources", err: err}
			}
			return resourcesLoadedMsg{resources: resources}
		},
		func() tea.Msg {
			ctx, cancel := bg()
			defer cancel()
			services, err := client.ListServices(ctx, org)
			if err != nil {
				return loadErrMsg{label: "Services", err: err}
			}
			return servicesLoadedMsg{services: services}
		},
		func() tea.Msg {
			ctx, cancel := bg()
			defer cancel()
			packages, err := client.ListRegistryPackages(ctx, org)
			if err != nil {
				return loadErrMsg{label: "Registry packages", err: err}
			}
			return packagesLoadedMsg{packages: packages}
		},
		func() tea.Msg {
			ctx, cancel := bg()
			defer cancel()
			templates, err := client.ListRegistryTemplates(ctx, org)
			if err != nil {
				return loadErrMsg{label: "Registry templates", err: err}
			}
			return templatesLoadedMsg{templates: templates}
		},
	}
}

func loadStackUpdates(client *pulumi.Client, stack pulumi.Stack) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		updates, err := client.ListStackUpdates(ctx, stack.OrgName, stack.ProjectName, stack.StackName)
		if err != nil {
			return errMsg{err: err}
		}
		return stackUpdatesLoadedMsg{stack: stack.FullName(), updates: updates}
	}
}

func loadEnvDetails(client *pulumi.Client, env pulumi.Environment) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		details, err := client.GetEnvironment(ctx, env.Organization, env.Project, env.Name)
		if err != nil {
			return errMsg{err: err}
		}
		return envDetailsLoadedMsg{env: env.FullName(), details: details}
	}
}

func openEnvironment(client *pulumi.Client, env pulumi.Environment) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		values, err := client.OpenEnvironment(ctx, env.Organization, env.Project, env.Name)
		if err != nil {
			return errMsg{err: err}
		}
		return envOpenedMsg{env: env.FullName(), values: values}
	}
}

func updateEnvironment(client *pulumi.Client, env pulumi.Environment, yaml string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := client.UpdateEnvironment(ctx, env.Organization, env.Project, env.Name, yaml); err != nil {
			return errMsg{err: err}
		}
		return envUpdatedMsg{env: env.FullName()}
	}
}

func loadReadme(client *pulumi.Client, key, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		content, err := client.FetchReadme(ctx, url)
		if err != nil {
			return loadErrMsg{label: "README", err: err}
		}
		return readmeLoadedMsg{key: key, content: content}
	}
}

func createTask(client *pulumi.Client, org, content string, commands []pulumi.SlashCommand) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		taskID, err := client.CreateTask(ctx, org, content, commands)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return taskCreatedMsg{taskID: taskID}
	}
}

func continueTask(client *pulumi.Client, org, taskID, content string, commands []pulumi.SlashCommand) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := client.ContinueTask(ctx, org, taskID, content, commands); err != nil {
			return sendFailedMsg{err: err}
		}
		return taskContinuedMsg{}
	}
}

// pollTask fetches the event log and the task metadata in parallel. A
// metadata failure degrades to statusKnown=false; an event failure fails
// the whole poll, which the UI logs and drops.
func pollTask(client *pulumi.Client, org, taskID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var (
			events []pulumi.TaskEvent
			task   *pulumi.Task
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			events, err = client.ListTaskEvents(gctx, org, taskID)
			return err
		})
		g.Go(func() error {
			// Best effort; status just rides along when available.
			task, _ = client.GetTask(gctx, org, taskID)
			return nil
		})
		if err := g.Wait(); err != nil {
			return pollFailedMsg{err: err}
		}

		msg := pollResultMsg{
			taskID:   taskID,
			messages: agent.TranslateEvents(events),
		}
		if task != nil {
			msg.status = task.Status
			msg.statusKnown = true
		}
		return msg
	}
}

func loadTaskMetadata(client *pulumi.Client, org, taskID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		task, err := client.GetTask(ctx, org, taskID)
		if err != nil {
			return errMsg{err: err}
		}
		return taskMetadataMsg{task: task}
	}
}
