package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lazypulumi/internal/pulumi"
)

// viewDashboard shows counts across the whole organization at a glance.
func (m Model) viewDashboard(height int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Overview"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		count int
	}{
		{"Stacks", m.stacks.Len()},
		{"Environments", m.environments.Len()},
		{"Agent tasks", m.tasks.Len()},
		{"Packages", m.packages.Len()},
		{"Templates", m.templates.Len()},
		{"Services", m.services.Len()},
		{"Resources", m.resources.Len()},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-14s %d\n", r.label, r.count)
	}

	if recent := m.recentStacks(5); len(recent) > 0 {
		b.WriteString("\n" + headingStyle.Render("Recently updated stacks") + "\n")
		for _, s := range recent {
			fmt.Fprintf(&b, "  %-50s %s\n", s.FullName(), s.LastUpdateFormatted())
		}
	}

	if m.Loading() {
		b.WriteString("\n" + m.spinner.View() + " loading...")
	}
	return b.String()
}

// recentStacks returns the n most recently updated stacks.
func (m Model) recentStacks(n int) []pulumi.Stack {
	stacks := append([]pulumi.Stack(nil), m.stacks.Items()...)
	sort.Slice(stacks, func(i, j int) bool {
		return stacks[i].LastUpdate > stacks[j].LastUpdate
	})
	if len(stacks) > n {
		stacks = stacks[:n]
	}
	return stacks
}

func (m Model) viewStacks(height int) string {
	listWidth := m.width - 2
	if m.updatesForStack != "" {
		listWidth = m.width/2 - 2
	}
	left := headingStyle.Render(countLabel(m.stacks.Len(), "stacks")) + "\n" +
		listRows(&m.stacks, height-2, func(s pulumi.Stack, selected bool) string {
			line := clipRow(fmt.Sprintf("%-50s %s", s.FullName(), s.LastUpdateFormatted()), listWidth)
			if selected {
				return selectedRowStyle.Render(line)
			}
			return rowStyle.Render(line)
		})

	if m.updatesForStack == "" {
		return left
	}

	right := headingStyle.Render("Updates ("+m.updatesForStack+")") + "\n" +
		m.viewStackUpdates(height - 2)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.width/2).Render(left),
		right)
}

func (m Model) viewStackUpdates(height int) string {
	if len(m.stackUpdates) == 0 {
		return rowStyle.Render("No updates.")
	}
	var b strings.Builder
	for i, u := range m.stackUpdates {
		if i >= height {
			break
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s v%-4d %s", u.ResultSymbol(), u.Version, u.ChangesSummary())
	}
	return b.String()
}

func (m Model) viewEnvironments(height int) string {
	left := headingStyle.Render(countLabel(m.environments.Len(), "environments")) + "\n" +
		listRows(&m.environments, height-2, func(e pulumi.Environment, selected bool) string {
			if selected {
				return selectedRowStyle.Render(e.FullName())
			}
			return rowStyle.Render(e.FullName())
		})

	if m.envDetails == nil && m.envValues == nil {
		return left
	}

	pane := m.envViewport.View()
	if m.envFocusPane {
		pane = inputActiveStyle.Render(pane)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.width/2).Render(left),
		pane)
}

func (m Model) viewAgent(height int) string {
	if m.taskListVisible {
		return headingStyle.Render(countLabel(m.tasks.Len(), "tasks")) + "\n" +
			listRows(&m.tasks, height-2, func(t pulumi.Task, selected bool) string {
				line := clipRow(fmt.Sprintf("%-40s %-12s %s", t.DisplayName(), t.Status, t.CreatedAt), m.width-2)
				if selected {
					return selectedRowStyle.Render(line)
				}
				return rowStyle.Render(line)
			})
	}

	transcript := m.transcript.View()
	bar := renderScrollbar(m.transcript.Height, m.transcriptLines, m.transcript.YOffset)
	body := lipgloss.JoinHorizontal(lipgloss.Top, transcript, bar)

	input := inputStyle.Render(m.textarea.View())
	if m.inputFocused {
		input = inputActiveStyle.Render(m.textarea.View())
	}

	if m.slashActive {
		input = m.viewSlashPicker() + "\n" + input
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, input)
}

// viewSlashPicker lists matching slash commands above the input.
func (m Model) viewSlashPicker() string {
	var b strings.Builder
	b.WriteString(popupTitleStyle.Render("Commands"))
	for i, c := range m.slashMatches {
		b.WriteByte('\n')
		line := fmt.Sprintf("/%s  %s", c.Name, c.Description)
		if i == m.slashCursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
	}
	return popupStyle.Render(b.String())
}

func (m Model) viewPlatform(height int) string {
	var sections []string
	for s := platformSection(0); s < sectionCount; s++ {
		if s == m.section {
			sections = append(sections, tabActiveStyle.Render(s.String()))
		} else {
			sections = append(sections, tabInactiveStyle.Render(s.String()))
		}
	}
	header := strings.Join(sections, " ")
	listHeight := height - 3

	var body string
	switch m.section {
	case sectionPackages:
		body = m.viewPackages(listHeight)
	case sectionTemplates:
		body = listRows(&m.templates, listHeight, func(t pulumi.RegistryTemplate, selected bool) string {
			line := clipRow(fmt.Sprintf("%-40s %-12s %s", t.Display(), t.Language, t.Description), m.width-2)
			if selected {
				return selectedRowStyle.Render(line)
			}
			return rowStyle.Render(line)
		})
	case sectionServices:
		body = listRows(&m.services, listHeight, func(s pulumi.Service, selected bool) string {
			line := clipRow(fmt.Sprintf("%-30s %-22s %s", s.Name, s.ItemCount(), s.Description), m.width-2)
			if selected {
				return selectedRowStyle.Render(line)
			}
			return rowStyle.Render(line)
		})
	case sectionResources:
		body = listRows(&m.resources, listHeight, func(r pulumi.Resource, selected bool) string {
			line := clipRow(fmt.Sprintf("%-35s %-45s %s", r.Name, r.Type, r.Project), m.width-2)
			if selected {
				return selectedRowStyle.Render(line)
			}
			return rowStyle.Render(line)
		})
	}
	return header + "\n\n" + body
}

func (m Model) viewPackages(height int) string {
	readme, hasReadme := "", false
	if pkg, ok := m.packages.Selected(); ok {
		readme, hasReadme = m.readmes[pkg.Key()]
	}
	listWidth := m.width - 2
	if hasReadme {
		listWidth = m.width/2 - 2
	}

	list := listRows(&m.packages, height, func(p pulumi.RegistryPackage, selected bool) string {
		line := clipRow(fmt.Sprintf("%-35s %-12s %s", p.DisplayName(), p.Version, p.Description), listWidth)
		if selected {
			return selectedRowStyle.Render(line)
		}
		return rowStyle.Render(line)
	})

	if !hasReadme {
		return list
	}

	rendered := readme
	if m.mdRenderer != nil {
		if out, err := m.mdRenderer.Render(readme); err == nil {
			rendered = out
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.width/2).Render(list),
		lipgloss.NewStyle().Width(m.width/2-2).MaxHeight(height).Render(rendered))
}
