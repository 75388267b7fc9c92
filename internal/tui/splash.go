package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lazypulumi/internal/startup"
)

const splashLogo = `
  __                         ___       __           _
 / /  ___ ____ __ __  ____  / _ \__ __/ /_ ____ _  (_)
/ /__/ _ ` + "`" + `/_ // // / /___/ / ___/ // / / // /  ' \/ /
\____\_,_//__/\_, /       /_/   \_,_/_/ \_,_/_/_/_/_/
             /___/
`

// viewSplash renders the startup screen with check status and the
// "don't show again" toggle.
func (m Model) viewSplash() string {
	var b strings.Builder

	b.WriteString(logoStyle.Render(strings.TrimRight(splashLogo, "\n")))
	b.WriteString("\n\n")
	if m.version != "" {
		b.WriteString(footerStyle.Render("version " + m.version))
		b.WriteString("\n\n")
	}

	b.WriteString(renderCheck(m.checks.Token, m.spinner.View()))
	b.WriteByte('\n')
	b.WriteString(renderCheck(m.checks.CLI, m.spinner.View()))
	b.WriteString("\n\n")

	switch {
	case m.checks.AnyFailed():
		b.WriteString(checkFailStyle.Render("Fix the failing checks above, then restart."))
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("q: quit"))
	case m.checks.AllPassed():
		box := "[ ]"
		if m.splashSkip {
			box = "[x]"
		}
		b.WriteString(box + " Don't show this screen again (space to toggle)")
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render("enter: continue  q: quit"))
	default:
		b.WriteString(footerStyle.Render("Running checks..."))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderCheck(c startup.Check, spin string) string {
	var mark string
	switch c.State {
	case startup.CheckPassed:
		mark = checkPassStyle.Render("✓")
	case startup.CheckFailed:
		mark = checkFailStyle.Render("✗")
	default:
		mark = spin
	}
	line := mark + " " + c.Name
	if c.Detail != "" {
		line += "  " + footerStyle.Render(c.Detail)
	}
	return line
}
