package tui

import (
	"fmt"
	"strings"
)

func (m Model) viewErrorPopup() string {
	body := popupTitleStyle.Render("Error") + "\n\n" +
		m.errorText + "\n\n" +
		footerStyle.Render("esc: dismiss")
	return errorPopupStyle.Width(popupWidth(m.width)).Render(body)
}

func (m Model) viewHelpPopup() string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Global", [][2]string{
			{"tab / shift+tab", "switch tab"},
			{"o", "change organization"},
			{"r", "refresh all data"},
			{"l", "view logs"},
			{"?", "this help"},
			{"q / ctrl+c", "quit"},
		}},
		{"Stacks", [][2]string{
			{"j/k", "move"},
			{"enter", "load update history"},
			{"c", "copy stack URL"},
		}},
		{"Environments", [][2]string{
			{"enter", "load definition"},
			{"o", "open and resolve values"},
			{"e", "edit definition"},
			{"y", "copy document"},
			{"c", "copy environment name"},
		}},
		{"Agent", [][2]string{
			{"enter", "open task / send message"},
			{"n", "new task"},
			{"d", "task details"},
			{"y", "copy last reply"},
			{"i", "focus input"},
			{"/", "slash commands"},
			{"j/k g/G", "scroll transcript"},
		}},
		{"Platform", [][2]string{
			{"[ / ]", "switch section"},
			{"enter", "load package readme"},
		}},
	}

	var b strings.Builder
	b.WriteString(popupTitleStyle.Render("Keyboard shortcuts"))
	for _, s := range sections {
		b.WriteString("\n\n" + headingStyle.Render(s.title))
		for _, k := range s.keys {
			fmt.Fprintf(&b, "\n  %-16s %s", k[0], k[1])
		}
	}
	return popupStyle.Width(popupWidth(m.width)).Render(b.String())
}

func (m Model) viewLogsPopup() string {
	body := popupTitleStyle.Render("Logs") + "\n\n" +
		m.logsViewport.View() + "\n\n" +
		footerStyle.Render("j/k: scroll  y: copy  esc: close")
	return popupStyle.Width(popupWidth(m.width)).Render(body)
}

func (m Model) viewOrgPickerPopup() string {
	var b strings.Builder
	b.WriteString(popupTitleStyle.Render("Switch organization"))
	b.WriteString("\n\n")
	b.WriteString("Filter: " + m.orgPicker.Filter())
	b.WriteByte('\n')

	items := m.orgPicker.Items()
	if len(items) == 0 {
		b.WriteString("\n" + rowStyle.Render("No matching organizations."))
	}
	for i, org := range items {
		b.WriteByte('\n')
		if i == m.orgPicker.Cursor() {
			b.WriteString(selectedRowStyle.Render(org))
		} else {
			b.WriteString(rowStyle.Render(org))
		}
	}
	b.WriteString("\n\n" + footerStyle.Render("type to filter  enter: select  esc: cancel"))
	return popupStyle.Render(b.String())
}

func (m Model) viewEnvEditorPopup() string {
	body := popupTitleStyle.Render("Edit "+m.envEditing.FullName()) + "\n\n" +
		m.envEditor.View() + "\n\n" +
		footerStyle.Render("ctrl+s: save  esc: cancel")
	return popupStyle.Render(body)
}

func (m Model) viewTaskDetailsPopup() string {
	t := m.taskDetails
	if t == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(popupTitleStyle.Render("Task details"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Name      %s\n", t.DisplayName())
	fmt.Fprintf(&b, "Status    %s\n", t.Status)
	fmt.Fprintf(&b, "Created   %s\n", t.CreatedAt)
	if t.CreatedBy != nil {
		fmt.Fprintf(&b, "By        %s\n", t.CreatedBy.Login)
	}
	if t.URL != "" {
		fmt.Fprintf(&b, "URL       %s\n", t.URL)
	}

	if len(t.LinkedPRs) > 0 {
		b.WriteString("\n" + headingStyle.Render("Linked PRs"))
		for _, pr := range t.LinkedPRs {
			fmt.Fprintf(&b, "\n  #%d %s (%s)", pr.Number, pr.Title, pr.State)
		}
		b.WriteByte('\n')
	}
	if len(t.Entities) > 0 {
		b.WriteString("\n" + headingStyle.Render("Entities"))
		for _, e := range t.Entities {
			fmt.Fprintf(&b, "\n  %-12s %s", e.Type, e.Name)
		}
		b.WriteByte('\n')
	}
	if len(t.Policies) > 0 {
		b.WriteString("\n" + headingStyle.Render("Policies"))
		for _, p := range t.Policies {
			fmt.Fprintf(&b, "\n  %s (%s)", p.Name, p.EnforcementLevel)
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n" + footerStyle.Render("esc: close"))
	return popupStyle.Width(popupWidth(m.width)).Render(b.String())
}
