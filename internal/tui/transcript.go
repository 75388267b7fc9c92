package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"gopkg.in/yaml.v3"

	"lazypulumi/internal/agent"
)

const (
	headerHeight = 3
	footerHeight = 2
	inputHeight  = 5
)

// recalculateLayout resizes every viewport after a terminal resize.
func (m *Model) recalculateLayout() {
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	contentWidth := m.width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	paneWidth := contentWidth/2 - 2
	if paneWidth < 10 {
		paneWidth = 10
	}
	m.envViewport = resizeViewport(m.envViewport, paneWidth, contentHeight-2)

	transcriptHeight := contentHeight - inputHeight
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	m.transcript = resizeViewport(m.transcript, contentWidth, transcriptHeight)
	m.textarea.SetWidth(contentWidth - 2)

	m.logsViewport = resizeViewport(m.logsViewport, popupWidth(m.width), popupHeight(m.height))
	m.envEditor.SetWidth(popupWidth(m.width) - 4)
	m.envEditor.SetHeight(popupHeight(m.height))

	m.refreshTranscript()
	m.refreshEnvPane()
}

func resizeViewport(vp viewport.Model, width, height int) viewport.Model {
	vp.Width = width
	vp.Height = height
	return vp
}

func popupWidth(w int) int {
	pw := w - 10
	if pw > 100 {
		pw = 100
	}
	if pw < 20 {
		pw = 20
	}
	return pw
}

func popupHeight(h int) int {
	ph := h - 8
	if ph > 30 {
		ph = 30
	}
	if ph < 5 {
		ph = 5
	}
	return ph
}

// refreshTranscript re-renders the conversation into the transcript
// viewport, keeping the view glued to the newest message while pinned.
func (m *Model) refreshTranscript() {
	if m.transcript.Width == 0 {
		return
	}

	var b strings.Builder
	for i, msg := range m.conversation.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	if m.conversation.Thinking() {
		b.WriteString("\n")
		b.WriteString(systemNoteStyle.Render(m.spinner.View() + " thinking..."))
		b.WriteString("\n")
	}

	m.transcript.SetContent(b.String())
	// The scrollbar total must match the viewport's own line count.
	m.transcriptLines = m.transcript.TotalLineCount()
	if m.pinnedBottom {
		m.transcript.GotoBottom()
	}
}

func (m *Model) renderMessage(msg agent.Message) string {
	switch msg.Variant {
	case agent.VariantUser:
		return userLabelStyle.Render("You") + "\n" + msg.Content
	case agent.VariantAssistant:
		body := msg.Content
		if m.mdRenderer != nil {
			if rendered, err := m.mdRenderer.Render(msg.Content); err == nil {
				body = strings.TrimRight(rendered, "\n")
			}
		}
		out := assistantLabelStyle.Render("Agent") + "\n" + body
		for _, tc := range msg.ToolCalls {
			out += "\n" + toolLabelStyle.Render("tool: "+tc.Name)
		}
		return out
	case agent.VariantToolCall:
		return toolLabelStyle.Render(msg.Content)
	case agent.VariantToolResponse:
		return toolLabelStyle.Render("Tool") + "\n" + msg.Content
	case agent.VariantToolError:
		return toolErrorStyle.Render("Tool error") + "\n" + msg.Content
	case agent.VariantApprovalRequest:
		return approvalStyle.Render("Approval required") + "\n" + msg.Content
	case agent.VariantTaskNameChange:
		return systemNoteStyle.Render(msg.Content)
	}
	return msg.Content
}

// refreshEnvPane fills the detail viewport with whichever environment
// document is current. Opened values win over the raw definition.
func (m *Model) refreshEnvPane() {
	if m.envViewport.Width == 0 {
		return
	}
	switch {
	case m.envValues != nil:
		m.envViewport.SetContent(headingStyle.Render("Resolved values ("+m.envValuesFor+")") + "\n\n" + renderValues(m.envValues))
	case m.envDetails != nil:
		m.envViewport.SetContent(headingStyle.Render("Definition ("+m.envDetailsFor+")") + "\n\n" + m.envDetails.YAML)
	default:
		m.envViewport.SetContent("")
	}
	m.envViewport.GotoTop()
}

// renderValues re-renders the opened environment's JSON document as YAML,
// which is how the environment was authored. Unparseable bodies are shown
// verbatim.
func renderValues(raw json.RawMessage) string {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return string(raw)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// refreshLogsViewport snapshots the in-memory log buffer into the popup.
func (m *Model) refreshLogsViewport() {
	entries := m.logBuffer.Entries()
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %-5s %s\n", e.Time.Format("15:04:05"), e.Level, e.Message)
	}
	if len(entries) == 0 {
		b.WriteString("No log entries yet.")
	}
	m.logsViewport.SetContent(b.String())
	m.logsViewport.GotoBottom()
}
