package tui

import (
	"encoding/json"
	"strings"
	"testing"

	"lazypulumi/internal/agent"
)

func TestRenderValues_JSONBecomesYAML(t *testing.T) {
	raw := json.RawMessage(`{"pulumiConfig":{"aws:region":"us-west-2"},"environmentVariables":{"FOO":"bar"}}`)

	out := renderValues(raw)
	if !strings.Contains(out, "aws:region: us-west-2") {
		t.Errorf("expected YAML rendering, got:\n%s", out)
	}
	if strings.Contains(out, "{") {
		t.Errorf("no JSON braces expected, got:\n%s", out)
	}
}

func TestRenderValues_InvalidJSONPassesThrough(t *testing.T) {
	raw := json.RawMessage("not json at all")
	if got := renderValues(raw); got != "not json at all" {
		t.Errorf("unparseable bodies should pass through, got %q", got)
	}
}

func TestRefreshTranscript_RendersRoles(t *testing.T) {
	m := newTestModel()
	m.conversation.Messages = []agent.Message{
		{Variant: agent.VariantUser, Content: "destroy the dev stack"},
		{Variant: agent.VariantToolCall, Content: "Executing: pulumi_destroy"},
		{Variant: agent.VariantToolError, Content: "stack is protected"},
	}

	m.refreshTranscript()

	out := m.transcript.View()
	if !strings.Contains(out, "destroy the dev stack") {
		t.Error("user message missing from the transcript")
	}
	if !strings.Contains(out, "Executing: pulumi_destroy") {
		t.Error("tool call missing from the transcript")
	}
	if !strings.Contains(out, "stack is protected") {
		t.Error("tool error missing from the transcript")
	}
}

func TestRefreshTranscript_ScrollbarTotalMatchesViewport(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 100; i++ {
		m.conversation.Messages = append(m.conversation.Messages,
			agent.Message{Variant: agent.VariantUser, Content: "line"})
	}

	m.pinnedBottom = true
	m.refreshTranscript()

	if m.transcriptLines != m.transcript.TotalLineCount() {
		t.Errorf("scrollbar total %d disagrees with the viewport's %d lines",
			m.transcriptLines, m.transcript.TotalLineCount())
	}
	// At the bottom the thumb must reach the end of the track; a total
	// larger than the viewport's real line count leaves it short.
	height, offset := scrollbarThumb(m.transcript.Height, m.transcriptLines, m.transcript.YOffset)
	if offset+height != m.transcript.Height {
		t.Errorf("thumb ends at %d of %d while pinned to the bottom", offset+height, m.transcript.Height)
	}
}

func TestRefreshTranscript_PinnedFollowsBottom(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 200; i++ {
		m.conversation.Messages = append(m.conversation.Messages,
			agent.Message{Variant: agent.VariantUser, Content: "line"})
	}

	m.pinnedBottom = true
	m.refreshTranscript()
	if !m.transcript.AtBottom() {
		t.Error("pinned transcript should sit at the bottom")
	}

	m.pinnedBottom = false
	m.transcript.GotoTop()
	m.refreshTranscript()
	if m.transcript.AtBottom() {
		t.Error("unpinned transcript should keep its position")
	}
}
