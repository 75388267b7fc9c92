// Package agent owns the conversation with a Pulumi agent task: the
// transcript, the polling cadence and the rules for when a task is done.
package agent

import (
	"encoding/json"
	"unicode/utf8"

	"lazypulumi/internal/pulumi"
)

// Variant classifies a transcript message.
type Variant int

const (
	VariantUser Variant = iota
	VariantAssistant
	VariantToolCall
	VariantToolResponse
	VariantToolError
	VariantApprovalRequest
	VariantTaskNameChange
)

// String returns the variant's display label.
func (v Variant) String() string {
	switch v {
	case VariantUser:
		return "user"
	case VariantAssistant:
		return "assistant"
	case VariantToolCall:
		return "tool_call"
	case VariantToolResponse:
		return "tool_response"
	case VariantToolError:
		return "tool_error"
	case VariantApprovalRequest:
		return "approval_request"
	case VariantTaskNameChange:
		return "task_name_change"
	default:
		return "unknown"
	}
}

// Message is one entry of the transcript.
type Message struct {
	Variant   Variant
	Content   string
	Timestamp string
	ToolName  string
	ToolCalls []pulumi.ToolCall
}

// toolResultTruncateAt caps successful tool output in the transcript. Errors
// are never truncated; the full text is what the user needs to act on.
const toolResultTruncateAt = 200

func truncateResult(s string) string {
	if len(s) <= toolResultTruncateAt {
		return s
	}
	cut := toolResultTruncateAt
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// TranslateEvents converts a task's raw event log into transcript messages.
// Event kinds with no transcript representation are skipped.
func TranslateEvents(events []pulumi.TaskEvent) []Message {
	messages := make([]Message, 0, len(events))
	for _, ev := range events {
		body := ev.EventBody
		if body == nil {
			continue
		}
		if msg, ok := translateEvent(body); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

func translateEvent(body *pulumi.TaskEventBody) (Message, bool) {
	switch body.Type {
	case "user_message":
		return Message{
			Variant:   VariantUser,
			Content:   body.ContentString(),
			Timestamp: body.Timestamp,
		}, true
	case "assistant_message":
		return Message{
			Variant:   VariantAssistant,
			Content:   body.ContentString(),
			Timestamp: body.Timestamp,
			ToolCalls: body.ToolCalls,
		}, true
	case "exec_tool_call":
		name := body.Name
		if name == "" {
			name = "unknown"
		}
		return Message{
			Variant:   VariantToolCall,
			Content:   "Executing: " + name,
			Timestamp: body.Timestamp,
			ToolName:  body.Name,
		}, true
	case "tool_response":
		content := toolResponseContent(body)
		if body.IsError {
			return Message{
				Variant:   VariantToolError,
				Content:   content,
				Timestamp: body.Timestamp,
				ToolName:  body.Name,
			}, true
		}
		return Message{
			Variant:   VariantToolResponse,
			Content:   truncateResult(content),
			Timestamp: body.Timestamp,
			ToolName:  body.Name,
		}, true
	case "user_approval_request":
		return Message{
			Variant:   VariantApprovalRequest,
			Content:   body.Message,
			Timestamp: body.Timestamp,
		}, true
	case "set_task_name":
		return Message{
			Variant:   VariantTaskNameChange,
			Content:   "Task: " + body.Name,
			Timestamp: body.Timestamp,
		}, true
	default:
		return Message{}, false
	}
}

// toolResponseContent prefers the result field of a JSON content payload and
// falls back to the normalized raw content.
func toolResponseContent(body *pulumi.TaskEventBody) string {
	raw := body.ContentString()
	var parsed struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil && len(parsed.Result) > 0 {
		var s string
		if err := json.Unmarshal(parsed.Result, &s); err == nil {
			return s
		}
		return string(parsed.Result)
	}
	return raw
}
