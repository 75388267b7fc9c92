package pulumi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// maxEventPages bounds how many event pages a single fetch follows. Long
// running tasks keep appending; the next poll cycle picks up the rest.
const maxEventPages = 10

type tasksPage struct {
	Tasks             []Task `json:"tasks"`
	ContinuationToken string `json:"continuationToken,omitempty"`
}

// ListTasks returns the agent tasks in org, newest first, following
// continuation tokens. Some deployments return a bare array instead of the
// paginated wrapper; both shapes are accepted.
func (c *Client) ListTasks(ctx context.Context, org string) ([]Task, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	var all []Task
	token := ""
	for {
		path := fmt.Sprintf("/api/preview/agents/%s/tasks?pageSize=100", queryEscape(org))
		if token != "" {
			path += "&continuationToken=" + queryEscape(token)
		}

		req, err := c.newRequest(ctx, "GET", path, nil)
		if err != nil {
			return nil, err
		}
		body, err := c.do(req)
		if err != nil {
			return nil, err
		}

		var page tasksPage
		if err := json.Unmarshal(body, &page); err != nil {
			var bare []Task
			if bareErr := json.Unmarshal(body, &bare); bareErr == nil {
				return append(all, bare...), nil
			}
			return nil, &ParseError{What: "task list", Preview: truncate(string(body), 200), Err: err}
		}

		all = append(all, page.Tasks...)
		if page.ContinuationToken == "" || len(all) >= paginationSafetyCap {
			break
		}
		token = page.ContinuationToken
	}
	return all, nil
}

// GetTask returns a single task's metadata, including its current status.
func (c *Client) GetTask(ctx context.Context, org, taskID string) (*Task, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/preview/agents/%s/tasks/%s", queryEscape(org), queryEscape(taskID))

	var task Task
	if err := c.getJSON(ctx, path, &task); err != nil {
		return nil, err
	}
	if task.ID == "" {
		task.ID = taskID
	}
	return &task, nil
}

type createTaskResponse struct {
	TaskID string `json:"taskId"`
}

// messagePayload is the body of a user turn. Commands maps canonical slash
// command references to their full definitions so the agent can expand them.
type messagePayload struct {
	Type      string                  `json:"type"`
	Content   string                  `json:"content"`
	Timestamp string                  `json:"timestamp"`
	Commands  map[string]SlashCommand `json:"commands,omitempty"`
}

func newMessagePayload(content string, commands []SlashCommand) messagePayload {
	p := messagePayload{
		Type:      "user_message",
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if len(commands) > 0 {
		p.Commands = make(map[string]SlashCommand, len(commands))
		for _, cmd := range commands {
			p.Commands[cmd.Reference()] = cmd
		}
	}
	return p
}

// CreateTask starts a new agent task from a user message and returns the
// new task's id.
func (c *Client) CreateTask(ctx context.Context, org, content string, commands []SlashCommand) (string, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("/api/preview/agents/%s/tasks", queryEscape(org))
	body, err := c.postJSON(ctx, path, map[string]messagePayload{
		"message": newMessagePayload(content, commands),
	})
	if err != nil {
		return "", err
	}

	var resp createTaskResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &ParseError{What: "create task response", Preview: truncate(string(body), 200), Err: err}
	}
	if resp.TaskID == "" {
		return "", fmt.Errorf("create task response missing taskId")
	}
	return resp.TaskID, nil
}

// ContinueTask sends a follow-up user message to an existing task. The
// server acknowledges with 202 and no body.
func (c *Client) ContinueTask(ctx context.Context, org, taskID, content string, commands []SlashCommand) error {
	org, err := c.resolveOrg(org)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/preview/agents/%s/tasks/%s", queryEscape(org), queryEscape(taskID))
	_, err = c.postJSON(ctx, path, map[string]messagePayload{
		"event": newMessagePayload(content, commands),
	})
	return err
}

type eventsPage struct {
	Events            []TaskEvent `json:"events"`
	ContinuationToken string      `json:"continuationToken,omitempty"`
}

// ListTaskEvents returns a task's event log in order, following up to
// maxEventPages continuation tokens.
func (c *Client) ListTaskEvents(ctx context.Context, org, taskID string) ([]TaskEvent, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	var all []TaskEvent
	token := ""
	for page := 0; page < maxEventPages; page++ {
		path := fmt.Sprintf("/api/preview/agents/%s/tasks/%s/events?pageSize=100",
			queryEscape(org), queryEscape(taskID))
		if token != "" {
			path += "&continuationToken=" + queryEscape(token)
		}

		var resp eventsPage
		if err := c.getJSON(ctx, path, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Events...)

		if resp.ContinuationToken == "" {
			break
		}
		token = resp.ContinuationToken
	}
	return all, nil
}

type slashCommandsResponse struct {
	Commands []SlashCommand `json:"commands"`
}

// ListSlashCommands returns the prompt shortcuts defined for org. The
// endpoint is optional; callers treat failures as an empty list.
func (c *Client) ListSlashCommands(ctx context.Context, org string) ([]SlashCommand, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/preview/agents/%s/slash-commands", queryEscape(org))
	req, err := c.newRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp slashCommandsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		var bare []SlashCommand
		if bareErr := json.Unmarshal(body, &bare); bareErr == nil {
			return bare, nil
		}
		return nil, &ParseError{What: "slash commands", Preview: truncate(string(body), 200), Err: err}
	}
	return resp.Commands, nil
}
