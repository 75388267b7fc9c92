package pulumi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type environmentsPage struct {
	Environments      []Environment `json:"environments"`
	ContinuationToken string        `json:"continuationToken,omitempty"`
	NextToken         string        `json:"nextToken,omitempty"`
}

func (p environmentsPage) token() string {
	if p.ContinuationToken != "" {
		return p.ContinuationToken
	}
	return p.NextToken
}

// ListEnvironments returns all ESC environments in org, following
// continuation tokens. Older deployments report the token as nextToken;
// both spellings are accepted.
func (c *Client) ListEnvironments(ctx context.Context, org string) ([]Environment, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	var all []Environment
	token := ""
	for {
		path := "/api/esc/environments/" + queryEscape(org)
		if token != "" {
			path += "?continuationToken=" + queryEscape(token)
		}

		var page environmentsPage
		if err := c.getJSON(ctx, path, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Environments...)

		next := page.token()
		if next == "" || len(all) >= paginationSafetyCap {
			break
		}
		token = next
	}
	return all, nil
}

// GetEnvironment returns the definition of a single environment, including
// its YAML source.
func (c *Client) GetEnvironment(ctx context.Context, org, project, name string) (*EnvironmentDetails, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/esc/environments/%s/%s/%s",
		queryEscape(org), queryEscape(project), queryEscape(name))

	var details EnvironmentDetails
	if err := c.getJSON(ctx, path, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

type openResponse struct {
	ID          json.RawMessage `json:"id"`
	Diagnostics []Diagnostic    `json:"diagnostics"`
}

// sessionID normalizes the open session id, which the API returns as either
// a JSON string or a bare number.
func (r openResponse) sessionID() (string, error) {
	if len(r.ID) == 0 {
		return "", fmt.Errorf("open response missing session id")
	}
	var s string
	if err := json.Unmarshal(r.ID, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(r.ID, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("open response has unusable session id: %s", string(r.ID))
}

// OpenEnvironment evaluates an environment and returns the resolved values
// as raw JSON. Evaluation is a two-step exchange: a POST creates a session,
// then a GET on the session id reads the resolved document. Evaluation
// failures surface the server's diagnostics as a DiagnosticsError.
func (c *Client) OpenEnvironment(ctx context.Context, org, project, name string) (json.RawMessage, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("/api/esc/environments/%s/%s/%s",
		queryEscape(org), queryEscape(project), queryEscape(name))

	body, err := c.postJSON(ctx, base+"/open", nil)
	if err != nil {
		return nil, err
	}

	var opened openResponse
	if err := json.Unmarshal(body, &opened); err != nil {
		return nil, &ParseError{What: "open response", Preview: truncate(string(body), 200), Err: err}
	}
	if len(opened.Diagnostics) > 0 {
		return nil, &DiagnosticsError{Diagnostics: opened.Diagnostics}
	}

	id, err := opened.sessionID()
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, base+"/open/"+queryEscape(id), nil)
	if err != nil {
		return nil, err
	}
	resolved, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resolved), nil
}

// UpdateEnvironment replaces an environment's definition with the given
// YAML source.
func (c *Client) UpdateEnvironment(ctx context.Context, org, project, name, yaml string) error {
	org, err := c.resolveOrg(org)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/esc/environments/%s/%s/%s",
		queryEscape(org), queryEscape(project), queryEscape(name))

	req, err := c.newRequest(ctx, http.MethodPatch, path, strings.NewReader(yaml))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-yaml")
	req.ContentLength = int64(len(yaml))

	_, err = c.do(req)
	return err
}
