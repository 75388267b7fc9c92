package pulumi

import (
	"context"
	"fmt"
)

type stacksPage struct {
	Stacks            []Stack `json:"stacks"`
	ContinuationToken string  `json:"continuationToken,omitempty"`
}

// ListStacks returns every stack visible to the user in org, following
// continuation tokens until the server stops returning one.
func (c *Client) ListStacks(ctx context.Context, org string) ([]Stack, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	var all []Stack
	token := ""
	for {
		path := fmt.Sprintf("/api/user/stacks?organization=%s", queryEscape(org))
		if token != "" {
			path += "&continuationToken=" + queryEscape(token)
		}

		var page stacksPage
		if err := c.getJSON(ctx, path, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Stacks...)

		if page.ContinuationToken == "" || len(all) >= paginationSafetyCap {
			break
		}
		token = page.ContinuationToken
	}
	return all, nil
}

type updatesResponse struct {
	Updates []StackUpdate `json:"updates"`
}

// ListStackUpdates returns the most recent update history for a stack.
func (c *Client) ListStackUpdates(ctx context.Context, org, project, stack string) ([]StackUpdate, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/stacks/%s/%s/%s/updates?pageSize=20",
		queryEscape(org), queryEscape(project), queryEscape(stack))

	var resp updatesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Updates, nil
}
