package pulumi

import (
	"context"
	"fmt"
)

// maxResourcePages bounds the page-numbered search loop at 10,000 resources.
const maxResourcePages = 100

type searchPagination struct {
	Next string `json:"next,omitempty"`
}

type searchResponse struct {
	Resources  []Resource        `json:"resources"`
	Pagination *searchPagination `json:"pagination,omitempty"`
}

// SearchResources runs a resource search across org and returns every match,
// walking numbered pages until the server stops advertising a next page.
func (c *Client) SearchResources(ctx context.Context, org, query string) ([]Resource, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	const pageSize = 100
	var all []Resource
	for page := 1; page <= maxResourcePages; page++ {
		path := fmt.Sprintf("/api/orgs/%s/search/resourcesv2?query=%s&page=%d&size=%d",
			queryEscape(org), queryEscape(query), page, pageSize)

		var resp searchResponse
		if err := c.getJSON(ctx, path, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Resources...)

		hasNext := resp.Pagination != nil && resp.Pagination.Next != ""
		if !hasNext || len(resp.Resources) < pageSize {
			break
		}
	}
	return all, nil
}
