package pulumi

import "context"

type userResponse struct {
	GithubLogin   string `json:"githubLogin"`
	Organizations []struct {
		GithubLogin string `json:"githubLogin"`
	} `json:"organizations"`
}

// ListOrganizations returns the organizations the token holder belongs to.
// The personal organization comes first, followed by memberships in API
// order, with duplicates removed.
func (c *Client) ListOrganizations(ctx context.Context) ([]string, error) {
	var resp userResponse
	if err := c.getJSON(ctx, "/api/user", &resp); err != nil {
		return nil, err
	}

	orgs := make([]string, 0, len(resp.Organizations)+1)
	seen := make(map[string]struct{})
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		orgs = append(orgs, name)
	}

	add(resp.GithubLogin)
	for _, o := range resp.Organizations {
		add(o.GithubLogin)
	}
	return orgs, nil
}
