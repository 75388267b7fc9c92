package pulumi

import (
	"context"
	"fmt"
	"net/http"
)

type packagesResponse struct {
	Packages []RegistryPackage `json:"packages"`
}

// ListRegistryPackages returns the components visible to org in the package
// registry.
func (c *Client) ListRegistryPackages(ctx context.Context, org string) ([]RegistryPackage, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/preview/registry/packages?orgLogin=%s&limit=50", queryEscape(org))

	var resp packagesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

type templatesResponse struct {
	Templates []RegistryTemplate `json:"templates"`
}

// ListRegistryTemplates returns the project templates visible to org.
func (c *Client) ListRegistryTemplates(ctx context.Context, org string) ([]RegistryTemplate, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/preview/registry/templates?orgLogin=%s", queryEscape(org))

	var resp templatesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// FetchReadme downloads a package README from its absolute URL and returns
// it as markdown text.
func (c *Client) FetchReadme(ctx context.Context, readmeURL string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, readmeURL, nil)
	if err != nil {
		return "", err
	}
	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

type servicesResponse struct {
	Services []Service `json:"services"`
}

// ListServices returns the services defined in org.
func (c *Client) ListServices(ctx context.Context, org string) ([]Service, error) {
	org, err := c.resolveOrg(org)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/orgs/%s/services", queryEscape(org))

	var resp servicesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}
