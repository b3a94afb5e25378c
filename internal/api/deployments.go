package api

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/stratohq/strato/pkg/models"
)

// DeploymentsQuery narrows a deployment listing. A zero value lists the
// most recent deployments across all projects in the scope.
type DeploymentsQuery struct {
	App   string
	Scope string
	Meta  map[string]string
	Until int64
	Limit int
}

func (q DeploymentsQuery) encode() string {
	v := url.Values{}
	if q.App != "" {
		v.Set("app", q.App)
	}
	if q.Scope != "" {
		v.Set("teamId", q.Scope)
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprintf("%d", q.Limit))
	}
	if q.Until > 0 {
		v.Set("until", fmt.Sprintf("%d", q.Until))
	}

	// deterministic ordering keeps request logs and tests stable
	keys := make([]string, 0, len(q.Meta))
	for k := range q.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set("meta-"+k, q.Meta[k])
	}

	return v.Encode()
}

// ListDeployments fetches one page of deployments matching the query.
func (c *Client) ListDeployments(q DeploymentsQuery) ([]models.Deployment, models.Pagination, error) {
	path := "/v4/deployments"
	if enc := q.encode(); enc != "" {
		path += "?" + enc
	}

	req, err := c.newRequest(http.MethodGet, path)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	var resp models.DeploymentsResponse
	if err := c.doJSON(req, &resp); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list deployments: %w", err)
	}

	for i := range resp.Deployments {
		resp.Deployments[i].State = models.NormalizeState(resp.Deployments[i].State)
	}

	return resp.Deployments, resp.Pagination, nil
}

// FindDeployment looks up a single deployment by its exact name or URL.
// A missing deployment surfaces as an error matching errdefs.IsNotFound.
func (c *Client) FindDeployment(name string, scope string) (*models.Deployment, error) {
	path := "/v4/deployments/" + url.PathEscape(name)
	if scope != "" {
		path += "?teamId=" + url.QueryEscape(scope)
	}

	req, err := c.newRequest(http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	var d models.Deployment
	if err := c.doJSON(req, &d); err != nil {
		return nil, err
	}

	d.State = models.NormalizeState(d.State)
	return &d, nil
}

// GetUser returns the authenticated user.
func (c *Client) GetUser() (*models.User, error) {
	req, err := c.newRequest(http.MethodGet, "/v2/user")
	if err != nil {
		return nil, err
	}

	var resp models.UserResponse
	if err := c.doJSON(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &resp.User, nil
}
