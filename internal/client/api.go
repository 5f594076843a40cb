package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"silant-servicebook-web/internal/model"
)

// API endpoints, relative to the configured base URL.
const (
	endpointToken           = "auth/token/"
	endpointMachines        = "machines/"
	endpointMaintenances    = "maintenances/"
	endpointComplaints      = "complaints/"
	endpointFailureNodes    = "failure_nodes/"
	endpointRecoveryMethods = "recovery_methods/"
	endpointServiceTypes    = "service_types/"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges a username and password for an API token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		url:    c.resolve(endpointToken, nil),
		body:   loginRequest{Username: username, Password: password},
		anon:   true,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return resp.Token, nil
}

// ListMachines requests the first page of machines with exactly the given query.
func (c *Client) ListMachines(ctx context.Context, query url.Values) (*model.Page[model.Machine], error) {
	var page model.Page[model.Machine]
	if err := c.do(ctx, request{method: http.MethodGet, url: c.resolve(endpointMachines, query)}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FollowMachines requests the page a server-issued locator points at, unmodified.
// Locators outside the API host are refused so the token never leaves it.
func (c *Client) FollowMachines(ctx context.Context, locator string) (*model.Page[model.Machine], error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("invalid page locator: %w", err)
	}
	if !c.sameOrigin(u) {
		return nil, fmt.Errorf("%w: %s", ErrForeignLocator, u.Host)
	}

	var page model.Page[model.Machine]
	if err := c.do(ctx, request{method: http.MethodGet, url: u}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMachine fetches one machine by id.
func (c *Client) GetMachine(ctx context.Context, id int64) (*model.Machine, error) {
	var m model.Machine
	endpoint := endpointMachines + strconv.FormatInt(id, 10) + "/"
	if err := c.do(ctx, request{method: http.MethodGet, url: c.resolve(endpoint, nil)}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SearchMachine looks a machine up by serial number. The lookup is public and never
// carries the Authorization header.
func (c *Client) SearchMachine(ctx context.Context, serial string) (*model.Machine, error) {
	var m model.Machine
	query := url.Values{"serial_number": {serial}}
	err := c.do(ctx, request{
		method: http.MethodGet,
		url:    c.resolve(endpointMachines+"search/", query),
		anon:   true,
	}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMaintenances returns the maintenance records of the machine with the given serial number.
func (c *Client) ListMaintenances(ctx context.Context, serial string) (model.List[model.Maintenance], error) {
	var list model.List[model.Maintenance]
	query := url.Values{"machine__serial_number": {serial}}
	if err := c.do(ctx, request{method: http.MethodGet, url: c.resolve(endpointMaintenances, query)}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListComplaints returns the complaints of the machine with the given serial number.
func (c *Client) ListComplaints(ctx context.Context, serial string) (model.List[model.Complaint], error) {
	var list model.List[model.Complaint]
	query := url.Values{"machine__serial_number": {serial}}
	if err := c.do(ctx, request{method: http.MethodGet, url: c.resolve(endpointComplaints, query)}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateMaintenance submits a new maintenance record.
func (c *Client) CreateMaintenance(ctx context.Context, in model.MaintenanceInput) (*model.Maintenance, error) {
	var created model.Maintenance
	if err := c.do(ctx, request{method: http.MethodPost, url: c.resolve(endpointMaintenances, nil), body: in}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateComplaint submits a new complaint record.
func (c *Client) CreateComplaint(ctx context.Context, in model.ComplaintInput) (*model.Complaint, error) {
	var created model.Complaint
	if err := c.do(ctx, request{method: http.MethodPost, url: c.resolve(endpointComplaints, nil), body: in}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// FailureNodes returns the failure-node catalog.
func (c *Client) FailureNodes(ctx context.Context) (model.List[model.CatalogEntry], error) {
	return c.catalog(ctx, endpointFailureNodes)
}

// RecoveryMethods returns the recovery-method catalog.
func (c *Client) RecoveryMethods(ctx context.Context) (model.List[model.CatalogEntry], error) {
	return c.catalog(ctx, endpointRecoveryMethods)
}

// ServiceTypes returns the service-type catalog.
func (c *Client) ServiceTypes(ctx context.Context) (model.List[model.CatalogEntry], error) {
	return c.catalog(ctx, endpointServiceTypes)
}

func (c *Client) catalog(ctx context.Context, endpoint string) (model.List[model.CatalogEntry], error) {
	var list model.List[model.CatalogEntry]
	if err := c.do(ctx, request{method: http.MethodGet, url: c.resolve(endpoint, nil)}, &list); err != nil {
		return nil, err
	}
	return list, nil
}
