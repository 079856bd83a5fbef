// Package client provides a typed client for the trelnex-auth v1 API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const apiRoot = "/api/v1"

// Doer is an interface for an HTTP client that can make requests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client interacts with the trelnex-auth API.
type Client struct {
	url        string
	httpClient Doer
	token      string
	logger     *zap.SugaredLogger
}

// Option is a client option.
type Option func(c *Client)

// WithHTTPClient replaces the default retrying HTTP client.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithToken sets a static bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = logger.Named("client")
	}
}

// New returns a client for the trelnex-auth API at the given base URL.
func New(serverURL string, options ...Option) *Client {
	c := &Client{
		url:    strings.TrimSuffix(serverURL, "/"),
		logger: zap.NewNop().Sugar(),
	}

	for _, opt := range options {
		opt(c)
	}

	if c.httpClient == nil {
		retryable := retryablehttp.NewClient()
		retryable.HTTPClient = cleanhttp.DefaultPooledClient()
		retryable.HTTPClient.Transport = otelhttp.NewTransport(retryable.HTTPClient.Transport)
		retryable.Logger = &retryableLogger{logger: c.logger}

		c.httpClient = retryable.StandardClient()
	}

	return c
}

// CreateResource registers a resource.
func (c *Client) CreateResource(ctx context.Context, name string) (Resource, error) {
	var out Resource

	err := c.post(ctx, "/resources", createResourceRequest{Name: name}, &out)

	return out, err
}

// GetResource fetches a resource with its scope and role vocabularies.
func (c *Client) GetResource(ctx context.Context, name string) (Resource, error) {
	var out Resource

	err := c.get(ctx, "/resources", url.Values{"name": {name}}, &out)

	return out, err
}

// DeleteResource removes a resource and everything beneath it.
func (c *Client) DeleteResource(ctx context.Context, name string) error {
	return c.delete(ctx, "/resources", url.Values{"name": {name}})
}

// CreateScope registers a scope of the resource.
func (c *Client) CreateScope(ctx context.Context, resource, name string) (Scope, error) {
	var out Scope

	err := c.post(ctx, "/scopes", createScopeRequest{Resource: resource, Name: name}, &out)

	return out, err
}

// GetScope fetches a scope of the resource.
func (c *Client) GetScope(ctx context.Context, resource, name string) (Scope, error) {
	var out Scope

	err := c.get(ctx, "/scopes", url.Values{"resource": {resource}, "name": {name}}, &out)

	return out, err
}

// DeleteScope removes a scope and its assignments.
func (c *Client) DeleteScope(ctx context.Context, resource, name string) error {
	return c.delete(ctx, "/scopes", url.Values{"resource": {resource}, "name": {name}})
}

// CreateRole registers a role of the resource.
func (c *Client) CreateRole(ctx context.Context, resource, name string) (Role, error) {
	var out Role

	err := c.post(ctx, "/roles", createRoleRequest{Resource: resource, Name: name}, &out)

	return out, err
}

// GetRole fetches a role of the resource.
func (c *Client) GetRole(ctx context.Context, resource, name string) (Role, error) {
	var out Role

	err := c.get(ctx, "/roles", url.Values{"resource": {resource}, "name": {name}}, &out)

	return out, err
}

// DeleteRole removes a role and its assignments.
func (c *Client) DeleteRole(ctx context.Context, resource, name string) error {
	return c.delete(ctx, "/roles", url.Values{"resource": {resource}, "name": {name}})
}

// CreateScopeAssignment grants the principal a scope of the resource.
func (c *Client) CreateScopeAssignment(ctx context.Context, resource, scope, principal string) (ScopeAssignment, error) {
	var out ScopeAssignment

	err := c.post(ctx, "/assignments/scopes", createScopeAssignmentRequest{
		Resource: resource, Scope: scope, Principal: principal,
	}, &out)

	return out, err
}

// DeleteScopeAssignment revokes the principal's scope on the resource.
func (c *Client) DeleteScopeAssignment(ctx context.Context, resource, scope, principal string) error {
	return c.delete(ctx, "/assignments/scopes", url.Values{
		"resource": {resource}, "scope": {scope}, "principal": {principal},
	})
}

// GetPrincipalsForScope lists the principals holding the scope.
func (c *Client) GetPrincipalsForScope(ctx context.Context, resource, scope string) ([]string, error) {
	var out listResponse

	err := c.get(ctx, "/assignments/scopes", url.Values{"resource": {resource}, "scope": {scope}}, &out)

	return out.Data, err
}

// CreateRoleAssignment grants the principal a role of the resource.
func (c *Client) CreateRoleAssignment(ctx context.Context, resource, role, principal string) (RoleAssignment, error) {
	var out RoleAssignment

	err := c.post(ctx, "/assignments/roles", createRoleAssignmentRequest{
		Resource: resource, Role: role, Principal: principal,
	}, &out)

	return out, err
}

// DeleteRoleAssignment revokes the principal's role on the resource.
func (c *Client) DeleteRoleAssignment(ctx context.Context, resource, role, principal string) error {
	return c.delete(ctx, "/assignments/roles", url.Values{
		"resource": {resource}, "role": {role}, "principal": {principal},
	})
}

// GetPrincipalsForRole lists the principals holding the role.
func (c *Client) GetPrincipalsForRole(ctx context.Context, resource, role string) ([]string, error) {
	var out listResponse

	err := c.get(ctx, "/assignments/roles", url.Values{"resource": {resource}, "role": {role}}, &out)

	return out.Data, err
}

// DeletePrincipal revokes every grant of the principal, across all resources.
func (c *Client) DeletePrincipal(ctx context.Context, principal string) error {
	return c.delete(ctx, "/principals", url.Values{"id": {principal}})
}

// GetPrincipalAccess fetches the principal's effective membership on the
// resource, optionally narrowed to one scope.
func (c *Client) GetPrincipalAccess(ctx context.Context, principal, resource, scope string) (Access, error) {
	params := url.Values{"id": {principal}, "resource": {resource}}

	if scope != "" {
		params.Set("scope", scope)
	}

	var out Access

	err := c.get(ctx, "/principals/access", params, &out)

	return out, err
}

func (c *Client) post(ctx context.Context, path string, reqBody, out any) error {
	var body bytes.Buffer

	if err := json.NewEncoder(&body).Encode(reqBody); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+apiRoot+path, &body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+apiRoot+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) delete(ctx context.Context, path string, params url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url+apiRoot+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	var out deleteResponse

	return c.do(req, &out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close() //nolint:errcheck // response body close error is not actionable

	if err := ensureValidServerResponse(resp); err != nil {
		return err
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ensureValidServerResponse maps error statuses onto the client's sentinel
// errors, carrying the server's message when one is present.
func ensureValidServerResponse(resp *http.Response) error {
	if resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	sentinel := ErrBadResponse

	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = ErrInvalidRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusServiceUnavailable:
		sentinel = ErrUnavailable
	}

	var serverError struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&serverError); err != nil || serverError.Message == "" {
		return fmt.Errorf("%w: %s", sentinel, resp.Status)
	}

	return fmt.Errorf("%w: %s", sentinel, serverError.Message)
}
