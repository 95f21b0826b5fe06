package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/teachforge-io/agent/internal/common"
	"github.com/teachforge-io/agent/internal/models"
	"github.com/teachforge-io/agent/internal/session"
)

const DefaultTimeout = 60 * time.Second

// Client is the single chokepoint for all backend calls. It attaches the
// bearer token from the session store at dispatch time, maps failures onto
// the models.APIError taxonomy, and evicts the session on any unauthorized
// response before the error reaches the caller.
//
// The client performs no retries and no request queuing. Each call is
// fire-once.
type Client struct {
	rest    *resty.Client
	store   *session.Store
	timeout time.Duration
	onEvict func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithEvictionHook registers a callback fired after an unauthorized response
// clears the session. The top-level shell uses it to route the user back to
// login; the client itself never navigates.
func WithEvictionHook(fn func()) Option {
	return func(c *Client) {
		c.onEvict = fn
	}
}

// NewClient creates a client for the given API base URL reading credentials
// from store.
func NewClient(baseURL string, store *session.Store, opts ...Option) *Client {
	rest := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", common.GetBuildIdentifier()).
		SetHeader("X-Client-ID", common.GetClientIdentifier().String())

	client := &Client{
		rest:    rest,
		store:   store,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// callOptions are per-call overrides.
type callOptions struct {
	timeout   time.Duration
	formData  map[string]string
	queryArgs map[string]string
}

type CallOption func(*callOptions)

// CallTimeout overrides the client timeout for a single call. Generation
// submits use this; status polls stay on the default. Non-positive values
// are ignored.
func CallTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func withFormData(form map[string]string) CallOption {
	return func(o *callOptions) {
		o.formData = form
	}
}

func withQuery(args map[string]string) CallOption {
	return func(o *callOptions) {
		o.queryArgs = args
	}
}

// do dispatches one request. The bearer token is resolved from the session
// store here, at call time, never cached on the client, so a logout between
// two calls is always observed.
func (c *Client) do(ctx context.Context, method string, path string, body any, out any, opts ...CallOption) error {
	options := callOptions{timeout: c.timeout}
	for _, opt := range opts {
		opt(&options)
	}

	ctx, cancel := context.WithTimeout(ctx, options.timeout)
	defer cancel()

	req := c.rest.R().SetContext(ctx)

	token := c.store.Token()
	if len(token) > 0 {
		req.SetAuthToken(token)
	}

	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}
	if options.formData != nil {
		req.SetFormData(options.formData)
	}
	if options.queryArgs != nil {
		req.SetQueryParams(options.queryArgs)
	}

	resp, err := executeRequest(req, method, path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Debugln("Request failed before a response was received")
		return models.NewNetworkError(err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		// Evict the session before the error propagates so every caller
		// observes the logged-out state. Navigation is the shell's job.
		// A 401 on a call that carried no token (a failed login, say) has
		// no session to evict and stays silent.
		if len(token) > 0 {
			if clearErr := c.store.ClearAuth(); clearErr != nil {
				logrus.WithError(clearErr).Error("Failed to clear session after unauthorized response")
			}
			if c.onEvict != nil {
				c.onEvict()
			}
		}
		return models.NewHTTPError(resp.StatusCode(), decodeErrorMessage(resp.Body()), resp.Body())
	}

	if resp.IsError() {
		return models.NewHTTPError(resp.StatusCode(), decodeErrorMessage(resp.Body()), resp.Body())
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// executeRequest issues the already-built request with the right resty verb.
func executeRequest(req *resty.Request, method string, path string) (*resty.Response, error) {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return req.Get(path)
	case http.MethodPost:
		return req.Post(path)
	case http.MethodPut:
		return req.Put(path)
	case http.MethodDelete:
		return req.Delete(path)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}
}

// decodeErrorMessage pulls a user-friendly message out of an error body,
// tolerating the backend's several envelope shapes.
func decodeErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope models.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.FirstMessage()
}
