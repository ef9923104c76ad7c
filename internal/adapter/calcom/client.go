// Package calcom talks to the Cal.com v2 REST API.
package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/theakshaypant/calcom/internal/core"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the hosted Cal.com API.
const DefaultBaseURL = "https://api.cal.com"

// Endpoint names a family of API routes. Each family is pinned to its own
// cal-api-version.
type Endpoint string

const (
	EndpointSchedules  Endpoint = "schedules"
	EndpointEventTypes Endpoint = "eventTypes"
	EndpointSlots      Endpoint = "slots"
	EndpointBookings   Endpoint = "bookings"
)

var apiVersions = map[Endpoint]string{
	EndpointSchedules:  "2024-06-11",
	EndpointEventTypes: "2024-06-14",
	EndpointSlots:      "2024-09-04",
	EndpointBookings:   "2024-08-13",
}

// RequestOptions describes one API call.
type RequestOptions struct {
	// Method defaults to GET.
	Method   string
	Endpoint Endpoint
	// Body is JSON-encoded when non-nil.
	Body any
	// Query values that are empty are left out of the URL.
	Query map[string]string
}

// Client is an authenticated Cal.com API client.
type Client struct {
	baseURL   *url.URL
	transport *oauth2.Transport
	client    *http.Client
	logger    *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger logs every request to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTransport sets the transport underneath the bearer-token layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport.Base = rt
	}
}

// NewClient returns a Client that sends apiKey as a bearer token to baseURL
// (DefaultBaseURL when empty).
func NewClient(apiKey, baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &core.ValidationError{Message: "Invalid API base URL", Value: baseURL}
	}

	transport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}),
	}
	c := &Client{
		baseURL:   u,
		transport: transport,
		client:    &http.Client{Transport: transport},
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request performs one call and returns the response body. A successful response with
// an empty or non-JSON body yields {}. Non-2xx responses become *core.APIError;
// transport failures become *core.UnexpectedError.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, &core.UnexpectedError{Err: fmt.Errorf("bad request path %q: %w", path, err)}
	}
	u := c.baseURL.ResolveReference(ref)
	if len(opts.Query) > 0 {
		q := u.Query()
		for k, v := range opts.Query {
			if v != "" {
				q.Set(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &core.UnexpectedError{Err: fmt.Errorf("encode request body: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &core.UnexpectedError{Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if v, ok := apiVersions[opts.Endpoint]; ok {
		req.Header.Set("cal-api-version", v)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("%s %s failed after %s (request %s): %v", method, u.Path, time.Since(started).Round(time.Millisecond), reqID, err)
		return nil, &core.UnexpectedError{Err: err}
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.UnexpectedError{Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Printf("%s %s -> %d in %s (request %s)", method, u.Path, resp.StatusCode, time.Since(started).Round(time.Millisecond), reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp, text)
	}

	trimmed := bytes.TrimSpace(text)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return json.RawMessage(`{}`), nil
	}
	return json.RawMessage(trimmed), nil
}

func apiError(resp *http.Response, text []byte) *core.APIError {
	statusText := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if statusText == "" {
		statusText = http.StatusText(resp.StatusCode)
	}

	e := &core.APIError{Status: resp.StatusCode, StatusText: statusText}

	var parsed any
	if len(bytes.TrimSpace(text)) > 0 && json.Unmarshal(text, &parsed) == nil {
		e.Body = parsed
	} else {
		e.Body = string(text)
	}

	if msg, ok := errorMessage(text); ok {
		e.Message = msg
	} else {
		e.Message = fmt.Sprintf("request failed (%d %s)", resp.StatusCode, statusText)
	}
	return e
}
