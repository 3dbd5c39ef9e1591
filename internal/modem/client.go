// Package modem implements a declarative client for a Huawei modem's
// embedded HTTP/XML management API. Commands are defined in a catalog file;
// the client builds each request from the catalog definition plus
// caller-supplied field overrides, fetching a fresh anti-forgery token
// before every POST.
//
// All operations are synchronous and sequential. The device's web server is
// not proven safe under concurrent access, so the client never overlaps
// in-flight requests.
package modem

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/modem-tools/modemsms/internal/catalog"
	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

// Doer abstracts the HTTP transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client runs catalog commands against a single device.
type Client struct {
	catalog *catalog.Catalog
	baseURL string
	http    Doer
	logger  zerolog.Logger
}

// New creates a Client for the device described by cat. When cfg.BaseURL is
// empty the device URL is derived from the catalog's Host header.
func New(cat *catalog.Catalog, cfg Config, logger zerolog.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "http://" + cat.Host()
	}
	return &Client{
		catalog: cat,
		baseURL: base,
		http:    &http.Client{Timeout: cfg.HTTP.Timeout},
		logger:  logger.With().Str("component", "modem").Logger(),
	}
}

// SetTransport overrides the HTTP transport. Intended for testing.
func (c *Client) SetTransport(d Doer) {
	c.http = d
}

// Result is a decoded device response.
type Result struct {
	Status int
	Tag    string // root element name, normally "response" or "error"
	Body   xmlcodec.Value
}

// ListCommands returns the catalog's command names.
func (c *Client) ListCommands() []string {
	return c.catalog.Names()
}

// ErrorDescription maps a device error code to a description.
func (c *Client) ErrorDescription(code string) string {
	return c.catalog.ErrorDescription(code)
}

// RunCommand builds and sends the named command with the given field
// overrides, then decodes the response. A non-2xx status yields a
// *StatusError that still carries the decoded body when the device returned
// a parseable payload.
func (c *Client) RunCommand(ctx context.Context, name string, overrides *xmlcodec.Node) (*Result, error) {
	logger := c.logger.With().
		Str("request_id", uuid.NewString()).
		Str("command", name).
		Logger()

	req, err := c.buildRequest(ctx, name, overrides)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if req.body != nil {
		bodyReader = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, bodyReader)
	if err != nil {
		return nil, err
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	// net/http ignores a Host header set on the header map.
	if host, ok := req.headers["Host"]; ok {
		httpReq.Host = host
	}

	logger.Debug().Str("method", req.method).Str("url", req.url).Msg("sending command")
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	tag, body, decErr := xmlcodec.Decode(data)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode}
		if decErr == nil {
			statusErr.Body = body
		}
		logger.Warn().Int("status", resp.StatusCode).Msg("command failed")
		return nil, statusErr
	}
	if decErr != nil {
		return nil, decErr
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("command completed")
	return &Result{Status: resp.StatusCode, Tag: tag, Body: body}, nil
}
