package modem

import (
	"context"
	"io"
	"net/http"
	"regexp"
)

// The K4203 lacks the token endpoints other Huawei models expose, so the
// anti-forgery token is scraped out of a bundled JavaScript asset instead.
const tokenAssetPath = "/html/js/vendor.js"

var tokenPattern = regexp.MustCompile(`STR_AJAX_VALUE\s*=\s*"([^"]*)"`)

// fetchToken retrieves a fresh anti-forgery token. Tokens are single-use and
// device-issued; they are never cached or reused across commands.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tokenAssetPath, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	m := tokenPattern.FindSubmatch(data)
	if m == nil {
		return "", ErrTokenNotFound
	}
	return string(m[1]), nil
}
