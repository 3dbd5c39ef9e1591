package modem

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modem-tools/modemsms/internal/catalog"
	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

// The modem only accepts bodies with this exact declaration.
const xmlDeclaration = "<?xml version='1.0' encoding='UTF-8'?>"

// request is a transport-ready descriptor assembled from a catalog command.
type request struct {
	method  string
	url     string
	headers map[string]string
	body    []byte
}

// buildRequest assembles the request for a catalog command. For POST
// commands it clones the default fields, applies overrides in place, fetches
// a fresh token as the final field, and encodes the whole mapping under a
// `request` root.
func (c *Client) buildRequest(ctx context.Context, name string, overrides *xmlcodec.Node) (*request, error) {
	cmd, ok := c.catalog.Command(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	headers := c.catalog.Headers()
	url := c.baseURL + cmd.URL

	switch cmd.Method {
	case catalog.MethodGet:
		return &request{method: http.MethodGet, url: url, headers: headers}, nil

	case catalog.MethodPost:
		fields := xmlcodec.NewNode()
		if cmd.Request != nil {
			fields = cmd.Request.Clone()
		}
		applyOverrides(fields, overrides)
		if cmd.Referer != "" {
			headers["Referer"] = cmd.Referer
		}
		// Tokens are single-use, so each POST fetches its own right before
		// assembly.
		token, err := c.fetchToken(ctx)
		if err != nil {
			return nil, err
		}
		fields.Set("token", xmlcodec.Scalar(token))

		encoded, err := xmlcodec.Encode("request", fields)
		if err != nil {
			return nil, err
		}
		body := append([]byte(xmlDeclaration), encoded...)
		return &request{method: http.MethodPost, url: url, headers: headers, body: body}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, cmd.Method)
	}
}

// applyOverrides replaces values for keys already present in fields.
// Unknown keys are ignored; replacement keeps each key's position, which
// preserves the field order the firmware requires.
func applyOverrides(fields, overrides *xmlcodec.Node) {
	if overrides == nil {
		return
	}
	overrides.Each(func(name string, v xmlcodec.Value) {
		if fields.Has(name) {
			fields.Set(name, v)
		}
	})
}
