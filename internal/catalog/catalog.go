// Package catalog holds the command definitions for a modem's web API,
// loaded from a YAML file. A catalog is immutable after load and shared
// across invocations; callers clone a command's default fields before
// mutating them.
package catalog

import (
	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

// Request methods as they appear, normalized, in command definitions.
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Command is one named operation against the device.
type Command struct {
	Name    string
	URL     string // path, relative to the device host
	Method  string // normalized to upper case at load
	Referer string // optional; merged into request headers when set

	// Request holds the default request fields in catalog order.
	// Nil for GET commands.
	Request *xmlcodec.Node
}

// Catalog is the loaded set of commands plus the device-wide common section.
type Catalog struct {
	headers    map[string]string
	errorCodes map[string]string
	commands   map[string]Command
	names      []string
}

// Command returns the definition for name.
func (c *Catalog) Command(name string) (Command, bool) {
	cmd, ok := c.commands[name]
	return cmd, ok
}

// Names returns the command names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Headers returns a fresh copy of the common headers.
func (c *Catalog) Headers() map[string]string {
	out := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		out[k] = v
	}
	return out
}

// Host returns the device host from the common headers.
func (c *Catalog) Host() string {
	return c.headers["Host"]
}

// ErrorDescription maps a device error code to its description. The bundled
// code tables are not comprehensive, so unknown codes get a fixed fallback.
func (c *Catalog) ErrorDescription(code string) string {
	if desc, ok := c.errorCodes[code]; ok {
		return desc
	}
	return "No such error code."
}
