// Package mcp exposes the modem client to AI assistants via the Model
// Context Protocol, served over stdio.
package mcp

import (
	"context"
	"log"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/modem-tools/modemsms/internal/modem"
	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

// Client abstracts the modem operations the tools need. Satisfied by
// *modem.Client; mocked in tests.
type Client interface {
	SendMessage(ctx context.Context, content, number string) (*modem.Result, error)
	ListInbox(ctx context.Context) ([]modem.Message, error)
	ClearInbox(ctx context.Context) ([]modem.DeleteResult, error)
	RunCommand(ctx context.Context, name string, overrides *xmlcodec.Node) (*modem.Result, error)
	ListCommands() []string
	ErrorDescription(code string) string
}

// Server serves modem operations as MCP tools.
type Server struct {
	client Client
	logger zerolog.Logger
}

// New creates a Server. Call Run() to start serving on stdio.
func New(client Client, logger zerolog.Logger) *Server {
	return &Server{
		client: client,
		logger: logger.With().Str("component", "mcp").Logger(),
	}
}

// Run registers the tools and serves on stdio until stdin closes or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := mcpserver.NewMCPServer(
		"modemsms",
		"0.1.0",
		mcpserver.WithRecovery(),
	)

	s.registerTools(srv)

	stdio := mcpserver.NewStdioServer(srv)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	s.logger.Info().Msg("MCP server starting on stdio")
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) registerTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcplib.NewTool("send_sms",
			mcplib.WithDescription("Send an SMS through the modem"),
			mcplib.WithString("number", mcplib.Required(), mcplib.Description("Destination phone number, e.g. \"0412345678\"")),
			mcplib.WithString("content", mcplib.Required(), mcplib.Description("Message body")),
		),
		s.handleSendSMS,
	)

	srv.AddTool(
		mcplib.NewTool("list_inbox",
			mcplib.WithDescription("List SMS messages stored on the modem or SIM"),
			mcplib.WithReadOnlyHintAnnotation(true),
		),
		s.handleListInbox,
	)

	srv.AddTool(
		mcplib.NewTool("clear_inbox",
			mcplib.WithDescription("Delete every message in the modem inbox, one at a time, reporting each outcome"),
		),
		s.handleClearInbox,
	)

	srv.AddTool(
		mcplib.NewTool("list_commands",
			mcplib.WithDescription("List the catalog's command names"),
			mcplib.WithReadOnlyHintAnnotation(true),
		),
		s.handleListCommands,
	)

	srv.AddTool(
		mcplib.NewTool("run_command",
			mcplib.WithDescription("Run a catalog command with optional scalar field overrides"),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Command name from the catalog, e.g. \"sms-list\"")),
			mcplib.WithObject("fields", mcplib.Description("Scalar field overrides; keys not in the command's defaults are ignored")),
		),
		s.handleRunCommand,
	)

	srv.AddTool(
		mcplib.NewTool("error_code",
			mcplib.WithDescription("Describe a device error code"),
			mcplib.WithString("code", mcplib.Required(), mcplib.Description("Numeric device error code, e.g. \"113018\"")),
			mcplib.WithReadOnlyHintAnnotation(true),
		),
		s.handleErrorCode,
	)
}
