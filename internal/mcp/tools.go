package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/modem-tools/modemsms/internal/modem"
	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

func (s *Server) handleSendSMS(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	number, err := req.RequireString("number")
	if err != nil {
		return textError("missing required parameter: number"), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return textError("missing required parameter: content"), nil
	}

	res, err := s.client.SendMessage(ctx, content, number)
	if err != nil {
		return textError("failed to send SMS: " + err.Error()), nil
	}
	return textJSON(resultPayload(res))
}

func (s *Server) handleListInbox(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	msgs, err := s.client.ListInbox(ctx)
	if err != nil {
		return textError("failed to list inbox: " + err.Error()), nil
	}
	if msgs == nil {
		msgs = []modem.Message{}
	}
	return textJSON(msgs)
}

func (s *Server) handleClearInbox(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	results, err := s.client.ClearInbox(ctx)
	if err != nil {
		return textError("failed to clear inbox: " + err.Error()), nil
	}

	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		entry := map[string]any{"index": r.Index}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
		} else {
			entry["status"] = r.Result.Status
		}
		out = append(out, entry)
	}
	return textJSON(out)
}

func (s *Server) handleListCommands(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	return textJSON(s.client.ListCommands())
}

func (s *Server) handleRunCommand(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return textError("missing required parameter: name"), nil
	}

	var overrides *xmlcodec.Node
	args := req.GetArguments()
	if raw, ok := args["fields"]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return textError("fields must be an object"), nil
		}
		overrides = xmlcodec.NewNode()
		for k, v := range m {
			overrides.Set(k, xmlcodec.Scalar(fmt.Sprint(v)))
		}
	}

	res, err := s.client.RunCommand(ctx, name, overrides)
	if err != nil {
		return textError("command failed: " + err.Error()), nil
	}
	return textJSON(resultPayload(res))
}

func (s *Server) handleErrorCode(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return textError("missing required parameter: code"), nil
	}
	return textResult(s.client.ErrorDescription(code)), nil
}

func resultPayload(res *modem.Result) map[string]any {
	return map[string]any{
		"status": res.Status,
		"body":   res.Body,
	}
}

// textResult returns a successful text result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: text},
		},
	}
}

// textError returns an error text result.
func textError(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}

// textJSON marshals v to indented JSON and returns it as a text result.
func textJSON(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return textError("failed to marshal response: " + err.Error()), nil
	}
	return textResult(string(data)), nil
}
