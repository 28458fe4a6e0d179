package kit

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPDecodeResult carries the decoded request for an MCP tool call.
type MCPDecodeResult struct {
	Request any
}

// RegisterMCPTool mounts an Endpoint as an MCP tool: the decoder turns the
// raw tool call into a typed request, the endpoint runs it, and the response
// is marshalled into a text result. Endpoint errors become tool errors, not
// protocol errors, so clients see them inline.
func RegisterMCPTool(srv *server.MCPServer, tool mcp.Tool, endpoint Endpoint,
	decode func(mcp.CallToolRequest) (*MCPDecodeResult, error)) {

	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		decoded, err := decode(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		ctx = WithTransport(ctx, "mcp")
		resp, err := endpoint(ctx, decoded.Request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError("encoding response: " + err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}
