// Package mcp registers the core certtrack catalog tools on an MCP server,
// served over stdio by the `certtrack mcp` command.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/example/certtrack/internal/db"
	"github.com/example/certtrack/pkg/audit"
	"github.com/example/certtrack/pkg/kit"
)

// NewServer creates an MCPServer with all core certtrack tools registered.
func NewServer(retry *db.RetryDB, manual *db.ManualDB, waivers *db.WaiverDB, auditLog audit.Logger) *server.MCPServer {
	srv := server.NewMCPServer(
		"certtrack",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerListSuites(srv, retry)
	registerListRetryTips(srv, retry)
	registerAddRetryTip(srv, retry, auditLog)
	registerListSections(srv, manual)
	registerListCards(srv, manual)
	registerLabStats(srv, retry, manual, waivers)

	return srv
}

// --- list_suites ---

func registerListSuites(srv *server.MCPServer, retry *db.RetryDB) {
	schema, _ := json.Marshal(map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	})
	tool := mcp.NewToolWithRawSchema("list_suites", "List the retry suite blocks in display order", schema)

	kit.RegisterMCPTool(srv, tool, func(ctx context.Context, request any) (any, error) {
		return retry.ListSuites()
	}, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: struct{}{}}, nil
	})
}

// --- list_retry_tips ---

type listTipsReq struct {
	Suite string `json:"suite"`
}

func registerListRetryTips(srv *server.MCPServer, retry *db.RetryDB) {
	schema, _ := json.Marshal(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suite": map[string]string{"type": "string", "description": "Optional suite key filter (e.g. GTS)"},
		},
	})
	tool := mcp.NewToolWithRawSchema("list_retry_tips", "List retry heuristics, optionally for one suite", schema)

	kit.RegisterMCPTool(srv, tool, func(ctx context.Context, request any) (any, error) {
		r := request.(*listTipsReq)
		return retry.ListTips(r.Suite)
	}, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		return &kit.MCPDecodeResult{Request: &listTipsReq{Suite: stringArg(args, "suite")}}, nil
	})
}

// --- add_retry_tip ---

type addTipReq struct {
	Type       string `json:"type"`
	ModuleCase string `json:"module_case"`
	Condition  string `json:"condition"`
	Trick      string `json:"trick"`
}

func registerAddRetryTip(srv *server.MCPServer, retry *db.RetryDB, auditLog audit.Logger) {
	var endpoint kit.Endpoint = func(ctx context.Context, request any) (any, error) {
		r := request.(*addTipReq)
		id, err := retry.AddTip(db.RetryTip{
			Type:       r.Type,
			ModuleCase: r.ModuleCase,
			Condition:  r.Condition,
			Trick:      r.Trick,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"id": id}, nil
	}
	if auditLog != nil {
		endpoint = audit.Middleware(auditLog, "add_retry_tip")(endpoint)
	}

	schema, _ := json.Marshal(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":        map[string]string{"type": "string", "description": "Suite key the tip belongs to"},
			"module_case": map[string]string{"type": "string", "description": "Module / test case"},
			"condition":   map[string]string{"type": "string", "description": "Key condition or environment"},
			"trick":       map[string]string{"type": "string", "description": "Optional retry trick"},
		},
		"required": []string{"type", "module_case", "condition"},
	})
	tool := mcp.NewToolWithRawSchema("add_retry_tip", "Record a new retry heuristic under a suite", schema)

	kit.RegisterMCPTool(srv, tool, endpoint, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		return &kit.MCPDecodeResult{Request: &addTipReq{
			Type:       stringArg(args, "type"),
			ModuleCase: stringArg(args, "module_case"),
			Condition:  stringArg(args, "condition"),
			Trick:      stringArg(args, "trick"),
		}}, nil
	})
}

// --- list_sections ---

func registerListSections(srv *server.MCPServer, manual *db.ManualDB) {
	schema, _ := json.Marshal(map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	})
	tool := mcp.NewToolWithRawSchema("list_sections", "List the manual-test board sections in display order", schema)

	kit.RegisterMCPTool(srv, tool, func(ctx context.Context, request any) (any, error) {
		return manual.ListSections()
	}, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: struct{}{}}, nil
	})
}

// --- list_cards ---

type listCardsReq struct {
	Section string `json:"section"`
}

func registerListCards(srv *server.MCPServer, manual *db.ManualDB) {
	schema, _ := json.Marshal(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"section": map[string]string{"type": "string", "description": "Optional section key filter (e.g. CTSV)"},
		},
	})
	tool := mcp.NewToolWithRawSchema("list_cards", "List manual-test reference cards with their images", schema)

	kit.RegisterMCPTool(srv, tool, func(ctx context.Context, request any) (any, error) {
		r := request.(*listCardsReq)
		return manual.ListCards(r.Section)
	}, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		return &kit.MCPDecodeResult{Request: &listCardsReq{Section: stringArg(args, "section")}}, nil
	})
}

// --- lab_stats ---

func registerLabStats(srv *server.MCPServer, retry *db.RetryDB, manual *db.ManualDB, waivers *db.WaiverDB) {
	schema, _ := json.Marshal(map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	})
	tool := mcp.NewToolWithRawSchema("lab_stats", "Counts across the three catalogs: suites, tips, sections, cards, waivers", schema)

	kit.RegisterMCPTool(srv, tool, func(ctx context.Context, request any) (any, error) {
		stats := map[string]int{}

		var n int
		if err := retry.QueryRow("SELECT COUNT(*) FROM suites").Scan(&n); err != nil {
			return nil, err
		}
		stats["suites"] = n
		if err := retry.QueryRow("SELECT COUNT(*) FROM retry_tips").Scan(&n); err != nil {
			return nil, err
		}
		stats["retry_tips"] = n
		if err := manual.QueryRow("SELECT COUNT(*) FROM sections").Scan(&n); err != nil {
			return nil, err
		}
		stats["sections"] = n
		if err := manual.QueryRow("SELECT COUNT(*) FROM test_cards").Scan(&n); err != nil {
			return nil, err
		}
		stats["cards"] = n
		if err := manual.QueryRow("SELECT COUNT(*) FROM card_images").Scan(&n); err != nil {
			return nil, err
		}
		stats["card_images"] = n
		if err := waivers.QueryRow("SELECT COUNT(*) FROM waivers").Scan(&n); err != nil {
			return nil, err
		}
		stats["waivers"] = n
		return stats, nil
	}, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: struct{}{}}, nil
	})
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}
