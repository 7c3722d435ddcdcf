package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerSearchTool(srv, svc)
	registerCopyTool(srv, svc)
	registerHistoryTool(srv, svc)
	registerGetEmojiTool(srv, svc)
	registerSetTagsTool(srv, svc)
	registerListCategoriesTool(srv, svc)
}

func registerSearchTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_emoji",
		mcp.WithDescription("Search emojis by name or tag. Comma separated words must all match."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text, e.g. \"party\" or \"red, heart\"."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of emojis to return (default 20)."),
			mcp.Min(1),
			mcp.Max(200),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.Search(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload := map[string]any{
			"query":   query,
			"results": results,
			"count":   len(results),
		}
		if len(results) == 0 {
			payload["suggestions"] = svc.Suggest(query)
		}
		return toJSONResult(payload)
	})
}

func registerCopyTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"copy_emoji",
		mcp.WithDescription("Copy one or more emojis to the clipboard as a single text and record them as used."),
		mcp.WithString("emojis",
			mcp.Required(),
			mcp.Description("Space separated glyphs or hexcodes, e.g. \"🎉 1F382\"."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Emojis string `json:"emojis"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		text, err := svc.Copy(ctx, strings.Fields(args.Emojis))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"copied": text})
	})
}

func registerHistoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_history",
		mcp.WithDescription("List recently used emojis, most recent first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of emojis to return (default 20)."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 20)
		usage, err := svc.History(ctx, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"history": usage,
			"count":   len(usage),
		})
	})
}

func registerGetEmojiTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_emoji",
		mcp.WithDescription("Fetch one emoji by glyph or hexcode, including custom tags and skintones."),
		mcp.WithString("emoji",
			mcp.Required(),
			mcp.Description("Glyph or hexcode."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := request.RequireString("emoji")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Emoji(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetTagsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_custom_tags",
		mcp.WithDescription("Replace the custom search tags of an emoji. An empty list removes them."),
		mcp.WithString("emoji",
			mcp.Required(),
			mcp.Description("Glyph or hexcode."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma separated tags, e.g. \"lol, rofl\"."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Emoji string `json:"emoji"`
			Tags  string `json:"tags"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.SetTags(ctx, args.Emoji, args.Tags)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListCategoriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_categories",
		mcp.WithDescription("List emoji categories with counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cats, err := svc.Categories(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"categories": cats,
			"count":      len(cats),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
