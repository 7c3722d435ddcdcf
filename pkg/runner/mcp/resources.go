package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCategoriesResource(srv, svc)
	registerCategoryTemplate(srv, svc)
	registerEmojiTemplate(srv, svc)
}

func registerCategoriesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"emojipick://categories",
		"Categories",
		mcp.WithResourceDescription("Emoji categories in picker order, with counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		cats, err := svc.Categories(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"categories": cats,
			"count":      len(cats),
		})
	})
}

func registerCategoryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"emojipick://categories/{id}",
		"Category Emojis",
		mcp.WithTemplateDescription("Emojis of one category; \"recents\" lists the most used."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request, "id")
		if id == "" {
			return nil, fmt.Errorf("category id is required")
		}
		entries, err := svc.Category(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"category": id,
			"count":    len(entries),
			"emojis":   entries,
		})
	})
}

func registerEmojiTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"emojipick://emoji/{hexcode}",
		"Emoji Details",
		mcp.WithTemplateDescription("Detailed information about a single emoji."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		hex := templateArg(request, "hexcode")
		if hex == "" {
			return nil, fmt.Errorf("hexcode is required")
		}
		dto, err := svc.Emoji(ctx, hex)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"emoji": dto})
	})
}

// templateArg reads a URI template variable. Depending on the matcher the
// value arrives as a string or a single element slice.
func templateArg(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
