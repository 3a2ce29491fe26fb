package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
)

var errNoPlan = errors.New("workout plan not loaded")

func (h *handlers) metadata(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	plan := h.src.Snapshot()
	if plan == nil {
		return nil, errNoPlan
	}
	return jsonContents(req.Params.URI, plan.Metadata)
}

func (h *handlers) activeUser(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	user := h.src.Snapshot().ActiveUser()
	if user == nil {
		return nil, errNoPlan
	}
	return jsonContents(req.Params.URI, user)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
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
