package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

type echoAdapter struct{}

func (echoAdapter) ToolAdapter(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if _, ok := req.GetArguments()["fail"]; ok {
		return mcpgo.NewToolResultError("bad arguments"), nil
	}
	return mcpgo.NewToolResultText(`[{"id":"swsh3-136","name":"Furret"}]`), nil
}

func TestCallTool(t *testing.T) {
	text, err := callTool(context.Background(), "get_card_by_id", echoAdapter{}, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Furret") {
		t.Fatalf("unexpected text %s", text)
	}

	if _, err := callTool(context.Background(), "get_card_by_id", echoAdapter{}, map[string]any{"fail": true}); err == nil {
		t.Fatalf("expected error for tool error result")
	}
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResult(&buf, `[{"id":"swsh3-136","name":"Furret"}]`, "yaml"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if got := buf.String(); got != "- id: swsh3-136\n  name: Furret\n" {
		t.Fatalf("unexpected yaml %q", got)
	}

	buf.Reset()
	if err := writeResult(&buf, `["Fire"]`, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got := buf.String(); got != "[\n  \"Fire\"\n]\n" {
		t.Fatalf("unexpected json %q", got)
	}
}
