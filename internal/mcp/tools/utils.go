package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools/types"
	"github.com/roivaz/tcg-mcp/internal/metrics"
)

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// listResult renders items as a JSON array; an empty list renders as [].
func listResult[T any](ctx context.Context, items []T) *mcp.CallToolResult {
	if len(items) == 0 {
		markOutcome(ctx, metrics.OutcomeEmpty)
		return mcp.NewToolResultText("[]")
	}
	return mcp.NewToolResultText(string(mustMarshal(items)))
}

// upstreamFailure logs a vendor error and answers with an empty list.
func upstreamFailure(ctx context.Context, log logging.Logger, err error, msg string, keysAndValues ...any) *mcp.CallToolResult {
	log.Error(err, msg, keysAndValues...)
	markOutcome(ctx, metrics.OutcomeUpstreamErr)
	return mcp.NewToolResultText("[]")
}

func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func intArg(args map[string]any, key string, defaultVal int) (int, error) {
	switch v := args[key].(type) {
	case nil:
		return defaultVal, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return defaultVal, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

// stringSliceArg reads a list of strings. A bare string is taken as a one-element list.
func stringSliceArg(args map[string]any, key string) ([]string, error) {
	var out []string
	switch v := args[key].(type) {
	case nil:
		return nil, fmt.Errorf("%s is required", key)
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", key, i)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	default:
		return nil, fmt.Errorf("%s must be a list of strings", key)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s must contain at least one id", key)
	}
	return out, nil
}

// imageOptionsArg overlays the optional image_quality / image_format arguments on defaults.
func imageOptionsArg(args map[string]any, defaults types.ImageOptions) (types.ImageOptions, error) {
	opts := defaults
	if v := stringArg(args, "image_quality"); v != "" {
		opts.Quality = v
	}
	if v := stringArg(args, "image_format"); v != "" {
		opts.Format = v
	}
	return opts.Normalize()
}
