package tools

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/metrics"
)

const defaultConcurrency = 8

// fetchAll runs fetch once per id with at most limit lookups in flight. Results
// keep the order of ids; lookups that fail or find nothing are logged and left out.
func fetchAll[T any](ctx context.Context, log logging.Logger, tool string, ids []string, limit int, fetch func(context.Context, string) (*T, error)) []*T {
	if limit <= 0 {
		limit = defaultConcurrency
	}
	slots := make([]*T, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			item, err := fetch(gctx, id)
			switch {
			case err != nil:
				log.Error(err, "lookup failed", "tool", tool, "id", id)
				metrics.FanoutFailuresTotal.WithLabelValues(tool).Inc()
			case item == nil:
				log.Info("not found", "tool", tool, "id", id)
				metrics.FanoutFailuresTotal.WithLabelValues(tool).Inc()
			default:
				slots[i] = item
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]*T, 0, len(ids))
	for _, item := range slots {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
