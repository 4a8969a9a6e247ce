package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveUpstreamLabelsStatus(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("tcgdex", "cards", "200"))
	ObserveUpstream("tcgdex", "cards", 200, time.Now())
	after := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("tcgdex", "cards", "200"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}

	before = testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("justtcg", "games", "error"))
	ObserveUpstream("justtcg", "games", 0, time.Now())
	after = testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("justtcg", "games", "error"))
	if after-before != 1 {
		t.Fatalf("expected error counter to increase by 1, got %v", after-before)
	}
}

func TestObserveToolCall(t *testing.T) {
	before := testutil.ToFloat64(ToolCallsTotal.WithLabelValues("get_card_by_id", OutcomeOK))
	ObserveToolCall("get_card_by_id", OutcomeOK, time.Now())
	after := testutil.ToFloat64(ToolCallsTotal.WithLabelValues("get_card_by_id", OutcomeOK))
	if after-before != 1 {
		t.Fatalf("expected tool counter to increase by 1, got %v", after-before)
	}
}
