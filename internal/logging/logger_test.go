package logging

import (
	"testing"

	"github.com/go-logr/logr"
	"go.uber.org/zap/zapcore"
)

func TestNewFallsBackToDefault(t *testing.T) {
	l := New(logr.Logger{})
	if l.Logr().GetSink() == nil {
		t.Fatalf("expected default sink for uninitialized logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDebugEnabledOnlyAtDebugLevel(t *testing.T) {
	if NewLogr("info").V(1).Enabled() {
		t.Fatalf("V(1) should be disabled at info level")
	}
	if !NewLogr("debug").V(1).Enabled() {
		t.Fatalf("V(1) should be enabled at debug level")
	}
}

func TestZapUnderlier(t *testing.T) {
	if New(NewLogr("info")).Zap() == nil {
		t.Fatalf("expected zap logger")
	}
	if New(logr.Discard()).Zap() == nil {
		t.Fatalf("expected no-op zap logger for non-zap sink")
	}
}
