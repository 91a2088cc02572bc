package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/meshweld/internal/model"
)

func TestSinkLevels(t *testing.T) {
	tests := []struct {
		severity model.Severity
		want     zapcore.Level
	}{
		{model.SeverityVerbose, zapcore.DebugLevel},
		{model.SeverityInfo, zapcore.InfoLevel},
		{model.SeverityWarning, zapcore.WarnLevel},
		{model.SeverityError, zapcore.ErrorLevel},
		{model.SeverityFatal, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.severity.String(), func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			sink := NewSink(zap.New(core))

			sink.Write(tt.severity, func() string { return "hello" })

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Level != tt.want {
				t.Errorf("level = %v, want %v", entries[0].Level, tt.want)
			}
			if entries[0].Message != "hello" {
				t.Errorf("message = %q, want hello", entries[0].Message)
			}
		})
	}
}

func TestSinkSkipsDisabledLevels(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := NewSink(zap.New(core))

	evaluated := false
	sink.Write(model.SeverityInfo, func() string {
		evaluated = true
		return "expensive"
	})

	if evaluated {
		t.Error("message callback evaluated for a disabled level")
	}
	if logs.Len() != 0 {
		t.Errorf("expected no entries, got %d", logs.Len())
	}
}
