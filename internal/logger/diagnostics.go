package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/meshweld/internal/model"
)

// Sink forwards model load diagnostics to a zap logger.
type Sink struct {
	log *zap.Logger
}

var _ model.Diagnostics = (*Sink)(nil)

// NewSink returns a sink writing to log, or to the global logger when log is nil.
func NewSink(log *zap.Logger) *Sink {
	if log == nil {
		log = Log
	}
	return &Sink{log: log}
}

// Write logs the message at the matching level. The message callback is only
// evaluated when that level is enabled.
func (s *Sink) Write(severity model.Severity, message func() string) {
	lvl := severityLevel(severity)
	if !s.log.Core().Enabled(lvl) {
		return
	}
	s.log.Log(lvl, message(), zap.Stringer("severity", severity))
}

// severityLevel maps diagnostics severities onto zap levels. Fatal is logged
// as an error; the sink never terminates the process.
func severityLevel(s model.Severity) zapcore.Level {
	switch s {
	case model.SeverityVerbose:
		return zapcore.DebugLevel
	case model.SeverityInfo:
		return zapcore.InfoLevel
	case model.SeverityWarning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
