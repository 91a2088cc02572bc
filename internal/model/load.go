package model

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshweld/pkg/formats"
)

// Severity classifies a diagnostics message.
type Severity int

const (
	SeverityVerbose Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityFatal
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "Verbose"
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityFatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Diagnostics receives non-fatal load anomalies. The message callback is only
// worth calling when the sink will actually emit the severity.
type Diagnostics interface {
	Write(severity Severity, message func() string)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(severity Severity, message func() string)

// Write calls f.
func (f DiagnosticsFunc) Write(severity Severity, message func() string) {
	f(severity, message)
}

// Loader turns model files into Models. The zero value is ready to use: it
// logs nowhere, reports no diagnostics, times with time.Now and resolves
// material libraries next to the model file.
//
// A Loader holds no per-load state and may be shared between goroutines as long
// as its collaborators are safe for concurrent use.
type Loader struct {
	Logger      *zap.Logger
	Diagnostics Diagnostics
	Now         func() time.Time
	MaterialDir string
}

// LoadModel loads filename with a zero Loader.
func LoadModel(filename string) (*Model, error) {
	var l Loader
	return l.Load(filename)
}

// Load parses filename, resolves its materials and welds its face corners.
// Parse failures and unusable geometry return a *LoadError and no Model.
// Parser warnings go to Diagnostics and do not stop the load.
func (l *Loader) Load(filename string) (*Model, error) {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := l.Now
	if now == nil {
		now = time.Now
	}

	start := now()
	log.Debug("loading model", zap.String("file", filename))

	obj, err := formats.LoadOBJ(filename, l.MaterialDir)
	if err != nil {
		return nil, &LoadError{Filename: filename, Err: err}
	}

	if len(obj.Warnings) > 0 && l.Diagnostics != nil {
		warning := obj.Warning()
		l.Diagnostics.Write(SeverityWarning, func() string {
			return fmt.Sprintf("WARNING: %s: %s", filename, warning)
		})
	}

	materials := ResolveMaterials(obj.Materials)

	vertices, indices, err := Assemble(obj)
	if err != nil {
		return nil, &LoadError{Filename: filename, Err: err}
	}

	log.Info("loaded model",
		zap.String("file", filename),
		zap.Int("vertices", obj.VertexCount()),
		zap.Int("unique_vertices", len(vertices)),
		zap.Int("materials", len(materials)),
		zap.Duration("elapsed", now().Sub(start)),
	)

	return newModel(vertices, indices, materials, nil), nil
}
