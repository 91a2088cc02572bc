package model

import (
	"errors"
	"fmt"
)

// Model errors.
var (
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrNotTriangulated    = errors.New("shape is not triangulated")
	ErrMissingNormals     = errors.New("face corner has no normal")
	ErrIndexOutOfRange    = errors.New("attribute index out of range")
	ErrMaterialOutOfRange = errors.New("material id out of range")
)

// LoadError reports a model file that could not be turned into a Model.
type LoadError struct {
	Filename string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load model '%s': %v", e.Filename, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
