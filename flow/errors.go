// Package flow holds the node graph model and the interactive subsystems
// that render it, hit-test the pointer, and mutate the graph in response to
// click, drag and release events.
package flow

import "errors"

var (
	// Configuration errors.
	ErrUnknownTemplate = errors.New("unknown node template")
	ErrUnknownWidget   = errors.New("unknown widget type")

	// Referential-integrity errors. The subsystems log these and skip the
	// offending operation.
	ErrConnectionNotFound = errors.New("connection not found")
	ErrNodeNotFound       = errors.New("node not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrNodeIndex          = errors.New("node index out of range")
	ErrPortIndex          = errors.New("port index out of range")

	ErrTypeMismatch      = errors.New("port types do not match")
	ErrDirectionMismatch = errors.New("ports have the same direction")
)
