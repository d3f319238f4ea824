package locator

import (
	"errors"
	"fmt"
	"strings"
)

// ── Sentinel errors ───────────────────────────────────────────────────────────
// Typed errors below match these with errors.Is.

var (
	ErrNotFound          = errors.New("locator: not found")
	ErrConstruction      = errors.New("locator: construction failed")
	ErrCircularReference = errors.New("locator: circular reference")
)

var (
	_ error = NotFoundError{}
	_ error = ConstructionError{}
	_ error = CircularReferenceError{}
)

// ── NotFoundError ─────────────────────────────────────────────────────────────

// NotFoundError means neither the registry nor any recipe knows the identifier.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("failed to locate object for identifier '%s'", e.ID)
}

func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ── ConstructionError ─────────────────────────────────────────────────────────

// Construction failure reasons.
const (
	ReasonNotInstantiable = "not instantiable"
	ReasonNotEnoughParams = "not enough parameters"
	ReasonFailed          = "failed"
)

// ConstructionError means a recipe was found but its object could not be
// built or a post-construction method could not be applied.
type ConstructionError struct {
	Type   string
	Method string // set when a post-construction method failed
	Reason string
	Cause  error
}

func (e ConstructionError) Error() string {
	target := e.Type
	if e.Method != "" {
		target += "." + e.Method
	}

	var b strings.Builder
	switch e.Reason {
	case ReasonNotInstantiable:
		fmt.Fprintf(&b, "not possible to instantiate '%s'", target)
	case ReasonNotEnoughParams:
		fmt.Fprintf(&b, "not enough parameters for %s", target)
	default:
		if e.Method != "" {
			fmt.Fprintf(&b, "failed to call %s", target)
		} else {
			fmt.Fprintf(&b, "failed to construct %s", target)
		}
	}

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e ConstructionError) Unwrap() error { return e.Cause }

func (e ConstructionError) Is(target error) bool { return target == ErrConstruction }

// ── CircularReferenceError ────────────────────────────────────────────────────

// CircularReferenceError means a recipe's parameters lead back to an
// identifier that is still being built.
type CircularReferenceError struct {
	ID   string
	Path []string
}

func (e CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected: %s", strings.Join(e.Path, " -> "))
}

func (e CircularReferenceError) Is(target error) bool { return target == ErrCircularReference }
