package pagination

import (
	"errors"
	"fmt"

	"github.com/syssam/gqlpaginate/gqlast"
	"github.com/syssam/gqlpaginate/parameterizer"
)

// Sentinel errors for the fatal error kinds PaginateQuery can return.
// Advisories (InsufficientQuantiles, UnpaginableField) are never errors —
// see [github.com/syssam/gqlpaginate/planning.Advisory].
var (
	// ErrSchemaMismatch is returned when a VertexPartitionPlan names a field
	// absent from its target vertex type.
	ErrSchemaMismatch = errors.New("pagination: pagination field not present on vertex type")

	// ErrASTShapeUnsupported is returned when the query AST contains a
	// construct the parameterizer cannot safely rewrite: an unreachable
	// query_path, or a query that fails to parse.
	ErrASTShapeUnsupported = errors.New("pagination: query AST shape unsupported")

	// ErrInternalInvariantViolated is returned when one of the core's own
	// invariants fails to hold, a programming error rather than bad input.
	ErrInternalInvariantViolated = errors.New("pagination: internal invariant violated")
)

// SchemaMismatchError reports the vertex type and field named by a plan that
// does not exist in the schema graph.
type SchemaMismatchError struct {
	VertexType string
	Field      string
	Err        error
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("pagination: field %q not found on vertex type %q: %v", e.Field, e.VertexType, e.Err)
}

// Is reports whether target matches ErrSchemaMismatch, so
// errors.Is(err, ErrSchemaMismatch) works on a *SchemaMismatchError.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// Unwrap returns the underlying error, if any.
func (e *SchemaMismatchError) Unwrap() error {
	return e.Err
}

// NewSchemaMismatchError returns a new SchemaMismatchError.
func NewSchemaMismatchError(vertexType, field string, err error) *SchemaMismatchError {
	return &SchemaMismatchError{VertexType: vertexType, Field: field, Err: err}
}

// IsSchemaMismatch returns true if err is a SchemaMismatchError.
func IsSchemaMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrSchemaMismatch)
}

// ASTShapeUnsupportedError reports a query AST the parameterizer could not
// safely rewrite.
type ASTShapeUnsupportedError struct {
	Reason string
	Err    error
}

func (e *ASTShapeUnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("pagination: unsupported AST shape: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pagination: unsupported AST shape: %v", e.Err)
}

// Is reports whether target matches ErrASTShapeUnsupported.
func (e *ASTShapeUnsupportedError) Is(target error) bool {
	return target == ErrASTShapeUnsupported
}

// Unwrap returns the underlying error.
func (e *ASTShapeUnsupportedError) Unwrap() error {
	return e.Err
}

// NewASTShapeUnsupportedError returns a new ASTShapeUnsupportedError.
func NewASTShapeUnsupportedError(reason string, err error) *ASTShapeUnsupportedError {
	return &ASTShapeUnsupportedError{Reason: reason, Err: err}
}

// IsASTShapeUnsupported returns true if err is an ASTShapeUnsupportedError.
func IsASTShapeUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *ASTShapeUnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrASTShapeUnsupported)
}

// InternalInvariantViolatedError reports a failure of one of the core's own
// invariants: a bug in the core rather than bad input.
type InternalInvariantViolatedError struct {
	Invariant string
	Err       error
}

func (e *InternalInvariantViolatedError) Error() string {
	return fmt.Sprintf("pagination: internal invariant violated (%s): %v", e.Invariant, e.Err)
}

// Is reports whether target matches ErrInternalInvariantViolated.
func (e *InternalInvariantViolatedError) Is(target error) bool {
	return target == ErrInternalInvariantViolated
}

// Unwrap returns the underlying error.
func (e *InternalInvariantViolatedError) Unwrap() error {
	return e.Err
}

// NewInternalInvariantViolatedError returns a new InternalInvariantViolatedError.
func NewInternalInvariantViolatedError(invariant string, err error) *InternalInvariantViolatedError {
	return &InternalInvariantViolatedError{Invariant: invariant, Err: err}
}

// IsInternalInvariantViolated returns true if err is an
// InternalInvariantViolatedError.
func IsInternalInvariantViolated(err error) bool {
	if err == nil {
		return false
	}
	var e *InternalInvariantViolatedError
	return errors.As(err, &e) || errors.Is(err, ErrInternalInvariantViolated)
}

// classifyError wraps an error surfaced by a lower-level package into the
// matching fatal error type, falling back to InternalInvariantViolatedError
// for anything unrecognized.
func classifyError(step string, err error) error {
	switch {
	case errors.Is(err, gqlast.ErrUnreachablePath):
		return NewASTShapeUnsupportedError(step, err)
	case errors.Is(err, parameterizer.ErrSchemaMismatch):
		return NewSchemaMismatchError("", "", err)
	default:
		return NewInternalInvariantViolatedError(step, err)
	}
}
