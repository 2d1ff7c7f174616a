// Package treeerr defines the error kinds shared by the store, oracle, tree,
// cache, and dispatcher packages. Callers match on kind with errors.Is;
// packages attach context by wrapping with fmt.Errorf("...: %w", ...).
package treeerr

import "errors"

var (
	// ErrNotFound indicates a referenced id does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrUnknownParent indicates an in-memory insertion referenced an absent
	// parent id.
	ErrUnknownParent = errors.New("unknown parent")

	// ErrInvariantViolation indicates an attempt to create a second root,
	// split at an end-of-summary, or a branch detected inside a
	// summarized span.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrCorruptTree indicates a malformed message tree load: zero or more
	// than one root, or a link referencing an unknown message.
	ErrCorruptTree = errors.New("corrupt tree")

	// ErrAmbiguousPath indicates IsSummarized encountered a branch before
	// any end-of-summary while walking forward.
	ErrAmbiguousPath = errors.New("ambiguous path")

	// ErrUnsupportedAction indicates an unknown dispatcher action name.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrOracle indicates a LanguageOracle failure.
	ErrOracle = errors.New("oracle error")

	// ErrParse indicates a LanguageOracle reply could not be parsed as
	// structured data.
	ErrParse = errors.New("parse error")

	// ErrStore indicates a durable-layer failure.
	ErrStore = errors.New("store error")
)
