// Package oracle defines the LanguageOracle contract (spec.md §4.5) and its
// implementations: Anthropic- and OpenAI-backed oracles for production, and
// a deterministic Dummy oracle for tests.
package oracle

import "context"

// LanguageOracle is the model collaborator described in spec.md §4.5. The
// dispatcher never retries a failed call; any retry policy belongs to the
// oracle implementation itself (see Retry in retry.go).
type LanguageOracle interface {
	// TopicShift is a stateless semantic predicate over two adjacent
	// message contents. previous may be empty when there is no previous
	// message, in which case implementations must return false without
	// calling the model.
	TopicShift(ctx context.Context, previous, current string) (bool, error)

	// Summarize returns a non-empty string summarizing texts. It fails
	// with a wrapped treeerr.ErrOracle on model failure.
	Summarize(ctx context.Context, texts []string) (string, error)

	// Group partitions the indices of messages into groups that can each
	// form a coherent summary, parsed from the oracle's structured reply.
	// It is not used by the dispatcher core (spec.md §4.5) but is part of
	// the same oracle channel and is exercised directly by callers that
	// want pre-summarization grouping. Fails with treeerr.ErrParse if the
	// reply is not valid structured data, or an index in the reply falls
	// outside [0, len(messages)).
	Group(ctx context.Context, messages []string) ([][]int, error)
}
