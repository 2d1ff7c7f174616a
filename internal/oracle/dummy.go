package oracle

import (
	"context"
	"fmt"
	"strings"
)

// Dummy is the deterministic LanguageOracle used by spec.md §8's end-to-end
// scenarios: TopicShift reports true iff current contains "new"
// case-insensitively, and Summarize returns the literal
// "Summary(<n> messages)".
type Dummy struct{}

func (Dummy) TopicShift(ctx context.Context, previous, current string) (bool, error) {
	if previous == "" {
		return false, nil
	}
	return strings.Contains(strings.ToLower(current), "new"), nil
}

func (Dummy) Summarize(ctx context.Context, texts []string) (string, error) {
	return fmt.Sprintf("Summary(%d messages)", len(texts)), nil
}

// Group returns one group per message; Dummy does not attempt semantic
// grouping.
func (Dummy) Group(ctx context.Context, messages []string) ([][]int, error) {
	groups := make([][]int, len(messages))
	for i := range messages {
		groups[i] = []int{i}
	}
	return groups, nil
}

var _ LanguageOracle = Dummy{}
