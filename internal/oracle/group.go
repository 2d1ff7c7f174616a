package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sagan-labs/treecache/internal/treeerr"
)

const groupPrompt = "Group the numbered messages below into lists of indices that each form a semantically coherent, contiguous summary span. Reply with only a JSON array of arrays of zero-based indices, e.g. [[0,1],[2]]."

// groupViaJSONReply is shared by the Anthropic and OpenAI oracles: it
// prompts complete with the numbered messages and parses the reply as a
// JSON array of index arrays, validating every index is in range.
func groupViaJSONReply(ctx context.Context, complete func(ctx context.Context, system, user string) (string, error), messages []string) ([][]int, error) {
	var sb strings.Builder
	for i, m := range messages {
		fmt.Fprintf(&sb, "%d. %s\n", i, m)
	}

	reply, err := complete(ctx, groupPrompt, sb.String())
	if err != nil {
		return nil, err
	}

	var groups [][]int
	if err := json.Unmarshal([]byte(trimJSONFence(reply)), &groups); err != nil {
		return nil, fmt.Errorf("%w: parsing group reply %q: %v", treeerr.ErrParse, reply, err)
	}
	for _, group := range groups {
		for _, idx := range group {
			if idx < 0 || idx >= len(messages) {
				return nil, fmt.Errorf("%w: group reply references out-of-range index %d", treeerr.ErrParse, idx)
			}
		}
	}
	return groups, nil
}

// trimJSONFence strips a leading/trailing markdown code fence some models
// wrap JSON replies in.
func trimJSONFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
