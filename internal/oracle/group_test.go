package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagan-labs/treecache/internal/treeerr"
)

func TestGroupViaJSONReply(t *testing.T) {
	complete := func(ctx context.Context, system, user string) (string, error) {
		return "[[0,1],[2]]", nil
	}
	groups, err := groupViaJSONReply(context.Background(), complete, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {2}}, groups)
}

func TestGroupViaJSONReply_StripsCodeFence(t *testing.T) {
	complete := func(ctx context.Context, system, user string) (string, error) {
		return "```json\n[[0]]\n```", nil
	}
	groups, err := groupViaJSONReply(context.Background(), complete, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}}, groups)
}

func TestGroupViaJSONReply_InvalidJSON(t *testing.T) {
	complete := func(ctx context.Context, system, user string) (string, error) {
		return "not json", nil
	}
	_, err := groupViaJSONReply(context.Background(), complete, []string{"a"})
	require.ErrorIs(t, err, treeerr.ErrParse)
}

func TestGroupViaJSONReply_IndexOutOfRange(t *testing.T) {
	complete := func(ctx context.Context, system, user string) (string, error) {
		return "[[5]]", nil
	}
	_, err := groupViaJSONReply(context.Background(), complete, []string{"a"})
	require.ErrorIs(t, err, treeerr.ErrParse)
}
