package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagan-labs/treecache/internal/store"
	"github.com/sagan-labs/treecache/internal/treeerr"
)

func seedThread(t *testing.T, s store.Store) string {
	t.Helper()
	threadID, err := s.InsertThread(context.Background(), "", "")
	require.NoError(t, err)
	return threadID
}

func TestMessageTree_LoadEmpty(t *testing.T) {
	s := store.NewMemStore()
	threadID := seedThread(t, s)

	mt, err := LoadMessageTree(context.Background(), s, threadID)
	require.NoError(t, err)
	assert.Equal(t, 0, mt.Len())
	assert.Empty(t, mt.RootID)
}

func TestMessageTree_AddMessage_RootThenChildren(t *testing.T) {
	s := store.NewMemStore()
	threadID := seedThread(t, s)
	mt, err := LoadMessageTree(context.Background(), s, threadID)
	require.NoError(t, err)

	require.NoError(t, mt.AddMessage("1", "Message A", ""))
	assert.Equal(t, "1", mt.RootID)

	require.NoError(t, mt.AddMessage("2", "Message B", "1"))
	require.NoError(t, mt.AddMessage("3", "new Message C", "2"))

	root, ok := mt.Node("1")
	require.True(t, ok)
	assert.Equal(t, []string{"2"}, root.ChildIDs)

	n2, ok := mt.Node("2")
	require.True(t, ok)
	assert.Equal(t, []string{"3"}, n2.ChildIDs)
}

func TestMessageTree_AddMessage_SecondRootRejected(t *testing.T) {
	s := store.NewMemStore()
	threadID := seedThread(t, s)
	mt, err := LoadMessageTree(context.Background(), s, threadID)
	require.NoError(t, err)

	require.NoError(t, mt.AddMessage("1", "root", ""))
	err = mt.AddMessage("2", "second root", "")
	require.ErrorIs(t, err, treeerr.ErrInvariantViolation)
}

func TestMessageTree_AddMessage_UnknownParent(t *testing.T) {
	s := store.NewMemStore()
	threadID := seedThread(t, s)
	mt, err := LoadMessageTree(context.Background(), s, threadID)
	require.NoError(t, err)

	err = mt.AddMessage("2", "orphan", "missing-parent")
	require.ErrorIs(t, err, treeerr.ErrUnknownParent)
}

func TestMessageTree_AddMessage_AppendsNeverPrepends(t *testing.T) {
	s := store.NewMemStore()
	threadID := seedThread(t, s)
	mt, err := LoadMessageTree(context.Background(), s, threadID)
	require.NoError(t, err)

	require.NoError(t, mt.AddMessage("1", "root", ""))
	require.NoError(t, mt.AddMessage("2", "original path", "1"))
	require.NoError(t, mt.AddMessage("3", "forked sibling", "1"))

	root, _ := mt.Node("1")
	// Index 0 must remain the original, pre-fork continuation.
	assert.Equal(t, []string{"2", "3"}, root.ChildIDs)
}

func TestMessageTree_Load_CorruptDanglingLink(t *testing.T) {
	s := store.NewMemStore()
	threadID := seedThread(t, s)
	a, err := s.InsertMessage(context.Background(), threadID, "A")
	require.NoError(t, err)
	_, err = s.InsertLink(context.Background(), threadID, a, "does-not-exist")
	require.NoError(t, err)

	_, err = LoadMessageTree(context.Background(), s, threadID)
	require.ErrorIs(t, err, treeerr.ErrCorruptTree)
}

// buildLinearChain builds a MessageTree with messages 1->2->3 (all in
// memory, no store interaction) for summary-tree unit tests.
func buildLinearChain(t *testing.T) *MessageTree {
	t.Helper()
	mt := &MessageTree{ThreadID: "t", index: make(map[string]*MessageNode)}
	require.NoError(t, mt.AddMessage("1", "Message A", ""))
	require.NoError(t, mt.AddMessage("2", "Message B", "1"))
	require.NoError(t, mt.AddMessage("3", "new Message C", "2"))
	return mt
}

func TestSummaryTree_AddSummary_RootSpan(t *testing.T) {
	mt := buildLinearChain(t)
	st := &SummaryTree{ThreadID: "t", Index: &SummaryIndex{
		startMsg: map[string]string{},
		endMsg:   map[string]string{},
		nodes:    map[string]*SummaryNode{},
	}, msgTree: mt}

	require.NoError(t, st.AddSummary("s1", "Summary(2 messages)", "1", "2"))

	assert.Equal(t, "s1", st.RootSummaryID)
	startID, ok := st.Index.StartOf("1")
	require.True(t, ok)
	assert.Equal(t, "s1", startID)
	endID, ok := st.Index.EndOf("2")
	require.True(t, ok)
	assert.Equal(t, "s1", endID)
}

func TestSummaryTree_CountUnsummarizedMessages(t *testing.T) {
	mt := buildLinearChain(t)
	st := &SummaryTree{ThreadID: "t", Index: &SummaryIndex{
		startMsg: map[string]string{},
		endMsg:   map[string]string{},
		nodes:    map[string]*SummaryNode{},
	}, msgTree: mt}

	n, err := st.CountUnsummarizedMessages("1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = st.CountUnsummarizedMessages("2")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, st.AddSummary("s1", "Summary(2 messages)", "1", "2"))

	// The terminating end-of-summary itself is not counted past.
	n, err = st.CountUnsummarizedMessages("2")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSummaryTree_IsSummarized(t *testing.T) {
	mt := buildLinearChain(t)
	st := &SummaryTree{ThreadID: "t", Index: &SummaryIndex{
		startMsg: map[string]string{},
		endMsg:   map[string]string{},
		nodes:    map[string]*SummaryNode{},
	}, msgTree: mt}

	ok, err := st.IsSummarized("1")
	require.NoError(t, err)
	assert.False(t, ok, "leaf reached with no summary present")

	require.NoError(t, st.AddSummary("s1", "Summary(2 messages)", "1", "2"))
	ok, err = st.IsSummarized("1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSummaryTree_IsSummarized_AmbiguousPath(t *testing.T) {
	mt := buildLinearChain(t)
	require.NoError(t, mt.AddMessage("4", "fork of B", "2"))

	st := &SummaryTree{ThreadID: "t", Index: &SummaryIndex{
		startMsg: map[string]string{},
		endMsg:   map[string]string{},
		nodes:    map[string]*SummaryNode{},
	}, msgTree: mt}

	_, err := st.IsSummarized("1")
	require.ErrorIs(t, err, treeerr.ErrAmbiguousPath)
}

func TestSummaryTree_SplitSummary(t *testing.T) {
	mt := buildLinearChain(t)
	// Fork message 4 off of message 1 (batch-size gate scenario B).
	require.NoError(t, mt.AddMessage("4", "forked message", "1"))

	st := &SummaryTree{ThreadID: "t", Index: &SummaryIndex{
		startMsg: map[string]string{},
		endMsg:   map[string]string{},
		nodes:    map[string]*SummaryNode{},
	}, msgTree: mt}
	require.NoError(t, st.AddSummary("s1", "Summary(2 messages)", "1", "2"))

	err := st.SplitSummary("s1", "pre", "Summary(1 messages)", "1", "post", "Summary(1 messages)")
	require.NoError(t, err)

	_, ok := st.Index.Node("s1")
	assert.False(t, ok, "old summary must be gone")

	pre, ok := st.Index.Node("pre")
	require.True(t, ok)
	assert.Equal(t, "1", pre.StartMessageID)
	assert.Equal(t, "1", pre.EndMessageID)
	assert.Equal(t, []string{"post"}, pre.ChildIDs)
	assert.Equal(t, "pre", st.RootSummaryID)

	post, ok := st.Index.Node("post")
	require.True(t, ok)
	assert.Equal(t, "2", post.StartMessageID)
	assert.Equal(t, "2", post.EndMessageID)
	assert.Equal(t, "pre", post.ParentID)
}

func TestSummaryTree_SplitSummary_RejectsSplitAtEnd(t *testing.T) {
	mt := buildLinearChain(t)
	require.NoError(t, mt.AddMessage("4", "forked message", "2"))

	st := &SummaryTree{ThreadID: "t", Index: &SummaryIndex{
		startMsg: map[string]string{},
		endMsg:   map[string]string{},
		nodes:    map[string]*SummaryNode{},
	}, msgTree: mt}
	require.NoError(t, st.AddSummary("s1", "Summary(2 messages)", "1", "2"))

	err := st.SplitSummary("s1", "pre", "c1", "2", "post", "c2")
	require.ErrorIs(t, err, treeerr.ErrInvariantViolation)
}
