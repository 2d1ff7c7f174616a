package tree

import (
	"context"
	"fmt"

	"github.com/sagan-labs/treecache/internal/store"
	"github.com/sagan-labs/treecache/internal/treeerr"
)

// SummaryNode is the in-memory quotient-tree node collapsing one summarized
// span [StartMessageID...EndMessageID] into a single node.
type SummaryNode struct {
	ID             string
	Content        string
	StartMessageID string
	EndMessageID   string
	ParentID       string // empty for a root summary
	ChildIDs       []string
}

// SummaryIndex is the auxiliary structure of three mutually-consistent
// mappings described in spec.md §3: for every SummaryNode n,
// startMsg[n.StartMessageID] == endMsg[n.EndMessageID] == n.ID.
type SummaryIndex struct {
	startMsg map[string]string // message id -> summary id
	endMsg   map[string]string // message id -> summary id
	nodes    map[string]*SummaryNode
}

// StartOf returns the summary id whose span starts at msgID, if any.
func (idx *SummaryIndex) StartOf(msgID string) (string, bool) {
	id, ok := idx.startMsg[msgID]
	return id, ok
}

// EndOf returns the summary id whose span ends at msgID, if any.
func (idx *SummaryIndex) EndOf(msgID string) (string, bool) {
	id, ok := idx.endMsg[msgID]
	return id, ok
}

// Node returns the SummaryNode for id, if any.
func (idx *SummaryIndex) Node(id string) (*SummaryNode, bool) {
	n, ok := idx.nodes[id]
	return n, ok
}

// SummaryTree is the quotient of a MessageTree by its summarized spans,
// kept mutually consistent with its SummaryIndex.
type SummaryTree struct {
	ThreadID      string
	RootSummaryID string // empty when the root message is not yet summarized
	Index         *SummaryIndex

	msgTree *MessageTree
}

// LoadSummaryTree fetches all summaries for threadID from s and builds the
// in-memory summary tree over msgTree. Root summaries are summaries whose
// start message has no parent, or whose parent has no summary ending at it
// (the tail above is unsummarized) -- both are tolerated per spec.md §4.2.
func LoadSummaryTree(ctx context.Context, s store.Store, msgTree *MessageTree) (*SummaryTree, error) {
	summaries, err := s.FetchSummaries(ctx, msgTree.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("loading summary tree: %w", err)
	}

	idx := &SummaryIndex{
		startMsg: make(map[string]string, len(summaries)),
		endMsg:   make(map[string]string, len(summaries)),
		nodes:    make(map[string]*SummaryNode, len(summaries)),
	}
	for _, sm := range summaries {
		idx.nodes[sm.ID] = &SummaryNode{
			ID:             sm.ID,
			Content:        sm.Content,
			StartMessageID: sm.StartMessageID,
			EndMessageID:   sm.EndMessageID,
		}
		idx.startMsg[sm.StartMessageID] = sm.ID
		idx.endMsg[sm.EndMessageID] = sm.ID
	}

	for _, sm := range summaries {
		node := idx.nodes[sm.ID]

		startNode, ok := msgTree.Node(sm.StartMessageID)
		if !ok {
			return nil, fmt.Errorf("%w: summary %s starts at unknown message %s", treeerr.ErrCorruptTree, sm.ID, sm.StartMessageID)
		}
		if startNode.HasParent() {
			if parentSummaryID, ok := idx.EndOf(startNode.ParentID); ok {
				node.ParentID = parentSummaryID
			}
			// else: tolerated as root-in-summary-tree (unsummarized tail above).
		}

		endNode, ok := msgTree.Node(sm.EndMessageID)
		if !ok {
			return nil, fmt.Errorf("%w: summary %s ends at unknown message %s", treeerr.ErrCorruptTree, sm.ID, sm.EndMessageID)
		}
		for _, childMsgID := range endNode.ChildIDs {
			if childSummaryID, ok := idx.StartOf(childMsgID); ok {
				node.ChildIDs = append(node.ChildIDs, childSummaryID)
			}
			// else: child's start is unsummarized; ignored per spec.md §4.2.
		}
	}

	var rootSummaryID string
	if msgTree.RootID != "" {
		rootSummaryID, _ = idx.StartOf(msgTree.RootID)
	}

	return &SummaryTree{
		ThreadID:      msgTree.ThreadID,
		RootSummaryID: rootSummaryID,
		Index:         idx,
		msgTree:       msgTree,
	}, nil
}

// AddSummary installs a new summary node covering [start...end]. The caller
// must already have verified S1 (the span is a branch-free linear chain).
func (t *SummaryTree) AddSummary(id, content, start, end string) error {
	node := &SummaryNode{ID: id, Content: content, StartMessageID: start, EndMessageID: end}

	startNode, ok := t.msgTree.Node(start)
	if !ok {
		return fmt.Errorf("%w: summary start message %s", treeerr.ErrUnknownParent, start)
	}
	if startNode.HasParent() {
		if parentSummaryID, ok := t.Index.EndOf(startNode.ParentID); ok {
			node.ParentID = parentSummaryID
			if parent, ok := t.Index.nodes[parentSummaryID]; ok {
				parent.ChildIDs = append(parent.ChildIDs, id)
			}
		}
	}

	t.Index.nodes[id] = node
	t.Index.startMsg[start] = id
	t.Index.endMsg[end] = id

	if start == t.msgTree.RootID {
		t.RootSummaryID = id
	}
	return nil
}

// SplitSummary atomically replaces summary id with two summaries: pre,
// covering [old.Start...branchOffMsg], and post, covering [firstChild of
// branchOffMsg on the original path...old.End]. branchOffMsg must lie
// strictly inside the old span (not equal to its end) and must now have at
// least two children in the message tree -- the split is always triggered
// by a newly forked child. Per the fork-order convention, the original
// (pre-fork) continuation is always messageTree[branchOffMsg].ChildIDs[0].
func (t *SummaryTree) SplitSummary(id, preID, preContent, branchOffMsg, postID, postContent string) error {
	old, ok := t.Index.nodes[id]
	if !ok {
		return fmt.Errorf("%w: summary %s", treeerr.ErrNotFound, id)
	}
	if branchOffMsg == old.EndMessageID {
		return fmt.Errorf("%w: cannot split summary %s at its own end message %s", treeerr.ErrInvariantViolation, id, branchOffMsg)
	}
	branchNode, ok := t.msgTree.Node(branchOffMsg)
	if !ok {
		return fmt.Errorf("%w: branch-off message %s", treeerr.ErrUnknownParent, branchOffMsg)
	}
	if len(branchNode.ChildIDs) < 2 {
		return fmt.Errorf("%w: branch-off message %s has %d children, want >= 2", treeerr.ErrInvariantViolation, branchOffMsg, len(branchNode.ChildIDs))
	}

	// Remove the old node.
	delete(t.Index.nodes, id)
	delete(t.Index.startMsg, old.StartMessageID)
	delete(t.Index.endMsg, old.EndMessageID)

	originalContinuation := branchNode.ChildIDs[0]

	pre := &SummaryNode{
		ID:             preID,
		Content:        preContent,
		StartMessageID: old.StartMessageID,
		EndMessageID:   branchOffMsg,
		ParentID:       old.ParentID,
		ChildIDs:       []string{postID},
	}
	post := &SummaryNode{
		ID:             postID,
		Content:        postContent,
		StartMessageID: originalContinuation,
		EndMessageID:   old.EndMessageID,
		ParentID:       preID,
		ChildIDs:       old.ChildIDs,
	}

	t.Index.nodes[preID] = pre
	t.Index.nodes[postID] = post
	t.Index.startMsg[pre.StartMessageID] = preID
	t.Index.endMsg[pre.EndMessageID] = preID
	t.Index.startMsg[post.StartMessageID] = postID
	t.Index.endMsg[post.EndMessageID] = postID

	// The old node's former children now belong to post.
	for _, grandchildID := range post.ChildIDs {
		if gc, ok := t.Index.nodes[grandchildID]; ok {
			gc.ParentID = postID
		}
	}

	// The old node's former parent (if any) must point at pre in its place.
	if old.ParentID != "" {
		if parent, ok := t.Index.nodes[old.ParentID]; ok {
			for i, childID := range parent.ChildIDs {
				if childID == id {
					parent.ChildIDs[i] = preID
					break
				}
			}
		}
	}

	if old.StartMessageID == t.msgTree.RootID {
		t.RootSummaryID = preID
	}
	return nil
}

// CountUnsummarizedMessages walks parent links from msgID until a node
// whose id is an end-of-summary is found or the root is crossed, returning
// the number of messages visited, msgID included (the terminating
// end-of-summary node is not counted; a lone root returns 1). msgID must
// either be itself an end-of-summary (returns 0) or not be part of any
// summary.
func (t *SummaryTree) CountUnsummarizedMessages(msgID string) (int, error) {
	if _, ok := t.Index.EndOf(msgID); ok {
		return 0, nil
	}

	count := 0
	cur := msgID
	for {
		if _, ok := t.Index.EndOf(cur); ok {
			return count, nil
		}
		n, ok := t.msgTree.Node(cur)
		if !ok {
			return 0, fmt.Errorf("%w: message %s", treeerr.ErrNotFound, cur)
		}
		count++
		if !n.HasParent() {
			return count, nil
		}
		cur = n.ParentID
	}
}

// IsSummarized walks child links from msgID while the current node has
// exactly one child. It returns true if an end-of-summary is encountered,
// false if a leaf (no children) is reached, and fails with
// treeerr.ErrAmbiguousPath if a branching node is encountered before any
// end-of-summary (a summarized span cannot contain a branch, S1).
func (t *SummaryTree) IsSummarized(msgID string) (bool, error) {
	cur := msgID
	for {
		if _, ok := t.Index.EndOf(cur); ok {
			return true, nil
		}
		n, ok := t.msgTree.Node(cur)
		if !ok {
			return false, fmt.Errorf("%w: message %s", treeerr.ErrNotFound, cur)
		}
		switch len(n.ChildIDs) {
		case 0:
			return false, nil
		case 1:
			cur = n.ChildIDs[0]
		default:
			return false, fmt.Errorf("%w: message %s branches before reaching an end-of-summary", treeerr.ErrAmbiguousPath, cur)
		}
	}
}
