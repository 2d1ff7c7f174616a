// Package tree implements the in-memory message tree and its derived
// summary tree: MessageTree, SummaryTree, and the SummaryIndex that keeps
// the two inverse lookups (start_msg, end_msg) consistent with the summary
// node map.
package tree

import (
	"context"
	"fmt"

	"github.com/sagan-labs/treecache/internal/store"
	"github.com/sagan-labs/treecache/internal/treeerr"
)

// MessageNode is the in-memory projection of one message. ChildIDs
// preserves insertion order: new children are always appended, never
// prepended, so that index 0 remains the original (pre-fork) continuation
// of a branch (see the fork-order convention in SPEC_FULL.md §10).
type MessageNode struct {
	ID       string
	Content  string
	ParentID string // empty when this node is the root
	ChildIDs []string
}

// HasParent reports whether n has a parent (n is not the root).
func (n *MessageNode) HasParent() bool { return n.ParentID != "" }

// MessageTree is one thread's message DAG (in practice a rooted tree) held
// in memory for O(1) navigation.
type MessageTree struct {
	ThreadID    string
	RootID string
	index  map[string]*MessageNode
}

// Node returns the node for id, or ok=false if id is unknown.
func (t *MessageTree) Node(id string) (*MessageNode, bool) {
	n, ok := t.index[id]
	return n, ok
}

// Len returns the number of messages held in the tree.
func (t *MessageTree) Len() int { return len(t.index) }

// LoadMessageTree fetches all messages and links for threadID from s and
// builds the in-memory tree. Fails with treeerr.ErrCorruptTree if link
// endpoints reference unknown messages or a non-empty thread has zero or
// more than one root; a thread with no messages loads as an empty tree.
func LoadMessageTree(ctx context.Context, s store.Store, threadID string) (*MessageTree, error) {
	msgs, err := s.FetchMessages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("loading message tree: %w", err)
	}
	links, err := s.FetchLinks(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("loading message tree: %w", err)
	}

	index := make(map[string]*MessageNode, len(msgs))
	for _, m := range msgs {
		index[m.ID] = &MessageNode{ID: m.ID, Content: m.Content}
	}

	for _, l := range links {
		parent, ok := index[l.PreviousMessageID]
		if !ok {
			return nil, fmt.Errorf("%w: link %s references unknown previous message %s", treeerr.ErrCorruptTree, l.ID, l.PreviousMessageID)
		}
		child, ok := index[l.NextMessageID]
		if !ok {
			return nil, fmt.Errorf("%w: link %s references unknown next message %s", treeerr.ErrCorruptTree, l.ID, l.NextMessageID)
		}
		child.ParentID = parent.ID
		parent.ChildIDs = append(parent.ChildIDs, child.ID)
	}

	var rootID string
	rootCount := 0
	for id, n := range index {
		if !n.HasParent() {
			rootID = id
			rootCount++
		}
	}
	if len(index) > 0 && rootCount != 1 {
		return nil, fmt.Errorf("%w: thread %s has %d root messages, want exactly 1", treeerr.ErrCorruptTree, threadID, rootCount)
	}

	return &MessageTree{ThreadID: threadID, RootID: rootID, index: index}, nil
}

// AddMessage inserts a fresh node with the given id and content. When
// parentID is empty, the new node becomes the tree's root; this is only
// permitted when the tree was previously empty, otherwise it fails with
// treeerr.ErrInvariantViolation (a thread may have only one root). Otherwise parentID
// must already exist in the tree (treeerr.ErrUnknownParent if not); the new
// id is appended to the parent's ChildIDs, preserving fork order.
func (t *MessageTree) AddMessage(id, content, parentID string) error {
	if parentID == "" {
		if len(t.index) != 0 {
			return fmt.Errorf("%w: thread %s already has a root message %s", treeerr.ErrInvariantViolation, t.ThreadID, t.RootID)
		}
		t.index[id] = &MessageNode{ID: id, Content: content}
		t.RootID = id
		return nil
	}

	parent, ok := t.index[parentID]
	if !ok {
		return fmt.Errorf("%w: parent message %s", treeerr.ErrUnknownParent, parentID)
	}
	t.index[id] = &MessageNode{ID: id, Content: content, ParentID: parentID}
	parent.ChildIDs = append(parent.ChildIDs, id)
	return nil
}

// Ancestors walks parent links from id (inclusive) up to and including the
// root, returning ids in child-to-parent order.
func (t *MessageTree) Ancestors(id string) []string {
	var out []string
	cur := id
	for {
		n, ok := t.index[cur]
		if !ok {
			return out
		}
		out = append(out, cur)
		if !n.HasParent() {
			return out
		}
		cur = n.ParentID
	}
}
