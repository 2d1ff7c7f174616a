package dispatcher

import (
	"context"
	"fmt"

	"github.com/sagan-labs/treecache/internal/cache"
)

// DeleteBranch chain-deletes the subtree rooted at branchStartMessageID
// (spec.md §4.4). It is best-effort per node: a store failure mid-deletion
// returns the error but the cache is still invalidated, leaving a
// consistent truncation for the next Get to rebuild from.
func (d *Dispatcher) DeleteBranch(ctx context.Context, p DeleteBranchPayload) error {
	entry, err := d.cache.Get(ctx, p.ThreadID)
	if err != nil {
		return fmt.Errorf("delete_branch: loading tree for thread %s: %w", p.ThreadID, err)
	}

	defer d.cache.Invalidate(p.ThreadID)

	branchNode, ok := entry.MessageTree.Node(p.BranchStartMessageID)
	if !ok {
		return fmt.Errorf("delete_branch: unknown branch start message %s", p.BranchStartMessageID)
	}

	if branchNode.HasParent() {
		if err := d.store.DeleteLink(ctx, branchNode.ParentID, p.BranchStartMessageID); err != nil {
			return fmt.Errorf("delete_branch: detaching branch %s: %w", p.BranchStartMessageID, err)
		}
	}

	// Breadth-first traversal of the in-memory tree (not yet modified),
	// deleting each node's outgoing links before the node itself.
	queue := []string{p.BranchStartMessageID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		node, ok := entry.MessageTree.Node(id)
		if !ok {
			continue
		}
		for _, childID := range node.ChildIDs {
			if err := d.store.DeleteLink(ctx, id, childID); err != nil {
				return fmt.Errorf("delete_branch: deleting link %s->%s: %w", id, childID, err)
			}
			queue = append(queue, childID)
		}
		if err := d.store.DeleteMessage(ctx, id); err != nil {
			return fmt.Errorf("delete_branch: deleting message %s: %w", id, err)
		}
	}

	if summaryID, ok := entry.SummaryTree.Index.StartOf(p.BranchStartMessageID); ok {
		if err := d.deleteSummarySubtree(ctx, entry, summaryID); err != nil {
			return fmt.Errorf("delete_branch: deleting summary subtree rooted at %s: %w", summaryID, err)
		}
	}

	d.logger.Info("branch deleted", "thread_id", p.ThreadID, "branch_start_message_id", p.BranchStartMessageID)
	return nil
}

func (d *Dispatcher) deleteSummarySubtree(ctx context.Context, entry *cache.Entry, summaryID string) error {
	node, ok := entry.SummaryTree.Index.Node(summaryID)
	if !ok {
		return nil
	}
	for _, childID := range node.ChildIDs {
		if err := d.deleteSummarySubtree(ctx, entry, childID); err != nil {
			return err
		}
	}
	return d.store.DeleteSummary(ctx, summaryID)
}
