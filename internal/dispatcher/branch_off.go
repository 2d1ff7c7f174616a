package dispatcher

import (
	"context"
	"fmt"
	"slices"
)

// BranchOff implements the branch_off action (spec.md §4.4). If
// branchOffMessageID already equals an existing summary's end message, the
// precondition reduces to a no-op and the result carries NoSplitID in both
// fields.
func (d *Dispatcher) BranchOff(ctx context.Context, p BranchOffPayload) (BranchOffResult, error) {
	entry, err := d.cache.Get(ctx, p.ThreadID)
	if err != nil {
		return BranchOffResult{}, fmt.Errorf("branch_off: loading tree for thread %s: %w", p.ThreadID, err)
	}

	if _, isEnd := entry.SummaryTree.Index.EndOf(p.BranchOffMessageID); isEnd {
		return BranchOffResult{PreSummaryID: NoSplitID, PostSummaryID: NoSplitID}, nil
	}

	// Step 1-2: pre data, walking parents from branchOffMessageID upward
	// until an end-of-summary is reached, then reversing to chronological
	// order before summarizing. preStart tracks the last *collected*
	// message (the split summary's own start), not the boundary node the
	// walk breaks on -- that boundary is either the previous summary's end
	// message (not part of this span) or absent entirely (root).
	var preContents []string
	var preStart string
	preEnd := p.BranchOffMessageID
	cur := p.BranchOffMessageID
	for {
		if _, isEnd := entry.SummaryTree.Index.EndOf(cur); isEnd {
			break
		}
		node, ok := entry.MessageTree.Node(cur)
		if !ok {
			return BranchOffResult{}, fmt.Errorf("branch_off: walk reached unknown message %s", cur)
		}
		preContents = append(preContents, node.Content)
		preStart = cur
		if !node.HasParent() {
			break
		}
		cur = node.ParentID
	}
	slices.Reverse(preContents)
	preContent, err := d.oracle.Summarize(ctx, preContents)
	if err != nil {
		return BranchOffResult{}, fmt.Errorf("branch_off: summarizing pre-span [%s..%s]: %w", preStart, preEnd, err)
	}

	summaryID, ok := entry.SummaryTree.Index.StartOf(preStart)
	if !ok {
		return BranchOffResult{}, fmt.Errorf("branch_off: no summary starts at %s", preStart)
	}
	oldSummary, ok := entry.SummaryTree.Index.Node(summaryID)
	if !ok {
		return BranchOffResult{}, fmt.Errorf("branch_off: summary %s vanished mid-split", summaryID)
	}

	// Step 3: post data, starting at the original (pre-fork) continuation
	// and walking the single-child chain (S1 guarantees linearity) up to
	// the old summary's own end -- the span being split never extends past
	// it, so the boundary is the old summary's recorded end, not a fresh
	// start_msg-key scan that would overrun into the unsummarized tail.
	branchNode, ok := entry.MessageTree.Node(p.BranchOffMessageID)
	if !ok {
		return BranchOffResult{}, fmt.Errorf("branch_off: unknown branch-off message %s", p.BranchOffMessageID)
	}
	if len(branchNode.ChildIDs) == 0 {
		return BranchOffResult{}, fmt.Errorf("branch_off: message %s has no children to branch from", p.BranchOffMessageID)
	}
	postStart := branchNode.ChildIDs[0]
	postEnd := oldSummary.EndMessageID

	var postContents []string
	cur = postStart
	for {
		node, ok := entry.MessageTree.Node(cur)
		if !ok {
			return BranchOffResult{}, fmt.Errorf("branch_off: walk reached unknown message %s", cur)
		}
		postContents = append(postContents, node.Content)
		if cur == postEnd {
			break
		}
		if len(node.ChildIDs) == 0 {
			return BranchOffResult{}, fmt.Errorf("branch_off: walk from %s never reached old span end %s", postStart, postEnd)
		}
		cur = node.ChildIDs[0]
	}
	postContent, err := d.oracle.Summarize(ctx, postContents)
	if err != nil {
		return BranchOffResult{}, fmt.Errorf("branch_off: summarizing post-span [%s..%s]: %w", postStart, postEnd, err)
	}

	if err := d.store.DeleteSummary(ctx, summaryID); err != nil {
		return BranchOffResult{}, fmt.Errorf("branch_off: deleting summary %s: %w", summaryID, err)
	}
	preID, err := d.store.InsertSummary(ctx, preContent, preStart, preEnd, "")
	if err != nil {
		return BranchOffResult{}, fmt.Errorf("branch_off: inserting pre-summary: %w", err)
	}
	postID, err := d.store.InsertSummary(ctx, postContent, postStart, postEnd, "")
	if err != nil {
		return BranchOffResult{}, fmt.Errorf("branch_off: inserting post-summary: %w", err)
	}

	if err := entry.SummaryTree.SplitSummary(summaryID, preID, preContent, p.BranchOffMessageID, postID, postContent); err != nil {
		return BranchOffResult{}, fmt.Errorf("branch_off: patching summary tree: %w", err)
	}

	d.logger.Info("branch split", "thread_id", p.ThreadID, "old_summary_id", summaryID, "pre_summary_id", preID, "post_summary_id", postID)
	return BranchOffResult{PreSummaryID: preID, PostSummaryID: postID}, nil
}
