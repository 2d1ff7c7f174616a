package dispatcher

import (
	"context"
	"fmt"
	"slices"

	"github.com/sagan-labs/treecache/internal/cache"
)

// AddMessage inserts a message, optionally linking it to prevMessageID, and
// optionally runs the two-gate summarization sub-protocol (spec.md §4.4).
func (d *Dispatcher) AddMessage(ctx context.Context, p AddMessagePayload) (string, error) {
	msgID, err := d.store.InsertMessage(ctx, p.ThreadID, p.Content)
	if err != nil {
		return "", fmt.Errorf("add_message: inserting message: %w", err)
	}

	if p.PrevMessageID != "" {
		if _, err := d.store.InsertLink(ctx, p.ThreadID, p.PrevMessageID, msgID); err != nil {
			return "", fmt.Errorf("add_message: linking message %s to parent %s: %w", msgID, p.PrevMessageID, err)
		}
	}

	entry, err := d.cache.Get(ctx, p.ThreadID)
	if err != nil {
		return "", fmt.Errorf("add_message: loading tree for thread %s: %w", p.ThreadID, err)
	}
	// On a cache miss the tree was just loaded from the store, which already
	// holds the new message and its link; only a resident tree is patched.
	if _, loaded := entry.MessageTree.Node(msgID); !loaded {
		if err := entry.MessageTree.AddMessage(msgID, p.Content, p.PrevMessageID); err != nil {
			return "", fmt.Errorf("add_message: patching message tree: %w", err)
		}
	}

	if p.TriggerSummarization {
		if err := d.maybeSummarize(ctx, p, entry); err != nil {
			return "", err
		}
	}

	d.logger.Info("message added", "thread_id", p.ThreadID, "message_id", msgID, "prev_message_id", p.PrevMessageID)
	return msgID, nil
}

// maybeSummarize runs the summarization sub-protocol described in spec.md
// §4.4. It is a no-op unless both gates pass: enough unsummarized messages
// have accumulated above prevMessageID, and the oracle reports a topic
// shift between the previous message and the new content.
func (d *Dispatcher) maybeSummarize(ctx context.Context, p AddMessagePayload, entry *cache.Entry) error {
	if p.PrevMessageID == "" {
		return nil
	}

	unsummarized, err := entry.SummaryTree.CountUnsummarizedMessages(p.PrevMessageID)
	if err != nil {
		return fmt.Errorf("add_message: counting unsummarized messages: %w", err)
	}
	if unsummarized < p.SummaryBatchSize {
		return nil
	}

	prevNode, ok := entry.MessageTree.Node(p.PrevMessageID)
	if !ok {
		return nil
	}
	shift, err := d.oracle.TopicShift(ctx, prevNode.Content, p.Content)
	if err != nil {
		return fmt.Errorf("add_message: checking topic shift: %w", err)
	}
	if !shift {
		return nil
	}

	// Walk parents from prevMessageID (inclusive) upward while the current
	// id is not an end-of-summary key, collecting contents in
	// child->parent order, then reversing them to chronological (oldest
	// first) order before summarizing, as branch_off does. start tracks the last *collected* message, not
	// the boundary node the walk breaks on -- that boundary is either the
	// prior summary's own end message (not part of this span) or absent
	// entirely (root). Running past the root is a valid termination (the
	// very first summary of a thread has no end-of-summary ancestor).
	var contents []string
	var start string
	end := p.PrevMessageID
	cur := p.PrevMessageID
	for {
		if _, isEnd := entry.SummaryTree.Index.EndOf(cur); isEnd {
			break
		}
		node, ok := entry.MessageTree.Node(cur)
		if !ok {
			return fmt.Errorf("add_message: summarization walk reached unknown message %s", cur)
		}
		contents = append(contents, node.Content)
		start = cur
		if !node.HasParent() {
			break
		}
		cur = node.ParentID
	}
	slices.Reverse(contents)

	text, err := d.oracle.Summarize(ctx, contents)
	if err != nil {
		return fmt.Errorf("add_message: summarizing range [%s..%s]: %w", start, end, err)
	}

	summaryID, err := d.store.InsertSummary(ctx, text, start, end, "")
	if err != nil {
		return fmt.Errorf("add_message: persisting summary: %w", err)
	}
	if err := entry.SummaryTree.AddSummary(summaryID, text, start, end); err != nil {
		return fmt.Errorf("add_message: patching summary tree: %w", err)
	}

	d.logger.Info("summary created", "thread_id", p.ThreadID, "summary_id", summaryID, "start", start, "end", end)
	return nil
}
