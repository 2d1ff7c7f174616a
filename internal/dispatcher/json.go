package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sagan-labs/treecache/internal/treeerr"
)

// addMessageJSON mirrors the payload keys of the add_message action in
// spec.md §6's dispatch envelope table.
type addMessageJSON struct {
	ThreadID             string `json:"thread_id"`
	Content              string `json:"content"`
	PrevMessageID        string `json:"prev_message_id"`
	TriggerSummarization bool   `json:"trigger_summarization"`
	SummaryBatchSize     int    `json:"summary_batch_size"`
}

type branchOffJSON struct {
	ThreadID           string `json:"thread_id"`
	BranchOffMessageID string `json:"branch_off_message_id"`
}

type deleteBranchJSON struct {
	ThreadID             string `json:"thread_id"`
	BranchStartMessageID string `json:"branch_start_message_id"`
}

type createThreadJSON struct {
	Prompt string `json:"prompt"`
	Topic  string `json:"topic"`
}

// DispatchJSON parses a string-keyed action name and raw JSON payload into
// the matching Action variant and invokes Dispatch. This exists only at the
// outermost CLI boundary (SPEC_FULL.md §10); every other caller should
// build an Action directly.
func (d *Dispatcher) DispatchJSON(ctx context.Context, name string, payload json.RawMessage) (interface{}, error) {
	switch name {
	case "add_message":
		var p addMessageJSON
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: add_message payload: %v", treeerr.ErrParse, err)
		}
		return d.Dispatch(ctx, AddMessagePayload{
			ThreadID:             p.ThreadID,
			Content:              p.Content,
			PrevMessageID:        p.PrevMessageID,
			TriggerSummarization: p.TriggerSummarization,
			SummaryBatchSize:     p.SummaryBatchSize,
		})
	case "branch_off":
		var p branchOffJSON
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: branch_off payload: %v", treeerr.ErrParse, err)
		}
		return d.Dispatch(ctx, BranchOffPayload{ThreadID: p.ThreadID, BranchOffMessageID: p.BranchOffMessageID})
	case "delete_branch":
		var p deleteBranchJSON
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: delete_branch payload: %v", treeerr.ErrParse, err)
		}
		return d.Dispatch(ctx, DeleteBranchPayload{ThreadID: p.ThreadID, BranchStartMessageID: p.BranchStartMessageID})
	case "list_threads":
		return d.Dispatch(ctx, ListThreadsPayload{})
	case "create_thread":
		var p createThreadJSON
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: create_thread payload: %v", treeerr.ErrParse, err)
		}
		return d.Dispatch(ctx, CreateThreadPayload{Prompt: p.Prompt, Topic: p.Topic})
	default:
		return nil, fmt.Errorf("%w: %s", treeerr.ErrUnsupportedAction, name)
	}
}
