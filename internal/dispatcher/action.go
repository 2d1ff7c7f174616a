package dispatcher

// Action is a tagged union of the actions a Dispatcher can carry out. The
// string-keyed dispatch envelope in spec.md §6 is only realized at the
// outermost boundary (DispatchJSON); everywhere else callers build one of
// these payloads directly.
type Action interface {
	isAction()
}

// AddMessagePayload is the payload for the add_message action.
type AddMessagePayload struct {
	ThreadID             string
	Content              string
	PrevMessageID        string // empty means this message becomes the thread root
	TriggerSummarization bool
	SummaryBatchSize     int
}

func (AddMessagePayload) isAction() {}

// BranchOffPayload is the payload for the branch_off action.
type BranchOffPayload struct {
	ThreadID           string
	BranchOffMessageID string
}

func (BranchOffPayload) isAction() {}

// DeleteBranchPayload is the payload for the delete_branch action.
type DeleteBranchPayload struct {
	ThreadID             string
	BranchStartMessageID string
}

func (DeleteBranchPayload) isAction() {}

// ListThreadsPayload lists every thread (SPEC_FULL §7 supplemented feature).
type ListThreadsPayload struct{}

func (ListThreadsPayload) isAction() {}

// CreateThreadPayload creates a new thread (SPEC_FULL §7 supplemented feature).
type CreateThreadPayload struct {
	Prompt string
	Topic  string
}

func (CreateThreadPayload) isAction() {}
