// Package dispatcher implements the Dispatcher: the only component that
// touches both the durable Store and the in-memory tree cache, guaranteeing
// that durable mutations happen first and fully before any in-memory
// projection is updated or invalidated.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sagan-labs/treecache/internal/cache"
	"github.com/sagan-labs/treecache/internal/oracle"
	"github.com/sagan-labs/treecache/internal/store"
	"github.com/sagan-labs/treecache/internal/treeerr"
)

// NoSplitID is the sentinel "no-split" result returned by BranchOff when
// branchOffMessageID already equals an existing summary's end message.
const NoSplitID = ""

// BranchOffResult carries the two summary ids produced by a split, or a pair
// of NoSplitID when the precondition reduced the action to a no-op.
type BranchOffResult struct {
	PreSummaryID  string
	PostSummaryID string
}

// Dispatcher orchestrates MessageTree/SummaryTree mutations against Store
// and LanguageOracle with the write-order discipline of spec.md §4.4.
type Dispatcher struct {
	store  store.Store
	cache  *cache.TreeCache
	oracle oracle.LanguageOracle
	logger *slog.Logger
}

// New returns a Dispatcher wiring the given collaborators.
func New(s store.Store, c *cache.TreeCache, o oracle.LanguageOracle, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{store: s, cache: c, oracle: o, logger: logger}
}

// Dispatch routes action to the matching method, returning whatever result
// type that action produces.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action) (interface{}, error) {
	switch a := action.(type) {
	case AddMessagePayload:
		return d.AddMessage(ctx, a)
	case BranchOffPayload:
		return d.BranchOff(ctx, a)
	case DeleteBranchPayload:
		return nil, d.DeleteBranch(ctx, a)
	case ListThreadsPayload:
		return d.ListThreads(ctx)
	case CreateThreadPayload:
		return d.CreateThread(ctx, a.Prompt, a.Topic)
	default:
		return nil, fmt.Errorf("%w: %T", treeerr.ErrUnsupportedAction, action)
	}
}

// Cache exposes the underlying TreeCache so callers can register its
// Prometheus collectors (e.g. a /metrics endpoint); it is not itself part of
// the dispatch surface.
func (d *Dispatcher) Cache() *cache.TreeCache {
	return d.cache
}

// ListThreads is a thin pass-through to Store.FetchThreads (SPEC_FULL §7).
func (d *Dispatcher) ListThreads(ctx context.Context) (interface{}, error) {
	threads, err := d.store.FetchThreads(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	return threads, nil
}

// CreateThread is a thin pass-through to Store.InsertThread (SPEC_FULL §7).
func (d *Dispatcher) CreateThread(ctx context.Context, prompt, topic string) (string, error) {
	threadID, err := d.store.InsertThread(ctx, prompt, topic)
	if err != nil {
		return "", fmt.Errorf("creating thread: %w", err)
	}
	d.logger.Info("thread created", "thread_id", threadID)
	return threadID, nil
}
