// Package store defines the durable CRUD contract (Store) that the
// conversation tree cache and dispatcher depend on, plus two
// implementations: a SQLite-backed store for production use and an
// in-memory store for tests.
package store

import (
	"context"

	"github.com/sagan-labs/treecache/internal/model"
)

// Store is the durable collaborator described in spec §6. All operations
// are synchronous and transactional per call. Implementations generate the
// ids they return. Sqlite draws random nanoid strings, regenerating one that
// collides with an existing row, so an id freed by a deletion may be drawn
// again; MemStore issues sequential prefixed ids.
type Store interface {
	InsertThread(ctx context.Context, prompt, topic string) (string, error)
	FetchThreads(ctx context.Context) ([]model.Thread, error)

	InsertMessage(ctx context.Context, threadID, content string) (string, error)
	FetchMessages(ctx context.Context, threadID string) ([]model.Message, error)
	// FetchMessage fails with treeerr.ErrNotFound if messageID does not exist.
	FetchMessage(ctx context.Context, messageID string) (model.Message, error)

	InsertLink(ctx context.Context, threadID, prevMessageID, nextMessageID string) (string, error)
	// DeleteLink is idempotent.
	DeleteLink(ctx context.Context, prevMessageID, nextMessageID string) error
	FetchLinks(ctx context.Context, threadID string) ([]model.Link, error)

	InsertSummary(ctx context.Context, content, startMessageID, endMessageID, embeddingFile string) (string, error)
	// DeleteSummary is idempotent.
	DeleteSummary(ctx context.Context, summaryID string) error
	// FetchSummaries returns every summary belonging to threadID (joined via
	// each summary's start message's thread).
	FetchSummaries(ctx context.Context, threadID string) ([]model.Summary, error)

	// DeleteMessage is idempotent.
	DeleteMessage(ctx context.Context, messageID string) error
}
