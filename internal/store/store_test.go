package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bradleyjkemp/cupaloy/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSqlite(t *testing.T) *Sqlite {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	t.Cleanup(func() { db.Close() })

	s, err := NewSqlite(context.Background(), db)
	require.NoError(t, err, "failed to initialize schema")
	return s
}

// Both implementations must satisfy the same contract; run a shared suite
// against each.
func allStores(t *testing.T) map[string]Store {
	return map[string]Store{
		"sqlite": setupTestSqlite(t),
		"memory": NewMemStore(),
	}
}

func TestStore_InsertAndFetchMessage(t *testing.T) {
	for name, s := range allStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			threadID, err := s.InsertThread(ctx, "", "")
			require.NoError(t, err)

			msgID, err := s.InsertMessage(ctx, threadID, "hello")
			require.NoError(t, err)
			assert.NotEmpty(t, msgID)

			msg, err := s.FetchMessage(ctx, msgID)
			require.NoError(t, err)
			assert.Equal(t, "hello", msg.Content)
			assert.Equal(t, threadID, msg.ThreadID)
		})
	}
}

func TestStore_FetchMessage_NotFound(t *testing.T) {
	for name, s := range allStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.FetchMessage(context.Background(), "does-not-exist")
			require.Error(t, err)
		})
	}
}

func TestStore_LinkAndSummaryLifecycle(t *testing.T) {
	for name, s := range allStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			threadID, err := s.InsertThread(ctx, "", "")
			require.NoError(t, err)

			a, err := s.InsertMessage(ctx, threadID, "A")
			require.NoError(t, err)
			b, err := s.InsertMessage(ctx, threadID, "B")
			require.NoError(t, err)

			linkID, err := s.InsertLink(ctx, threadID, a, b)
			require.NoError(t, err)
			assert.NotEmpty(t, linkID)

			links, err := s.FetchLinks(ctx, threadID)
			require.NoError(t, err)
			assert.Len(t, links, 1)

			// DeleteLink is idempotent.
			require.NoError(t, s.DeleteLink(ctx, a, b))
			require.NoError(t, s.DeleteLink(ctx, a, b))

			links, err = s.FetchLinks(ctx, threadID)
			require.NoError(t, err)
			assert.Empty(t, links)

			sumID, err := s.InsertSummary(ctx, "Summary(2 messages)", a, b, "")
			require.NoError(t, err)

			summaries, err := s.FetchSummaries(ctx, threadID)
			require.NoError(t, err)
			require.Len(t, summaries, 1)
			assert.Equal(t, sumID, summaries[0].ID)

			// DeleteSummary is idempotent.
			require.NoError(t, s.DeleteSummary(ctx, sumID))
			require.NoError(t, s.DeleteSummary(ctx, sumID))

			summaries, err = s.FetchSummaries(ctx, threadID)
			require.NoError(t, err)
			assert.Empty(t, summaries)
		})
	}
}

func TestStore_DeleteMessage_Idempotent(t *testing.T) {
	for name, s := range allStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			threadID, err := s.InsertThread(ctx, "", "")
			require.NoError(t, err)
			msgID, err := s.InsertMessage(ctx, threadID, "hello")
			require.NoError(t, err)

			require.NoError(t, s.DeleteMessage(ctx, msgID))
			require.NoError(t, s.DeleteMessage(ctx, msgID))
		})
	}
}

// snapshotMessage is a stable shape for cupaloy snapshot assertions that
// ignores generated ids and timestamps.
type snapshotMessage struct {
	ThreadID string
	Content  string
}

func TestStore_ListMessagesByThread_Snapshot(t *testing.T) {
	ctx := context.Background()
	s := setupTestSqlite(t)
	threadID, err := s.InsertThread(ctx, "", "")
	require.NoError(t, err)
	for _, content := range []string{"Message A", "Message B", "Message C"} {
		_, err := s.InsertMessage(ctx, threadID, content)
		require.NoError(t, err)
	}

	msgs, err := s.FetchMessages(ctx, threadID)
	require.NoError(t, err)

	normalized := make([]snapshotMessage, 0, len(msgs))
	for _, m := range msgs {
		normalized = append(normalized, snapshotMessage{ThreadID: "thread", Content: m.Content})
	}
	cupaloy.SnapshotT(t, normalized)
}
