package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sagan-labs/treecache/internal/model"
	"github.com/sagan-labs/treecache/internal/treeerr"
)

// DB is the interface accepted by NewSqlite. It abstracts the database
// operations needed by Sqlite so that callers can supply a real *sql.DB or a
// wrapper that injects faults, records calls, etc.
type DB interface {
	DBTX
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

const idCharset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func generateID() string {
	return gonanoid.MustGenerate(idCharset, 10)
}

//go:embed schema.sql
var schemaSQL string

// Sqlite is a Store backed by SQLite (via github.com/mattn/go-sqlite3). Do
// not access its underlying database directly; go through Store methods.
type Sqlite struct {
	db          DB
	q           *Queries
	idGenerator func() string
}

// NewSqlite initializes and returns a new Sqlite instance backed by db. It
// runs the embedded schema DDL before returning. The caller is responsible
// for opening and closing the underlying *sql.DB.
func NewSqlite(ctx context.Context, db DB) (*Sqlite, error) {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("%w: initializing schema: %v", treeerr.ErrStore, err)
	}
	return &Sqlite{db: db, q: New(db), idGenerator: generateID}, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (s *Sqlite) generateUniqueID(ctx context.Context, exists func(context.Context, string) (int64, error)) (string, error) {
	const maxAttempts = 10
	for range maxAttempts {
		id := s.idGenerator()
		n, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("%w: checking id collision: %v", treeerr.ErrStore, err)
		}
		if n == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: failed to generate unique id after %d attempts", treeerr.ErrStore, maxAttempts)
}

func (s *Sqlite) InsertThread(ctx context.Context, prompt, topic string) (string, error) {
	id, err := s.generateUniqueID(ctx, s.q.CheckThreadIDExists)
	if err != nil {
		return "", err
	}
	if err := s.q.InsertThread(ctx, id, nullString(prompt), nullString(topic)); err != nil {
		return "", fmt.Errorf("%w: inserting thread: %v", treeerr.ErrStore, err)
	}
	return id, nil
}

func (s *Sqlite) FetchThreads(ctx context.Context) ([]model.Thread, error) {
	rows, err := s.q.ListThreads(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing threads: %v", treeerr.ErrStore, err)
	}
	threads := make([]model.Thread, 0, len(rows))
	for _, r := range rows {
		threads = append(threads, model.Thread{
			ID:        r.ID,
			Topic:     r.Topic.String,
			Prompt:    r.Prompt.String,
			CreatedAt: r.CreatedAt,
		})
	}
	return threads, nil
}

func (s *Sqlite) InsertMessage(ctx context.Context, threadID, content string) (string, error) {
	id, err := s.generateUniqueID(ctx, s.q.CheckMessageIDExists)
	if err != nil {
		return "", err
	}
	if err := s.q.InsertMessage(ctx, id, threadID, content, sql.NullString{}); err != nil {
		return "", fmt.Errorf("%w: inserting message: %v", treeerr.ErrStore, err)
	}
	return id, nil
}

func (s *Sqlite) FetchMessages(ctx context.Context, threadID string) ([]model.Message, error) {
	rows, err := s.q.ListMessagesByThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing messages: %v", treeerr.ErrStore, err)
	}
	msgs := make([]model.Message, 0, len(rows))
	for _, r := range rows {
		msgs = append(msgs, model.Message{
			ID:            r.ID,
			ThreadID:      r.ThreadID,
			Content:       r.Content,
			EmbeddingFile: r.EmbeddingFile.String,
			CreatedAt:     r.CreatedAt,
		})
	}
	return msgs, nil
}

func (s *Sqlite) FetchMessage(ctx context.Context, messageID string) (model.Message, error) {
	r, err := s.q.GetMessage(ctx, messageID)
	if err == sql.ErrNoRows {
		return model.Message{}, fmt.Errorf("%w: message %s", treeerr.ErrNotFound, messageID)
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("%w: fetching message: %v", treeerr.ErrStore, err)
	}
	return model.Message{
		ID:            r.ID,
		ThreadID:      r.ThreadID,
		Content:       r.Content,
		EmbeddingFile: r.EmbeddingFile.String,
		CreatedAt:     r.CreatedAt,
	}, nil
}

func (s *Sqlite) InsertLink(ctx context.Context, threadID, prevMessageID, nextMessageID string) (string, error) {
	id, err := s.generateUniqueID(ctx, s.q.CheckLinkIDExists)
	if err != nil {
		return "", err
	}
	if err := s.q.InsertLink(ctx, id, threadID, prevMessageID, nextMessageID); err != nil {
		return "", fmt.Errorf("%w: inserting link: %v", treeerr.ErrStore, err)
	}
	return id, nil
}

func (s *Sqlite) DeleteLink(ctx context.Context, prevMessageID, nextMessageID string) error {
	if err := s.q.DeleteLink(ctx, prevMessageID, nextMessageID); err != nil {
		return fmt.Errorf("%w: deleting link: %v", treeerr.ErrStore, err)
	}
	return nil
}

func (s *Sqlite) FetchLinks(ctx context.Context, threadID string) ([]model.Link, error) {
	rows, err := s.q.ListLinksByThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing links: %v", treeerr.ErrStore, err)
	}
	links := make([]model.Link, 0, len(rows))
	for _, r := range rows {
		links = append(links, model.Link{
			ID:                r.ID,
			ThreadID:          r.ThreadID,
			PreviousMessageID: r.PreviousMessageID,
			NextMessageID:     r.NextMessageID,
			CreatedAt:         r.CreatedAt,
		})
	}
	return links, nil
}

func (s *Sqlite) InsertSummary(ctx context.Context, content, startMessageID, endMessageID, embeddingFile string) (string, error) {
	id, err := s.generateUniqueID(ctx, s.q.CheckSummaryIDExists)
	if err != nil {
		return "", err
	}
	if err := s.q.InsertSummary(ctx, id, content, nullString(embeddingFile), startMessageID, endMessageID); err != nil {
		return "", fmt.Errorf("%w: inserting summary: %v", treeerr.ErrStore, err)
	}
	return id, nil
}

func (s *Sqlite) DeleteSummary(ctx context.Context, summaryID string) error {
	if err := s.q.DeleteSummary(ctx, summaryID); err != nil {
		return fmt.Errorf("%w: deleting summary: %v", treeerr.ErrStore, err)
	}
	return nil
}

func (s *Sqlite) FetchSummaries(ctx context.Context, threadID string) ([]model.Summary, error) {
	rows, err := s.q.ListSummariesByThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing summaries: %v", treeerr.ErrStore, err)
	}
	summaries := make([]model.Summary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, model.Summary{
			ID:             r.ID,
			Content:        r.Content,
			EmbeddingFile:  r.EmbeddingFile.String,
			StartMessageID: r.StartMessageID,
			EndMessageID:   r.EndMessageID,
			CreatedAt:      r.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *Sqlite) DeleteMessage(ctx context.Context, messageID string) error {
	if err := s.q.DeleteMessage(ctx, messageID); err != nil {
		return fmt.Errorf("%w: deleting message: %v", treeerr.ErrStore, err)
	}
	return nil
}

var _ Store = (*Sqlite)(nil)
