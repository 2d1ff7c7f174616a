package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sagan-labs/treecache/internal/model"
	"github.com/sagan-labs/treecache/internal/treeerr"
)

// MemStore is an in-memory Store implementation for tests. It is a drop-in
// replacement for Sqlite that requires no database driver.
type MemStore struct {
	mu        sync.Mutex
	threads   map[string]model.Thread
	messages  map[string]model.Message
	links     map[string]model.Link
	summaries map[string]model.Summary
	nextID    int
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		threads:   make(map[string]model.Thread),
		messages:  make(map[string]model.Message),
		links:     make(map[string]model.Link),
		summaries: make(map[string]model.Summary),
	}
}

func (m *MemStore) genID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s_%d", prefix, m.nextID)
}

func (m *MemStore) InsertThread(ctx context.Context, prompt, topic string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.genID("thread")
	m.threads[id] = model.Thread{ID: id, Prompt: prompt, Topic: topic, CreatedAt: time.Now()}
	return id, nil
}

func (m *MemStore) FetchThreads(ctx context.Context) ([]model.Thread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Thread, 0, len(m.threads))
	for _, t := range m.threads {
		out = append(out, t)
	}
	return out, nil
}

func (m *MemStore) InsertMessage(ctx context.Context, threadID, content string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.genID("msg")
	m.messages[id] = model.Message{ID: id, ThreadID: threadID, Content: content, CreatedAt: time.Now()}
	return id, nil
}

func (m *MemStore) FetchMessages(ctx context.Context, threadID string) ([]model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Message
	for _, msg := range m.messages {
		if msg.ThreadID == threadID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *MemStore) FetchMessage(ctx context.Context, messageID string) (model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[messageID]
	if !ok {
		return model.Message{}, fmt.Errorf("%w: message %s", treeerr.ErrNotFound, messageID)
	}
	return msg, nil
}

func (m *MemStore) InsertLink(ctx context.Context, threadID, prevMessageID, nextMessageID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.genID("link")
	m.links[id] = model.Link{
		ID:                id,
		ThreadID:          threadID,
		PreviousMessageID: prevMessageID,
		NextMessageID:     nextMessageID,
		CreatedAt:         time.Now(),
	}
	return id, nil
}

func (m *MemStore) DeleteLink(ctx context.Context, prevMessageID, nextMessageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.links {
		if l.PreviousMessageID == prevMessageID && l.NextMessageID == nextMessageID {
			delete(m.links, id)
		}
	}
	return nil
}

func (m *MemStore) FetchLinks(ctx context.Context, threadID string) ([]model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Link
	for _, l := range m.links {
		if l.ThreadID == threadID {
			out = append(out, l)
		}
	}
	// Oldest first, like Sqlite's ORDER BY created_at, so a loaded
	// MessageTree keeps each node's children in insertion order.
	slices.SortStableFunc(out, func(a, b model.Link) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (m *MemStore) InsertSummary(ctx context.Context, content, startMessageID, endMessageID, embeddingFile string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.genID("sum")
	m.summaries[id] = model.Summary{
		ID:             id,
		Content:        content,
		EmbeddingFile:  embeddingFile,
		StartMessageID: startMessageID,
		EndMessageID:   endMessageID,
		CreatedAt:      time.Now(),
	}
	return id, nil
}

func (m *MemStore) DeleteSummary(ctx context.Context, summaryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.summaries, summaryID)
	return nil
}

func (m *MemStore) FetchSummaries(ctx context.Context, threadID string) ([]model.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	threadMsgs := make(map[string]bool)
	for _, msg := range m.messages {
		if msg.ThreadID == threadID {
			threadMsgs[msg.ID] = true
		}
	}
	var out []model.Summary
	for _, s := range m.summaries {
		if threadMsgs[s.StartMessageID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemStore) DeleteMessage(ctx context.Context, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.messages, messageID)
	return nil
}

var _ Store = (*MemStore)(nil)
