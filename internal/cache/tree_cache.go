// Package cache implements TreeCache: a bounded LRU of (MessageTree,
// SummaryTree) pairs keyed by thread id (spec.md §4.3).
package cache

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/sagan-labs/treecache/internal/store"
	"github.com/sagan-labs/treecache/internal/tree"
)

// Entry is the cached (MessageTree, SummaryTree) pair for one thread.
type Entry struct {
	MessageTree *tree.MessageTree
	SummaryTree *tree.SummaryTree
}

// TreeCache is a fixed-capacity, least-recently-used cache of Entry values,
// where "use" means Get. Capacity must be a positive integer (spec.md
// §4.3); it is fixed for the lifetime of the cache.
type TreeCache struct {
	store    store.Store
	capacity int
	logger   *slog.Logger

	mu      sync.Mutex
	order   *list.List // front = most-recently-used
	items   map[string]*list.Element
	sf      singleflight.Group

	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

type element struct {
	threadID string
	entry    *Entry
}

// New returns a TreeCache backed by s with the given capacity. It panics if
// capacity is not positive, since a zero-capacity cache can never hold
// anything it is asked to fetch and the spec treats that as a construction
// error, not a runtime one.
func New(s store.Store, capacity int, logger *slog.Logger) *TreeCache {
	if capacity <= 0 {
		panic("cache: capacity must be a positive integer")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TreeCache{
		store:    s,
		capacity: capacity,
		logger:   logger,
		order:    list.New(),
		items:    make(map[string]*list.Element),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "treecache_hits_total",
			Help: "Number of TreeCache.Get calls served from the resident set.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "treecache_misses_total",
			Help: "Number of TreeCache.Get calls that did not find a resident entry.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "treecache_evictions_total",
			Help: "Number of entries evicted to stay within capacity.",
		}),
	}
}

// Collectors returns the cache's prometheus metrics for registration.
func (c *TreeCache) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.hits, c.misses, c.evictions}
}

// Len reports the number of resident entries (<= capacity, invariant I5).
func (c *TreeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Get returns the cached pair for threadID, promoting it to most-recently-
// used. On a miss it constructs the pair from the store, evicting the
// least-recently-used entry first if the cache is full, and inserts the new
// pair as most-recently-used. Concurrent misses for the same threadID
// construct the pair at most once.
func (c *TreeCache) Get(ctx context.Context, threadID string) (*Entry, error) {
	c.mu.Lock()
	if el, ok := c.items[threadID]; ok {
		c.order.MoveToFront(el)
		entry := el.Value.(*element).entry
		c.mu.Unlock()
		c.hits.Inc()
		c.logger.Debug("tree cache hit", "thread_id", threadID)
		return entry, nil
	}
	c.mu.Unlock()

	c.misses.Inc()
	c.logger.Debug("tree cache miss", "thread_id", threadID)

	v, err, _ := c.sf.Do(threadID, func() (interface{}, error) {
		// Re-check: another goroutine may have populated the entry while
		// we waited to enter the singleflight group.
		c.mu.Lock()
		if el, ok := c.items[threadID]; ok {
			c.order.MoveToFront(el)
			entry := el.Value.(*element).entry
			c.mu.Unlock()
			return entry, nil
		}
		c.mu.Unlock()

		entry, err := c.build(ctx, threadID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.insertLocked(threadID, entry)
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

func (c *TreeCache) build(ctx context.Context, threadID string) (*Entry, error) {
	msgTree, err := tree.LoadMessageTree(ctx, c.store, threadID)
	if err != nil {
		return nil, fmt.Errorf("building cache entry for thread %s: %w", threadID, err)
	}
	sumTree, err := tree.LoadSummaryTree(ctx, c.store, msgTree)
	if err != nil {
		return nil, fmt.Errorf("building cache entry for thread %s: %w", threadID, err)
	}
	return &Entry{MessageTree: msgTree, SummaryTree: sumTree}, nil
}

// insertLocked must be called with c.mu held.
func (c *TreeCache) insertLocked(threadID string, entry *Entry) {
	if el, ok := c.items[threadID]; ok {
		el.Value.(*element).entry = entry
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			evicted := oldest.Value.(*element).threadID
			c.order.Remove(oldest)
			delete(c.items, evicted)
			c.evictions.Inc()
			c.logger.Debug("tree cache eviction", "thread_id", evicted)
		}
	}
	el := c.order.PushFront(&element{threadID: threadID, entry: entry})
	c.items[threadID] = el
}

// Invalidate drops threadID's entry if present. The next Get rebuilds it
// from the store.
func (c *TreeCache) Invalidate(threadID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[threadID]; ok {
		c.order.Remove(el)
		delete(c.items, threadID)
	}
}
