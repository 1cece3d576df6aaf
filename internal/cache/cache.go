package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Class selects which TTL governs an entry.
type Class int

const (
	// Short is for price series, which go stale within minutes.
	Short Class = iota
	// Long is for venue handles; venue metadata changes rarely.
	Long
)

type entry struct {
	value     any
	err       error
	fetchedAt time.Time
	class     Class
	elem      *list.Element
}

// Cache is a TTL + LRU cache that memoizes both successes and failures.
// Concurrent callers on the same key coalesce into a single producer run;
// every producer run that actually happens pays the shared minimum
// inter-fetch delay, so venue rate limits hold even when distinct keys are
// fetched in parallel.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	order    *list.List // front = most recently used
	capacity int
	ttl      [2]time.Duration
	group    singleflight.Group
	limiter  *rate.Limiter
}

// New creates a cache. capacity bounds the number of entries; minFetchDelay
// is the spacing enforced between real producer invocations.
func New(shortTTL, longTTL time.Duration, capacity int, minFetchDelay time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 64
	}
	limit := rate.Inf
	if minFetchDelay > 0 {
		limit = rate.Every(minFetchDelay)
	}
	return &Cache{
		entries:  make(map[string]*entry),
		order:    list.New(),
		capacity: capacity,
		ttl:      [2]time.Duration{Short: shortTTL, Long: longTTL},
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// GetOrFetch returns the cached outcome for key, invoking producer only on a
// miss or after the class TTL has elapsed. A producer failure is stored like
// a success and served for the remainder of the TTL window, so a failing
// venue is not hammered on every access.
func (c *Cache) GetOrFetch(key string, class Class, producer func() (any, error)) (any, error) {
	if v, err, ok := c.lookup(key); ok {
		return v, err
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A coalesced caller may arrive just after the winner stored the
		// entry; serve that instead of fetching twice.
		if v, err, ok := c.lookup(key); ok {
			return v, err
		}
		c.limiter.Wait(context.Background())
		v, err := producer()
		c.store(key, class, v, err)
		return v, err
	})
	return v, err
}

// Clear drops every entry. The next access re-fetches.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.order.Init()
}

// Len reports the current number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (any, error, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, nil, false
	}
	if time.Since(e.fetchedAt) >= c.ttl[e.class] {
		// Expired: treated as a miss, refreshed synchronously by the caller.
		return nil, nil, false
	}
	c.order.MoveToFront(e.elem)
	return e.value, e.err, true
}

func (c *Cache) store(key string, class Class, value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.value, e.err, e.fetchedAt, e.class = value, err, time.Now(), class
		c.order.MoveToFront(e.elem)
		return
	}
	e := &entry{value: value, err: err, fetchedAt: time.Now(), class: class}
	e.elem = c.order.PushFront(key)
	c.entries[key] = e
	for len(c.entries) > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(string))
	}
}
