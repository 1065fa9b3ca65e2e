package tenant

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultCacheSize is the default maximum number of cached tenants.
const DefaultCacheSize = 1000

// CachedStore is a read-through cache in front of another Store. Only found
// tenants are cached; inactive ones are cached too so FindActiveBySlug can
// answer ErrInactiveTenant without a round trip.
type CachedStore struct {
	next Store
	opts cacheOptions

	mu     sync.Mutex
	items  map[string]*list.Element
	lru    *list.List // front = most recently used
	closed bool

	stop chan struct{}
	done chan struct{}
}

type cacheEntry struct {
	slug      string
	tenant    Tenant
	expiresAt time.Time
}

// NewCachedStore wraps next with an in-memory TTL and LRU cache.
func NewCachedStore(next Store, opts ...CacheOption) *CachedStore {
	o := cacheOptions{
		ttl:             5 * time.Minute,
		maxSize:         DefaultCacheSize,
		cleanupInterval: time.Minute,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &CachedStore{
		next:  next,
		opts:  o,
		items: make(map[string]*list.Element),
		lru:   list.New(),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go c.cleanup()
	} else {
		close(c.done)
	}
	return c
}

// FindBySlug implements Store.
func (c *CachedStore) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	if t, ok := c.get(slug); ok {
		return t, nil
	}

	t, err := c.next.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.set(slug, t)

	cp := *t
	return &cp, nil
}

// FindActiveBySlug implements Store on top of the cached FindBySlug.
func (c *CachedStore) FindActiveBySlug(ctx context.Context, slug string) (*Tenant, error) {
	t, err := c.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, ErrInactiveTenant
	}
	return t, nil
}

// Invalidate drops a slug so the next lookup hits the underlying store.
func (c *CachedStore) Invalidate(_ context.Context, slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[slug]; ok {
		c.remove(el)
	}
}

// Len returns the number of cached entries.
func (c *CachedStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *CachedStore) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if c.opts.cleanupInterval > 0 {
		close(c.stop)
	}
	<-c.done
	return nil
}

func (c *CachedStore) get(slug string) (*Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[slug]
	if !ok {
		return nil, false
	}
	e := el.Value.(*cacheEntry)
	if !c.opts.now().Before(e.expiresAt) {
		c.remove(el)
		return nil, false
	}
	c.lru.MoveToFront(el)

	t := e.tenant
	return &t, true
}

func (c *CachedStore) set(slug string, t *Tenant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exp := c.opts.now().Add(c.opts.ttl)
	if el, ok := c.items[slug]; ok {
		e := el.Value.(*cacheEntry)
		e.tenant, e.expiresAt = *t, exp
		c.lru.MoveToFront(el)
		return
	}

	if c.lru.Len() >= c.opts.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
	c.items[slug] = c.lru.PushFront(&cacheEntry{slug: slug, tenant: *t, expiresAt: exp})
}

func (c *CachedStore) remove(el *list.Element) {
	c.lru.Remove(el)
	delete(c.items, el.Value.(*cacheEntry).slug)
}

func (c *CachedStore) purgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.now()
	n := 0
	for el := c.lru.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*cacheEntry).expiresAt) {
			c.remove(el)
			n++
		}
		el = prev
	}
	return n
}

func (c *CachedStore) cleanup() {
	ticker := time.NewTicker(c.opts.cleanupInterval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.purgeExpired()
		case <-c.stop:
			return
		}
	}
}
