// Package querycache caches upstream reads per session. Keys are a resource
// name plus canonical parameters; writes invalidate by resource.
package querycache

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultFlightTimeout bounds a shared fetch that no caller can cancel.
const DefaultFlightTimeout = time.Minute

// Key identifies one cached read, e.g. {"customerList", "limit=10&page=1"}.
type Key struct {
	Resource string
	Params   string
}

// NewKey canonicalises params so that equal maps produce equal keys.
func NewKey(resource string, params map[string]string) Key {
	if len(params) == 0 {
		return Key{Resource: resource}
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return Key{Resource: resource, Params: strings.Join(parts, "&")}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + "?" + k.Params
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Result is a cache answer with the generation it was produced under.
type Result struct {
	Value      any
	Generation uint64
	Cached     bool
}

// Cache is safe for concurrent use.
type Cache struct {
	ttl           time.Duration
	flightTimeout time.Duration
	now           func() time.Time

	mu         sync.Mutex
	entries    map[Key]entry
	generation map[string]uint64
	issued     uint64
	group      singleflight.Group
}

// New returns a cache whose entries expire after ttl; ttl <= 0 disables
// reuse but keeps request collapsing.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:           ttl,
		flightTimeout: DefaultFlightTimeout,
		now:           time.Now,
		entries:       map[Key]entry{},
		generation:    map[string]uint64{},
	}
}

// SetFlightTimeout bounds one shared upstream call, retries included.
func (c *Cache) SetFlightTimeout(d time.Duration) {
	if d > 0 {
		c.flightTimeout = d
	}
}

// Fetch returns the fresh cached value for key or runs fn. Concurrent
// fetches of the same key share one call, which runs detached from the
// callers' cancellation; a caller whose ctx ends stops waiting without
// failing the others. A result fetched across an invalidation of its
// resource is returned but not stored.
//
// Every call is stamped with a sequence number taken when it is issued, so
// a consumer can drop a response that was overtaken by a later request.
func (c *Cache) Fetch(ctx context.Context, key Key, fn func(context.Context) (any, error)) (Result, error) {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	if e, ok := c.entries[key]; ok && c.ttl > 0 && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return Result{Value: e.value, Generation: seq, Cached: true}, nil
	}
	gen := c.generation[key.Resource]
	c.mu.Unlock()

	// the generation is part of the flight key so that a read issued after
	// an invalidation never joins a call that started before it
	flight := key.String() + "#" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(flight, func() (any, error) {
		// callers share the flight, so no single caller may cancel it
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout)
		defer cancel()
		val, err := fn(fctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation[key.Resource] == gen {
			c.entries[key] = entry{value: val, fetchedAt: c.now()}
		}
		return val, nil
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		return Result{Value: r.Val, Generation: seq}, nil
	}
}

// Invalidate drops every key of resource and bumps its generation.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Resource == resource {
			delete(c.entries, k)
		}
	}
	c.generation[resource]++
}

// InvalidateExact drops one key only.
func (c *Cache) InvalidateExact(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Peek returns the cached value regardless of age.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.value, ok
}

// Len is the number of cached keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Typed wraps Fetch for a known value type.
func Typed[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, uint64, error) {
	res, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, 0, err
	}
	v, _ := res.Value.(T)
	return v, res.Generation, nil
}
