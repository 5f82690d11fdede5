package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewKeyIsCanonical(t *testing.T) {
	a := NewKey("customerList", map[string]string{"page": "1", "limit": "10"})
	b := NewKey("customerList", map[string]string{"limit": "10", "page": "1"})
	if a != b {
		t.Fatalf("keys differ: %v vs %v", a, b)
	}
	if a.String() != "customerList?limit=10&page=1" {
		t.Fatalf("unexpected key string %q", a.String())
	}
	if NewKey("staffList", nil).String() != "staffList" {
		t.Fatalf("empty params should render bare resource")
	}
}

func TestFetchReusesFreshEntries(t *testing.T) {
	c := New(time.Minute)
	clock := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	calls := 0
	fn := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}
	key := NewKey("depositList", nil)

	first, err := c.Fetch(context.Background(), key, fn)
	if err != nil || first.Cached || first.Value.(int) != 1 {
		t.Fatalf("first fetch: %+v %v", first, err)
	}
	second, _ := c.Fetch(context.Background(), key, fn)
	if !second.Cached || second.Value.(int) != 1 {
		t.Fatalf("second fetch should hit cache: %+v", second)
	}
	if second.Generation <= first.Generation {
		t.Fatalf("sequence should grow: %d then %d", first.Generation, second.Generation)
	}

	clock = clock.Add(2 * time.Minute)
	third, _ := c.Fetch(context.Background(), key, fn)
	if third.Cached || third.Value.(int) != 2 {
		t.Fatalf("expired entry should refetch: %+v", third)
	}
}

func TestInvalidateDropsResourceKeys(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()
	one := func(context.Context) (any, error) { return 1, nil }

	_, _ = c.Fetch(ctx, NewKey("customerList", map[string]string{"page": "1"}), one)
	_, _ = c.Fetch(ctx, NewKey("customerList", map[string]string{"page": "2"}), one)
	_, _ = c.Fetch(ctx, NewKey("staffList", nil), one)

	c.Invalidate("customerList")
	if c.Len() != 1 {
		t.Fatalf("expected only staffList to remain, have %d keys", c.Len())
	}
	if _, ok := c.Peek(NewKey("staffList", nil)); !ok {
		t.Fatalf("staffList should survive")
	}

	c.InvalidateExact(NewKey("staffList", nil))
	if c.Len() != 0 {
		t.Fatalf("exact invalidation left %d keys", c.Len())
	}
}

func TestFetchAcrossInvalidationIsNotStored(t *testing.T) {
	c := New(time.Minute)
	key := NewKey("transferList", nil)
	_, err := c.Fetch(context.Background(), key, func(context.Context) (any, error) {
		// a write lands while the read is in flight
		c.Invalidate("transferList")
		return "stale", nil
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, ok := c.Peek(key); ok {
		t.Fatalf("result fetched across an invalidation must not be cached")
	}
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	c := New(time.Minute)
	key := NewKey("estateList", nil)
	boom := errors.New("boom")
	if _, err := c.Fetch(context.Background(), key, func(context.Context) (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("error result was cached")
	}
}

func TestConcurrentFetchesCollapse(t *testing.T) {
	c := New(0)
	key := NewKey("consignmentList", nil)
	release := make(chan struct{})
	var calls int32

	fn := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "rows", nil
	}

	var wg sync.WaitGroup
	started := make(chan struct{}, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			if _, err := c.Fetch(context.Background(), key, fn); err != nil {
				t.Errorf("fetch: %v", err)
			}
		}()
	}
	for i := 0; i < 5; i++ {
		<-started
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n < 1 || n > 5 {
		t.Fatalf("unexpected call count %d", n)
	}
}

func TestTyped(t *testing.T) {
	c := New(time.Minute)
	v, seq, err := Typed(context.Background(), c, NewKey("me", nil), func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	if err != nil || len(v) != 1 || seq == 0 {
		t.Fatalf("typed fetch: %v %d %v", v, seq, err)
	}
}

func TestCancelledCallerDoesNotFailJoiners(t *testing.T) {
	c := New(time.Minute)
	key := NewKey("customerList", map[string]string{"page": "1"})
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	fn := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return "rows", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Fetch(firstCtx, key, fn)
		firstErr <- err
	}()
	<-started

	joined := make(chan struct{})
	var res Result
	var joinErr error
	go func() {
		defer close(joined)
		res, joinErr = c.Fetch(context.Background(), key, fn)
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller should stop waiting, got %v", err)
	}
	close(release)
	<-joined

	if joinErr != nil || res.Value != "rows" {
		t.Fatalf("joiner should get the shared result: %v %v", res.Value, joinErr)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected one shared call, got %d", n)
	}
	if _, ok := c.Peek(key); !ok {
		t.Fatalf("shared result should be cached")
	}
}

func TestFlightTimeoutBoundsDetachedCalls(t *testing.T) {
	c := New(time.Minute)
	c.SetFlightTimeout(10 * time.Millisecond)
	_, err := c.Fetch(context.Background(), NewKey("staffList", nil), func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
}
