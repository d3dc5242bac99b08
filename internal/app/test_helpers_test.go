package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/example/missionctl/internal/adapters/memory"
	"github.com/example/missionctl/internal/adapters/persistence"
	"github.com/example/missionctl/internal/ctxutil"
)

// ============================================================================
// Test Doubles
// ============================================================================

var errStorage = errors.New("storage unavailable")

// faultyStore wraps the in-memory store and fails on demand.
type faultyStore struct {
	*memory.KVStore

	mu         sync.Mutex
	failGet    bool
	failSet    bool
	failDelete bool
	sets       int
}

func newFaultyStore() *faultyStore {
	return &faultyStore{KVStore: memory.NewKVStore()}
}

func (f *faultyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, false, errStorage
	}
	return f.KVStore.Get(ctx, key)
}

func (f *faultyStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failSet
	f.sets++
	f.mu.Unlock()
	if fail {
		return errStorage
	}
	return f.KVStore.Set(ctx, key, value)
}

func (f *faultyStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failDelete
	f.mu.Unlock()
	if fail {
		return errStorage
	}
	return f.KVStore.Delete(ctx, key)
}

func (f *faultyStore) setFailures(get, set, del bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet, f.failSet, f.failDelete = get, set, del
}

func (f *faultyStore) raw(t *testing.T, key string) string {
	t.Helper()
	value, _, err := f.KVStore.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("raw read of %s failed: %v", key, err)
	}
	return string(value)
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequentialIDs returns an ID generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// testFixture bundles a store, repository and env that share one clock.
type testFixture struct {
	store *faultyStore
	repo  *persistence.StateRepository
	clock *fakeClock
	env   Env
}

func newFixture() *testFixture {
	store := newFaultyStore()
	clock := newFakeClock()
	return &testFixture{
		store: store,
		repo:  persistence.NewStateRepository(store),
		clock: clock,
		env:   Env{Now: clock.Now, NewID: sequentialIDs("id")},
	}
}

func adminCtx() context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{Username: "admin", Role: "admin"})
}

func operatorCtx() context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{Username: "operator", Role: "operator"})
}
