package memory

import (
	"context"
	"testing"
)

func TestKVStore_Contract(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	if _, ok, err := store.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}

	value := []byte("dark")
	if err := store.Set(ctx, "missionControl_theme", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'X'

	got, ok, err := store.Get(ctx, "missionControl_theme")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if string(got) != "dark" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}

	got[0] = 'Y'
	again, _, _ := store.Get(ctx, "missionControl_theme")
	if string(again) != "dark" {
		t.Errorf("returned value aliased stored slice: %q", again)
	}

	if err := store.Delete(ctx, "missionControl_theme"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d after delete, want 0", store.Len())
	}
}
