package repository

import (
	"context"
	"testing"

	"logisticshub-service/internal/domain/repository"
)

func TestMemoryKVStoreRoundTrip(t *testing.T) {
	store := NewMemoryKVStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", `[{"id":"1"}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	result, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if result.State != repository.ReadOk {
		t.Fatalf("expected ReadOk, got %v", result.State)
	}
	if result.Raw != `[{"id":"1"}]` {
		t.Errorf("round trip changed value: %s", result.Raw)
	}
}

func TestMemoryKVStoreAbsent(t *testing.T) {
	store := NewMemoryKVStore()

	result, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if result.State != repository.ReadAbsent {
		t.Fatalf("expected ReadAbsent, got %v", result.State)
	}
}

func TestMemoryKVStoreMalformed(t *testing.T) {
	store := NewMemoryKVStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", `{broken`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	result, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if result.State != repository.ReadMalformed {
		t.Fatalf("expected ReadMalformed, got %v", result.State)
	}
	if result.Raw != `{broken` {
		t.Errorf("raw value not preserved: %s", result.Raw)
	}
}

func TestNormalizeStoredValueUnwrapsDoubleEncoding(t *testing.T) {
	// a JSON string whose content is the real payload
	result := normalizeStoredValue(`"[1,2,3]"`)
	if result.State != repository.ReadOk {
		t.Fatalf("expected ReadOk, got %v", result.State)
	}
	if result.Raw != `[1,2,3]` {
		t.Errorf("payload not unwrapped: %s", result.Raw)
	}
}

func TestNormalizeStoredValueUnwrapsEnvelope(t *testing.T) {
	result := normalizeStoredValue(`{"value":"[1,2,3]"}`)
	if result.State != repository.ReadOk {
		t.Fatalf("expected ReadOk, got %v", result.State)
	}
	if result.Raw != `[1,2,3]` {
		t.Errorf("payload not unwrapped: %s", result.Raw)
	}

	// structured value field, no string wrapping
	result = normalizeStoredValue(`{"value":[1,2,3]}`)
	if result.State != repository.ReadOk {
		t.Fatalf("expected ReadOk, got %v", result.State)
	}
	if result.Raw != `[1,2,3]` {
		t.Errorf("payload not unwrapped: %s", result.Raw)
	}
}

func TestNormalizeStoredValueEmpty(t *testing.T) {
	result := normalizeStoredValue("   ")
	if result.State != repository.ReadAbsent {
		t.Fatalf("expected ReadAbsent for blank value, got %v", result.State)
	}
}
