package history

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryLookupReturnsMostRecent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_ = store.Append(ctx, ClientRecord{Email: "asha@example.com", Service: "Manicure", Phone: "1112223334"})
	_ = store.Append(ctx, ClientRecord{Email: "other@example.com", Service: "Pedicure"})
	_ = store.Append(ctx, ClientRecord{Email: "Asha@Example.com", Service: "Hair Spa", Phone: "9876543210"})

	rec, err := store.Lookup(ctx, "ASHA@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Service != "Hair Spa" || rec.Phone != "9876543210" {
		t.Errorf("expected most recent record, got %+v", rec)
	}
}

func TestInMemoryLookupMissing(t *testing.T) {
	store := NewInMemoryStore()
	if _, err := store.Lookup(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInMemoryAppendSetsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	_ = store.Append(context.Background(), ClientRecord{Email: "a@b.c"})
	rec, err := store.Lookup(context.Background(), "a@b.c")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Timestamp.IsZero() {
		t.Error("timestamp should default to now")
	}
	if store.Len() != 1 {
		t.Errorf("len = %d", store.Len())
	}
}
