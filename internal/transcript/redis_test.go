package transcript

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T, maxMessages int64) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, maxMessages)
}

func TestRedisAppendAndList(t *testing.T) {
	store := newTestRedisStore(t, 10)
	ctx := context.Background()

	if err := store.Append(ctx, "s1", Message{Role: "user", Body: "hello"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, "s1", Message{Role: "assistant", Body: "hi there"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	msgs, err := store.List(ctx, "s1", 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Body != "hello" || msgs[1].Body != "hi there" {
		t.Errorf("unexpected order: %+v", msgs)
	}
	if msgs[0].ID == "" || msgs[0].Timestamp.IsZero() {
		t.Error("append should stamp id and timestamp")
	}
}

func TestRedisTrimsToCap(t *testing.T) {
	store := newTestRedisStore(t, 3)
	ctx := context.Background()

	for _, body := range []string{"a", "b", "c", "d", "e"} {
		if err := store.Append(ctx, "s1", Message{Role: "user", Body: body}); err != nil {
			t.Fatalf("append %s: %v", body, err)
		}
	}

	msgs, err := store.List(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	if msgs[0].Body != "c" || msgs[2].Body != "e" {
		t.Errorf("expected oldest entries trimmed: %+v", msgs)
	}
}

func TestRedisSessionsIsolated(t *testing.T) {
	store := newTestRedisStore(t, 10)
	ctx := context.Background()

	_ = store.Append(ctx, "s1", Message{Role: "user", Body: "one"})
	_ = store.Append(ctx, "s2", Message{Role: "user", Body: "two"})

	msgs, err := store.List(ctx, "s2", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Body != "two" {
		t.Errorf("sessions leaked: %+v", msgs)
	}
}

func TestRedisRequiresSessionID(t *testing.T) {
	store := newTestRedisStore(t, 10)
	if err := store.Append(context.Background(), "", Message{Body: "x"}); err == nil {
		t.Error("expected error for empty session id")
	}
	if _, err := store.List(context.Background(), "", 10); err == nil {
		t.Error("expected error for empty session id")
	}
}

func TestInMemoryMirrorsRedisBehavior(t *testing.T) {
	store := NewInMemoryStore(3)
	ctx := context.Background()

	for _, body := range []string{"a", "b", "c", "d"} {
		_ = store.Append(ctx, "s1", Message{Role: "user", Body: body})
	}
	msgs, _ := store.List(ctx, "s1", 0)
	if len(msgs) != 3 || msgs[0].Body != "b" {
		t.Errorf("in-memory trim mismatch: %+v", msgs)
	}

	limited, _ := store.List(ctx, "s1", 2)
	if len(limited) != 2 || limited[0].Body != "c" {
		t.Errorf("limit mismatch: %+v", limited)
	}
}
