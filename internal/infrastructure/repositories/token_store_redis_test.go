package repositories

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func newTestTokenStore(t *testing.T) (*TokenStoreRedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewTokenStoreRedisRepository(client, logger), mr
}

func TestTokenStoreGet(t *testing.T) {
	store, mr := newTestTokenStore(t)

	record := `{"email":"a@b.com","fiscal_code":"SPNDNL80A13Y555X","invalid_after":"2030-01-01T00:00:00Z"}`
	mr.Set("app:validation_token:01DPT9QAZ6N0FJX21A86FRCWB3:026c47ead971b9af13353f5d5e563982ebca542f8df3246bdaf1f86e16075072", record)

	b, found, err := store.Get(context.Background(), "01DPT9QAZ6N0FJX21A86FRCWB3", "026c47ead971b9af13353f5d5e563982ebca542f8df3246bdaf1f86e16075072")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}
	if string(b) != record {
		t.Fatalf("unexpected record: %s", b)
	}
}

func TestTokenStoreGet_NotFound(t *testing.T) {
	store, _ := newTestTokenStore(t)

	_, found, err := store.Get(context.Background(), "01DPT9QAZ6N0FJX21A86FRCWB3", "deadbeef")
	if err != nil {
		t.Fatalf("not found must not be an error, got: %v", err)
	}
	if found {
		t.Fatal("expected record to be absent")
	}
}

func TestTokenStoreGet_BackendError(t *testing.T) {
	store, mr := newTestTokenStore(t)
	mr.Close()

	_, found, err := store.Get(context.Background(), "01DPT9QAZ6N0FJX21A86FRCWB3", "deadbeef")
	if err == nil {
		t.Fatal("expected a backend error")
	}
	if found {
		t.Fatal("found must be false on error")
	}
}
