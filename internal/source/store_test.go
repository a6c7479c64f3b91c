package source

import (
	"context"
	"os"
	"testing"
	"time"

	"dashboard/internal/domain/models"
)

// Set DASHBOARD_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run against a live server.
func TestRedisStoreRoundTrip(t *testing.T) {
	url := os.Getenv("DASHBOARD_TEST_REDIS_URL")
	if url == "" {
		t.Skip("DASHBOARD_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	client, err := NewRedisClient(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer client.Close()

	store := NewRedisStore(client, "dashboard-test:"+t.Name()+":")
	defer client.Del(ctx, store.key)

	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	in := StoredSnapshot{
		Records:   []models.User{{ID: 1, Name: "Leanne Graham", Company: &models.Company{Name: "Romaguera-Crona"}}},
		FetchedAt: at,
	}
	if err := store.Save(ctx, in, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if !out.FetchedAt.Equal(at) || len(out.Records) != 1 || out.Records[0].CompanyName() != "Romaguera-Crona" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestNewRedisClientBadURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not-a-url"); err == nil {
		t.Fatalf("expected parse error")
	}
}
