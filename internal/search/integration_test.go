package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tmarchal/minisearch/internal/cache"
	"github.com/tmarchal/minisearch/internal/counter"
)

func init() {
	envPath := filepath.Join("..", "..", ".env")
	_ = godotenv.Load(envPath)
}

func TestClient_LiveSearch(t *testing.T) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	cseID := os.Getenv("GOOGLE_CSE_ID")

	if apiKey == "" || cseID == "" {
		t.Skip("Skipping live search test: GOOGLE_API_KEY or GOOGLE_CSE_ID not set")
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	client := NewClient(apiKey, cseID, cache.New(time.Minute), counter.New(time.UTC), nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Search(ctx, "Albert Einstein", 1, 10, KindWeb)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(resp.Items) == 0 {
		t.Fatal("expected at least one result")
	}
	for _, item := range resp.Items {
		if item.Link == "" {
			t.Errorf("result %q has no link", item.Title)
		}
	}
}
