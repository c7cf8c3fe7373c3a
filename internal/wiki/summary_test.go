package wiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client := NewClient(logger)
	client.baseURL = server.URL
	return client
}

func TestShortenExtract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		expected string
	}{
		{
			"five sentences cut to three",
			"One is first. Two follows! Three is third? Four comes next. Five ends it.",
			3,
			"One is first. Two follows! Three is third?",
		},
		{
			"fewer sentences than the limit",
			"Only one. And two.",
			3,
			"Only one. And two.",
		},
		{
			"abbreviation dots without whitespace are kept",
			"Einstein (b. 1879) was a physicist. He developed relativity. It changed physics. More follows here.",
			2,
			"Einstein (b. 1879) was a physicist. He developed relativity.",
		},
		{
			"newline as sentence separator",
			"First line.\nSecond line. Third line.",
			2,
			"First line.\nSecond line.",
		},
		{
			"empty text",
			"",
			3,
			"",
		},
		{
			"zero sentences requested",
			"Anything at all.",
			0,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortenExtract(tt.text, tt.max); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSummaryFetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/rest_v1/page/summary/Albert_Einstein") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"title": "Albert Einstein",
			"extract": "Albert Einstein was a theoretical physicist.",
			"thumbnail": {"source": "https://upload.wikimedia.org/einstein.jpg"}
		}`))
	})

	summary, ok := client.Summary(context.Background(), "en", "Albert_Einstein")
	if !ok {
		t.Fatal("expected a summary")
	}
	if summary.Title != "Albert Einstein" {
		t.Errorf("unexpected title: %q", summary.Title)
	}
	if summary.Thumbnail == nil || summary.Thumbnail.Source != "https://upload.wikimedia.org/einstein.jpg" {
		t.Errorf("unexpected thumbnail: %+v", summary.Thumbnail)
	}
}

func TestSummaryEscapesTitle(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"title": "C/2023 A3"}`))
	})

	if _, ok := client.Summary(context.Background(), "en", "C/2023 A3"); !ok {
		t.Fatal("expected a summary")
	}
	if !strings.HasSuffix(gotPath, "/C%2F2023%20A3") {
		t.Errorf("expected escaped title in path, got %s", gotPath)
	}
}

func TestSummaryAbsentOnFailure(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		if _, ok := client.Summary(context.Background(), "en", "No_Such_Page"); ok {
			t.Error("expected absent on 404")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<!doctype html>`))
		})
		if _, ok := client.Summary(context.Background(), "en", "Page"); ok {
			t.Error("expected absent on parse failure")
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		client := NewClient(logger)
		client.baseURL = "http://127.0.0.1:1"
		if _, ok := client.Summary(context.Background(), "en", "Page"); ok {
			t.Error("expected absent on transport failure")
		}
	})
}
