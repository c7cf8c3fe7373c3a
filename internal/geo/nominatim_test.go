package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client := NewClient("test@example.com", logger)
	client.baseURL = server.URL
	return client
}

func TestRelevantFiltering(t *testing.T) {
	tests := []struct {
		name       string
		class      string
		importance float64
		accepted   bool
	}{
		{"allow-listed class above floor", "shop", 0.5, true},
		{"allow-listed class below floor", "shop", 0.1, false},
		{"class outside allow-list", "railway", 0.9, false},
		{"tourism landmark", "tourism", 0.7, true},
		{"importance exactly at floor", "place", 0.3, true},
		{"missing importance", "place", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Place{Class: tt.class, Importance: tt.importance}
			if got := relevant(p); got != tt.accepted {
				t.Errorf("relevant(%s, %v) = %v, expected %v", tt.class, tt.importance, got, tt.accepted)
			}
		})
	}
}

func TestLookupAcceptsRelevantPlace(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "1" || q.Get("addressdetails") != "1" || q.Get("extratags") != "1" {
			t.Errorf("unexpected query parameters: %v", q)
		}
		if r.Header.Get("User-Agent") != "minisearch/1.0 (contact: test@example.com)" {
			t.Errorf("unexpected User-Agent: %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`[{
			"display_name": "Eiffel Tower, Paris, France",
			"lat": "48.8582599",
			"lon": "2.2945006",
			"class": "tourism",
			"type": "attraction",
			"importance": 0.76,
			"address": {"road": "Avenue Gustave Eiffel", "postcode": "75007", "city": "Paris", "country": "France"},
			"extratags": {"opening_hours": "09:30-23:45"}
		}]`))
	})

	place, ok := client.Lookup(context.Background(), "Eiffel Tower")
	if !ok {
		t.Fatal("expected a place")
	}
	if place.DisplayName != "Eiffel Tower, Paris, France" {
		t.Errorf("unexpected display name: %q", place.DisplayName)
	}
	if place.Lat != "48.8582599" || place.Lon != "2.2945006" {
		t.Errorf("coordinates must stay provider strings: %q %q", place.Lat, place.Lon)
	}
	if place.ExtraTags["opening_hours"] != "09:30-23:45" {
		t.Errorf("unexpected extratags: %v", place.ExtraTags)
	}
}

func TestLookupRejectsIrrelevantPlace(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"display_name": "Some rail line", "class": "railway", "importance": 0.9}]`))
	})

	if _, ok := client.Lookup(context.Background(), "rail line"); ok {
		t.Error("expected non-allow-listed class to be rejected")
	}
}

func TestLookupEmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	if _, ok := client.Lookup(context.Background(), "albert einstein"); ok {
		t.Error("expected no place for an empty candidate list")
	}
}

func TestLookupSwallowsFailures(t *testing.T) {
	t.Run("error status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		if _, ok := client.Lookup(context.Background(), "q"); ok {
			t.Error("expected absent on error status")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})
		if _, ok := client.Lookup(context.Background(), "q"); ok {
			t.Error("expected absent on parse failure")
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		client := NewClient("test@example.com", logger)
		client.baseURL = "http://127.0.0.1:1"
		if _, ok := client.Lookup(context.Background(), "q"); ok {
			t.Error("expected absent on transport failure")
		}
	})
}
