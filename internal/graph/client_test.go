package graph

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memCache is an in-process Cache for tests.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := c.data[key]
	return data, ok
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) {
	c.data[key] = data
}

func newTestServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.Header.Get("token") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/calcChainLengthsFrom/Jean Paul":
			w.Write([]byte(`{"chainLengths":[
				{"links":0,"entities":["Jean Paul"]},
				{"links":1,"entities":["Alpha","Beta"]},
				{"links":2,"entities":["Gamma"]}
			]}`))
		case "/calcChainWithArticlesBetween/Alpha/Beta":
			w.Write([]byte(`{"articlesPerLink":[[{"id":"a1"}],[{"id":"a2"}]]}`))
		case "/calcChainWithArticlesBetween/Alpha/Gamma":
			w.Write([]byte(`{"articlesPerLink":[]}`))
		case "/biggestIsland":
			w.Write([]byte(`[["Alpha",10],["Beta",9]]`))
		case "/summary":
			w.Write([]byte(`{"times":{"intervalCoveredHrs":49.9}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDistancesFrom(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL, "secret", time.Second, testLogger())

	buckets, err := c.DistancesFrom(context.Background(), "Jean Paul")
	if err != nil {
		t.Fatalf("DistancesFrom: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	if buckets[1].Links != 1 || len(buckets[1].Entities) != 2 {
		t.Errorf("bucket 1 = %+v, want links 1 with 2 entities", buckets[1])
	}
}

func TestEvidenceBetween(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL, "secret", time.Second, testLogger())
	ctx := context.Background()

	// Only the first hop's articles matter for a directly linked pair.
	evidence, err := c.EvidenceBetween(ctx, "Alpha", "Beta")
	if err != nil {
		t.Fatalf("EvidenceBetween: %v", err)
	}
	if string(evidence) != `[{"id":"a1"}]` {
		t.Errorf("evidence = %s, want first hop's articles", evidence)
	}

	if _, err := c.EvidenceBetween(ctx, "Alpha", "Gamma"); err == nil {
		t.Error("expected an error when no articles connect the pair")
	}
}

func TestTopCandidates(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL, "secret", time.Second, testLogger())

	candidates, err := c.TopCandidates(context.Background())
	if err != nil {
		t.Fatalf("TopCandidates: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Name != "Alpha" || candidates[0].Connections != 10 {
		t.Errorf("candidates[0] = %+v, want Alpha with 10 connections", candidates[0])
	}
}

func TestSummary(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL, "secret", time.Second, testLogger())

	summary, err := c.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.CoverageHours != 49 {
		t.Errorf("coverageHours = %d, want 49", summary.CoverageHours)
	}
}

func TestBadTokenIsError(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL, "wrong", time.Second, testLogger())

	if _, err := c.TopCandidates(context.Background()); err == nil {
		t.Error("expected an error on a rejected token")
	}
}

func TestCacheSkipsServer(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	c := New(srv.URL, "secret", time.Second, testLogger(), WithCache(newMemCache(), time.Minute))
	ctx := context.Background()

	if _, err := c.TopCandidates(ctx); err != nil {
		t.Fatalf("first TopCandidates: %v", err)
	}
	if _, err := c.TopCandidates(ctx); err != nil {
		t.Fatalf("second TopCandidates: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1 (second call cached)", got)
	}

	// Evidence is never cached; two calls, two hits.
	hits.Store(0)
	if _, err := c.EvidenceBetween(ctx, "Alpha", "Beta"); err != nil {
		t.Fatalf("EvidenceBetween: %v", err)
	}
	if _, err := c.EvidenceBetween(ctx, "Alpha", "Beta"); err != nil {
		t.Fatalf("second EvidenceBetween: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2 (evidence is uncached)", got)
	}
}
