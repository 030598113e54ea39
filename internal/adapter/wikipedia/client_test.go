package wikipedia

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hollandm/webscout/internal/config"
	"github.com/hollandm/webscout/internal/domain/provider"
	"github.com/hollandm/webscout/internal/resilience"
)

func testClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	return New(
		config.Wikipedia{Language: "en", Endpoint: endpoint},
		2*time.Second,
		resilience.NewRetryPolicy(resilience.RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond}),
		resilience.NewBreaker(10, time.Minute),
		slog.New(slog.DiscardHandler),
	)
}

func TestSearchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("list") != "search" {
			t.Errorf("expected list=search, got %q", r.URL.Query().Get("list"))
		}
		if r.URL.Query().Get("srsearch") != "capybara" {
			t.Errorf("unexpected srsearch %q", r.URL.Query().Get("srsearch"))
		}
		w.Write([]byte(`{"query":{"search":[
			{"title":"Capybara","snippet":"The <span class=\"searchmatch\">capybara</span> is a rodent","pageid":4937,"wordcount":4200},
			{"title":"Lesser capybara","snippet":"A smaller relative","pageid":9999,"wordcount":800}
		]}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	res, err := testClient(t, srv.URL).Search(context.Background(), "capybara", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(res.Hits))
	}
	if res.Hits[0].Snippet != "The capybara is a rodent" {
		t.Errorf("snippet markup not stripped: %q", res.Hits[0].Snippet)
	}
	if res.Hits[0].PageID != 4937 {
		t.Errorf("unexpected page id %d", res.Hits[0].PageID)
	}
}

func TestSearchNoMatches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"query":{"search":[]}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Search(context.Background(), "qwxzvbn", 5)
	if provider.KindOf(err) != provider.KindLogical {
		t.Fatalf("expected Logical for zero matches, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("no-match answers must not be retried, got %d calls", calls.Load())
	}
}

func TestSummaryPassesSentenceBound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("exsentences") != "3" {
			t.Errorf("expected exsentences=3, got %q", r.URL.Query().Get("exsentences"))
		}
		if r.URL.Query().Get("explaintext") != "1" {
			t.Error("expected explaintext=1")
		}
		w.Write([]byte(`{"query":{"pages":{"4937":{"pageid":4937,"title":"Capybara","extract":"The capybara is the largest living rodent."}}}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	art, err := testClient(t, srv.URL).Summary(context.Background(), "Capybara", 3)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if art.Title != "Capybara" || art.PageID != 4937 {
		t.Errorf("unexpected article: %+v", art)
	}
	if art.Language != "en" {
		t.Errorf("expected language en, got %q", art.Language)
	}
}

func TestArticleOmitsSentenceBound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("exsentences") {
			t.Error("full article request must not bound sentences")
		}
		w.Write([]byte(`{"query":{"pages":{"4937":{"pageid":4937,"title":"Capybara","extract":"Full text."}}}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	art, err := testClient(t, srv.URL).Article(context.Background(), "Capybara")
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if art.Extract != "Full text." {
		t.Errorf("unexpected extract %q", art.Extract)
	}
}

func TestArticleMissingPage(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"query":{"pages":{"-1":{"ns":0,"title":"Nope","missing":""}}}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Article(context.Background(), "Nope")
	if provider.KindOf(err) != provider.KindLogical {
		t.Fatalf("expected Logical for missing page, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("missing pages must not be retried, got %d calls", calls.Load())
	}
}

func TestTransientRetriedThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"query":{"pages":{"1":{"pageid":1,"title":"T","extract":"x"}}}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	if _, err := testClient(t, srv.URL).Article(context.Background(), "T"); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>not json</html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Article(context.Background(), "T")
	if provider.KindOf(err) != provider.KindMalformed {
		t.Fatalf("expected Malformed, got %v", err)
	}
}

func TestDerivedEndpoint(t *testing.T) {
	c := New(
		config.Wikipedia{Language: "de"},
		time.Second,
		resilience.NewRetryPolicy(resilience.RetryPolicy{}),
		resilience.NewBreaker(5, time.Minute),
		slog.New(slog.DiscardHandler),
	)
	if c.endpoint != "https://de.wikipedia.org/w/api.php" {
		t.Errorf("unexpected endpoint %q", c.endpoint)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{`a <span class="searchmatch">match</span> here`, "a match here"},
		{"<b>bold</b> and <i>italic</i>", "bold and italic"},
	}
	for _, tt := range tests {
		if got := stripTags(tt.in); got != tt.want {
			t.Errorf("stripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
