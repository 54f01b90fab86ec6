package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// disableProxies keeps fetch fallbacks off the real network during tests.
func disableProxies(t *testing.T) {
	t.Helper()
	old := proxyURLs
	proxyURLs = func(string) []string { return nil }
	t.Cleanup(func() { proxyURLs = old })
}

func TestFetchOverview_APIShape(t *testing.T) {
	disableProxies(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("league"); got != "vaal" {
			t.Errorf("league = %q, want vaal", got)
		}
		w.Write([]byte(`{"lines":[
			{"currencyTypeName":"Divine Orb","exaltedValue":180},
			{"currencyTypeName":"Exalted Orb","exaltedValue":1}
		]}`))
	}))
	defer srv.Close()

	old := OverviewURL
	OverviewURL = srv.URL
	defer func() { OverviewURL = old }()

	doc, err := FetchOverview(context.Background(), "vaal")
	if err != nil {
		t.Fatalf("FetchOverview failed: %v", err)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(doc.Lines))
	}
	if doc.Lines[0].Section != "currency" || doc.Lines[0].Name != "Divine Orb" {
		t.Errorf("first line = %+v", doc.Lines[0])
	}
	ix := BuildIndex(doc)
	if rate, ok := ix.SecondaryRate(); !ok || rate != 180 {
		t.Errorf("SecondaryRate = %v, %v; want 180", rate, ok)
	}
}

func TestFetchOverview_ScraperShape(t *testing.T) {
	disableProxies(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"updatedAt":"2026-08-01T00:00:00Z","base":"Exalted Orb","lines":[
			{"section":"currency","name":"Divine Orb","exaltedValue":175.5}
		]}`))
	}))
	defer srv.Close()

	old := OverviewURL
	OverviewURL = srv.URL
	defer func() { OverviewURL = old }()

	doc, err := FetchOverview(context.Background(), "vaal")
	if err != nil {
		t.Fatalf("FetchOverview failed: %v", err)
	}
	if doc.UpdatedAt != "2026-08-01T00:00:00Z" {
		t.Errorf("UpdatedAt = %q", doc.UpdatedAt)
	}
	if doc.League != "vaal" {
		t.Errorf("League = %q, want vaal (filled from request)", doc.League)
	}
	if len(doc.Lines) != 1 || doc.Lines[0].Name != "Divine Orb" {
		t.Fatalf("lines = %+v", doc.Lines)
	}
}

func TestFetchOverview_HTMLBlocked(t *testing.T) {
	disableProxies(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Access denied</body></html>"))
	}))
	defer srv.Close()

	old := OverviewURL
	OverviewURL = srv.URL
	defer func() { OverviewURL = old }()

	if _, err := FetchOverview(context.Background(), "vaal"); err == nil {
		t.Fatal("expected error for HTML response")
	}
}

func TestFetchOverview_HTTPError(t *testing.T) {
	disableProxies(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	old := OverviewURL
	OverviewURL = srv.URL
	defer func() { OverviewURL = old }()

	if _, err := FetchOverview(context.Background(), "vaal"); err == nil {
		t.Fatal("expected error for HTTP 403")
	}
}
