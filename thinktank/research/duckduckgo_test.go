/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const resultsPage = `<html><body>
<div class="result results_links result--ad">
  <a class="result__a" href="https://ads.example">Sponsored</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwater.example%2Fstills&amp;rut=x">Solar stills</a></h2>
  <a class="result__snippet">Passive <b>solar</b> purification.</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="https://direct.example/">Direct link</a></h2>
  <a class="result__snippet">Second</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="https://third.example/">Third</a></h2>
</div>
</body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /html/", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("q") == "" {
			http.Error(w, "missing query", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, resultsPage)
	})
	mux.HandleFunc("GET /news.js", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("vqd") != "4-1234" {
			http.Error(w, "bad token", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[
			{"date":1767312000,"title":"Purifier startup raises","excerpt":"<b>Series A</b> for solar","url":"https://news.example/a","source":"Example News"},
			{"date":0,"title":"Second","excerpt":"","url":"https://news.example/b"}
		]}`)
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<script>var x = {vqd="4-1234"};</script>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDuckDuckGoText(t *testing.T) {
	srv := newTestServer(t)
	ddg := NewDuckDuckGo(WithEndpoints(srv.URL, srv.URL), WithHTTPClient(srv.Client()))

	got, err := ddg.Text(context.Background(), "solar purifier", 2)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	want := []Hit{
		{Title: "Solar stills", Snippet: "Passive solar purification.", URL: "https://water.example/stills"},
		{Title: "Direct link", Snippet: "Second", URL: "https://direct.example/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Text() mismatch (-want +got):\n%s", diff)
	}
}

func TestDuckDuckGoNews(t *testing.T) {
	srv := newTestServer(t)
	ddg := NewDuckDuckGo(WithEndpoints(srv.URL, srv.URL), WithHTTPClient(srv.Client()))

	got, err := ddg.News(context.Background(), "solar purifier", 5)
	if err != nil {
		t.Fatalf("News() error = %v", err)
	}
	want := []Hit{{
		Title:   "Purifier startup raises",
		Snippet: "**Series A** for solar",
		URL:     "https://news.example/a",
		Date:    "2026-01-02T00:00:00Z",
		Source:  "Example News",
	}, {
		Title: "Second",
		URL:   "https://news.example/b",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("News() mismatch (-want +got):\n%s", diff)
	}
}

func TestDuckDuckGoStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	ddg := NewDuckDuckGo(WithEndpoints(srv.URL, srv.URL))

	if _, err := ddg.Text(context.Background(), "q", 5); err == nil {
		t.Error("Text(): got = nil, wanted status error")
	}
	if _, err := ddg.News(context.Background(), "q", 5); err == nil {
		t.Error("News(): got = nil, wanted status error")
	}

	// Tools surface it as a transport error rather than failing.
	if got := New(ddg).Web(context.Background(), "q", 5); !got.Failed() {
		t.Errorf("Web(): got = %v, wanted failure outcome", got.Kind)
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct{ in, want string }{
		{in: "", want: ""},
		{in: "https://plain.example/x", want: "https://plain.example/x"},
		{in: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fa.example", want: "https://a.example"},
	}
	for _, tt := range tests {
		if got := resolveRedirect(tt.in); got != tt.want {
			t.Errorf("resolveRedirect(%q): got = %q, wanted = %q", tt.in, got, tt.want)
		}
	}
}
