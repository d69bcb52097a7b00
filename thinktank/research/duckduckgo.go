/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/chainguard-dev/clog"
)

const (
	defaultHTMLEndpoint = "https://html.duckduckgo.com"
	defaultSiteEndpoint = "https://duckduckgo.com"
	userAgent           = "Mozilla/5.0 (compatible; thinktank/1.0)"
)

var vqdPattern = regexp.MustCompile(`vqd=["']?([0-9-]+)`)

// DuckDuckGo searches duckduckgo.com without an API key. Text results come
// from the HTML endpoint and news from news.js.
type DuckDuckGo struct {
	client   *http.Client
	htmlBase string
	siteBase string
	markdown *md.Converter
}

// DuckDuckGoOption configures a DuckDuckGo searcher.
type DuckDuckGoOption func(*DuckDuckGo)

// WithHTTPClient replaces the default client, which times out after 20s.
func WithHTTPClient(c *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) { d.client = c }
}

// WithEndpoints points the searcher at other hosts, such as a test server.
func WithEndpoints(htmlBase, siteBase string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.htmlBase = strings.TrimSuffix(htmlBase, "/")
		d.siteBase = strings.TrimSuffix(siteBase, "/")
	}
}

// NewDuckDuckGo returns a Searcher backed by DuckDuckGo.
func NewDuckDuckGo(opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		client:   &http.Client{Timeout: 20 * time.Second},
		htmlBase: defaultHTMLEndpoint,
		siteBase: defaultSiteEndpoint,
		markdown: md.NewConverter("", true, nil),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ Searcher = (*DuckDuckGo)(nil)

// Text implements Searcher.
func (d *DuckDuckGo) Text(ctx context.Context, query string, limit int) ([]Hit, error) {
	form := url.Values{"q": {query}, "b": {""}, "kl": {"wt-wt"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.htmlBase+"/html/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var hits []Hit
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find(".result__a").First()
		href, _ := link.Attr("href")
		hit := Hit{
			Title:   strings.TrimSpace(link.Text()),
			Snippet: strings.TrimSpace(s.Find(".result__snippet").Text()),
			URL:     resolveRedirect(href),
		}
		if hit.Title == "" && hit.URL == "" {
			return true
		}
		hits = append(hits, hit)
		return len(hits) < limit
	})
	clog.FromContext(ctx).With("query", query).With("hits", len(hits)).Debug("DuckDuckGo text search")
	return hits, nil
}

type newsResponse struct {
	Results []struct {
		Date    int64  `json:"date"`
		Title   string `json:"title"`
		Excerpt string `json:"excerpt"`
		URL     string `json:"url"`
		Source  string `json:"source"`
	} `json:"results"`
}

// News implements Searcher.
func (d *DuckDuckGo) News(ctx context.Context, query string, limit int) ([]Hit, error) {
	vqd, err := d.token(ctx, query)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"l":     {"wt-wt"},
		"o":     {"json"},
		"noamp": {"1"},
		"q":     {query},
		"vqd":   {vqd},
		"p":     {"-1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.siteBase+"/news.js?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := d.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding news results: %w", err)
	}

	hits := make([]Hit, 0, min(limit, len(body.Results)))
	for _, r := range body.Results {
		if len(hits) == limit {
			break
		}
		hit := Hit{
			Title:   r.Title,
			Snippet: d.plain(r.Excerpt),
			URL:     r.URL,
			Source:  r.Source,
		}
		if r.Date > 0 {
			hit.Date = time.Unix(r.Date, 0).UTC().Format(time.RFC3339)
		}
		hits = append(hits, hit)
	}
	clog.FromContext(ctx).With("query", query).With("hits", len(hits)).Debug("DuckDuckGo news search")
	return hits, nil
}

// token fetches the vqd value news.js requires for query.
func (d *DuckDuckGo) token(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.siteBase+"/?"+url.Values{"q": {query}}.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	resp, err := d.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading token page: %w", err)
	}
	m := vqdPattern.FindSubmatch(b)
	if m == nil {
		return "", errors.New("search token not found")
	}
	return string(m[1]), nil
}

func (d *DuckDuckGo) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return resp, nil
}

// plain renders an HTML excerpt as markdown, falling back to the raw text.
func (d *DuckDuckGo) plain(excerpt string) string {
	if excerpt == "" {
		return ""
	}
	out, err := d.markdown.ConvertString(excerpt)
	if err != nil {
		return excerpt
	}
	return strings.TrimSpace(out)
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= click-through links.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
