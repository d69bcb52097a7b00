/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package research

import "context"

// Hit is one search result. Empty fields render as placeholders.
type Hit struct {
	Title   string
	Snippet string
	URL     string
	Date    string
	Source  string
}

// Searcher runs queries against a search engine.
type Searcher interface {
	// Text returns at most limit general web results.
	Text(ctx context.Context, query string, limit int) ([]Hit, error)
	// News returns at most limit recent news articles.
	News(ctx context.Context, query string, limit int) ([]Hit, error)
}
