/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package research provides the web, news, market, technical and
// comprehensive research tools the think tank agents call.
//
// Each tool issues one search through a Searcher and renders the hits as
// numbered text. The result is a toolcall.Outcome, so Go callers can tell
// an empty search from a transport failure while the model still reads the
// rendered text. Tools never retry and never return an error.
package research
