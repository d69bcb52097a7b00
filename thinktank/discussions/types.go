/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discussions

import (
	"context"
	"time"
)

// Discussion is one completed run.
type Discussion struct {
	Topic string
	// Outputs holds each role's final text in pipeline order.
	Outputs    []RoleOutput
	Report     string
	Transcript string
}

// RoleOutput is the text one role produced.
type RoleOutput struct {
	Label   string
	Content string
}

// Record is a stored discussion as listed by the database.
type Record struct {
	ID     string
	URL    string
	Topic  string
	Date   string
	Status string
}

// BlockKind is the type of a page content block.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading1
	Heading2
	Heading3
	Divider
)

// Block is one page content block. Text is at most MaxTextLength runes.
type Block struct {
	Kind BlockKind
	Text string
}

// PageSpec describes the database row created for a discussion.
type PageSpec struct {
	Topic  string
	Date   time.Time
	Status string
	Type   string
	Agents []string
}

// Query selects records. An empty TopicContains matches everything.
type Query struct {
	TopicContains string
	NewestFirst   bool
	Limit         int
}

// Backend is the storage transport behind a Service.
type Backend interface {
	CreatePage(ctx context.Context, spec PageSpec) (Record, error)
	AppendBlocks(ctx context.Context, pageID string, blocks []Block) error
	Query(ctx context.Context, q Query) ([]Record, error)
}
