/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discussions

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jomei/notionapi"
)

// Property names of the discussions database.
const (
	PropTopic       = "Topic"
	PropDate        = "Date"
	PropStatus      = "Status"
	PropType        = "Type"
	PropAgents      = "Agents Involved"
	PropKeyInsights = "Key Insights"
)

// maxAppendBlocks is the most children Notion accepts per append call.
const maxAppendBlocks = 100

// Notion is a Backend over one Notion database.
type Notion struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
}

var _ Backend = (*Notion)(nil)

// NotionOption configures the Notion client.
type NotionOption func(*notionOptions)

type notionOptions struct {
	httpClient *http.Client
}

// WithNotionHTTPClient sets the HTTP client used for API calls.
func WithNotionHTTPClient(c *http.Client) NotionOption {
	return func(o *notionOptions) { o.httpClient = c }
}

func newClient(token string, opts []NotionOption) *notionapi.Client {
	var o notionOptions
	for _, opt := range opts {
		opt(&o)
	}
	var copts []notionapi.ClientOption
	if o.httpClient != nil {
		copts = append(copts, notionapi.WithHTTPClient(o.httpClient))
	}
	return notionapi.NewClient(notionapi.Token(token), copts...)
}

// NewNotion returns a Backend writing to databaseID.
func NewNotion(token, databaseID string, opts ...NotionOption) *Notion {
	return &Notion{
		client:     newClient(token, opts),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// CreatePage implements Backend.
func (n *Notion) CreatePage(ctx context.Context, spec PageSpec) (Record, error) {
	agents := make([]notionapi.Option, 0, len(spec.Agents))
	for _, a := range spec.Agents {
		agents = append(agents, notionapi.Option{Name: a})
	}
	date := notionapi.Date(spec.Date)

	page, err := n.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: n.databaseID,
		},
		Properties: notionapi.Properties{
			PropTopic:  notionapi.TitleProperty{Title: richText(spec.Topic)},
			PropDate:   notionapi.DateProperty{Date: &notionapi.DateObject{Start: &date}},
			PropStatus: notionapi.SelectProperty{Select: notionapi.Option{Name: spec.Status}},
			PropType:   notionapi.SelectProperty{Select: notionapi.Option{Name: spec.Type}},
			PropAgents: notionapi.MultiSelectProperty{MultiSelect: agents},
		},
	})
	if err != nil {
		return Record{}, fmt.Errorf("creating page: %w", err)
	}
	return toRecord(page), nil
}

// AppendBlocks implements Backend. Blocks are sent in batches of at most
// maxAppendBlocks.
func (n *Notion) AppendBlocks(ctx context.Context, pageID string, blocks []Block) error {
	for start := 0; start < len(blocks); start += maxAppendBlocks {
		end := min(start+maxAppendBlocks, len(blocks))
		children := make([]notionapi.Block, 0, end-start)
		for _, b := range blocks[start:end] {
			children = append(children, toNotionBlock(b))
		}
		if _, err := n.client.Block.AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
			Children: children,
		}); err != nil {
			return fmt.Errorf("appending blocks: %w", err)
		}
	}
	return nil
}

// Query implements Backend.
func (n *Notion) Query(ctx context.Context, q Query) ([]Record, error) {
	req := &notionapi.DatabaseQueryRequest{PageSize: q.Limit}
	if q.TopicContains != "" {
		req.Filter = &notionapi.PropertyFilter{
			Property: PropTopic,
			RichText: &notionapi.TextFilterCondition{Contains: q.TopicContains},
		}
	}
	if q.NewestFirst {
		req.Sorts = []notionapi.SortObject{{
			Property:  PropDate,
			Direction: notionapi.SortOrderDESC,
		}}
	}

	resp, err := n.client.Database.Query(ctx, n.databaseID, req)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	recs := make([]Record, 0, len(resp.Results))
	for i := range resp.Results {
		recs = append(recs, toRecord(&resp.Results[i]))
	}
	return recs, nil
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}}
}

func toNotionBlock(b Block) notionapi.Block {
	switch b.Kind {
	case Heading1:
		return &notionapi.Heading1Block{
			BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeHeading1},
			Heading1:   notionapi.Heading{RichText: richText(b.Text)},
		}
	case Heading2:
		return &notionapi.Heading2Block{
			BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeHeading2},
			Heading2:   notionapi.Heading{RichText: richText(b.Text)},
		}
	case Heading3:
		return &notionapi.Heading3Block{
			BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeHeading3},
			Heading3:   notionapi.Heading{RichText: richText(b.Text)},
		}
	case Divider:
		return &notionapi.DividerBlock{
			BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeDivider},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeParagraph},
			Paragraph:  notionapi.Paragraph{RichText: richText(b.Text)},
		}
	}
}

func toRecord(p *notionapi.Page) Record {
	id := p.ID.String()
	rec := Record{
		ID:     id,
		URL:    p.URL,
		Topic:  "Untitled",
		Date:   "Unknown",
		Status: "Unknown",
	}
	if rec.URL == "" {
		rec.URL = "https://notion.so/" + strings.ReplaceAll(id, "-", "")
	}

	switch prop := p.Properties[PropTopic].(type) {
	case *notionapi.TitleProperty:
		rec.Topic = plainText(prop.Title, rec.Topic)
	case notionapi.TitleProperty:
		rec.Topic = plainText(prop.Title, rec.Topic)
	}
	switch prop := p.Properties[PropDate].(type) {
	case *notionapi.DateProperty:
		rec.Date = dateText(prop.Date, rec.Date)
	case notionapi.DateProperty:
		rec.Date = dateText(prop.Date, rec.Date)
	}
	switch prop := p.Properties[PropStatus].(type) {
	case *notionapi.SelectProperty:
		rec.Status = optionName(prop.Select, rec.Status)
	case notionapi.SelectProperty:
		rec.Status = optionName(prop.Select, rec.Status)
	}
	return rec
}

func plainText(rt []notionapi.RichText, fallback string) string {
	var sb strings.Builder
	for _, r := range rt {
		switch {
		case r.PlainText != "":
			sb.WriteString(r.PlainText)
		case r.Text != nil:
			sb.WriteString(r.Text.Content)
		}
	}
	if sb.Len() == 0 {
		return fallback
	}
	return sb.String()
}

func dateText(d *notionapi.DateObject, fallback string) string {
	if d == nil || d.Start == nil {
		return fallback
	}
	return time.Time(*d.Start).Format(time.DateOnly)
}

func optionName(o notionapi.Option, fallback string) string {
	if o.Name == "" {
		return fallback
	}
	return o.Name
}
