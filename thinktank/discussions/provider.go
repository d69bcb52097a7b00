/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discussions

import (
	"context"
	"fmt"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tool names offered by Provider.
const (
	StoreDiscussion   = "store_think_tank_discussion"
	SearchDiscussions = "search_think_tank_discussions"
	GetHistory        = "get_discussion_history"
)

var opCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "thinktank_discussion_calls_total",
		Help: "Discussion store tool invocations by tool and outcome kind",
	},
	[]string{"tool", "kind"},
)

type provider[Resp any] struct{}

// NewProvider exposes the discussion store as agent tools. Each run's
// Session is supplied as the callbacks value.
func NewProvider[Resp any]() toolcall.ToolProvider[Resp, *Session] {
	return provider[Resp]{}
}

func (provider[Resp]) Tools(s *Session) map[string]toolcall.Tool[Resp] {
	return map[string]toolcall.Tool[Resp]{
		StoreDiscussion: {
			Def: toolcall.Definition{
				Name: StoreDiscussion,
				Description: "Store this think tank discussion in the Notion database so future sessions can reference it. " +
					"The completed run, with every perspective and the full transcript, is stored once the final report is submitted.",
				Parameters: []toolcall.Parameter{{
					Name:        "topic",
					Type:        "string",
					Description: "The discussion topic",
					Required:    true,
				}},
			},
			Handler: func(ctx context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[Resp], _ *Resp) map[string]any {
				topic, errResp := toolcall.Param[string](call, trace, "topic")
				if errResp != nil {
					return errResp
				}
				return record(trace, call, func() toolcall.Outcome { return s.Request(ctx, topic) })
			},
		},
		SearchDiscussions: {
			Def: toolcall.Definition{
				Name:        SearchDiscussions,
				Description: "Search previous think tank discussions by topic",
				Parameters: []toolcall.Parameter{{
					Name:        "search_query",
					Type:        "string",
					Description: "Text to look for in discussion topics",
					Required:    true,
				}},
			},
			Handler: func(ctx context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[Resp], _ *Resp) map[string]any {
				query, errResp := toolcall.Param[string](call, trace, "search_query")
				if errResp != nil {
					return errResp
				}
				return record(trace, call, func() toolcall.Outcome { return s.Search(ctx, query) })
			},
		},
		GetHistory: {
			Def: toolcall.Definition{
				Name:        GetHistory,
				Description: "Get the most recent think tank discussions",
				Parameters: []toolcall.Parameter{{
					Name:        "limit",
					Type:        "integer",
					Description: fmt.Sprintf("Number of discussions to return (default %d)", DefaultHistoryLimit),
				}},
			},
			Handler: func(ctx context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[Resp], _ *Resp) map[string]any {
				limit, errResp := toolcall.OptionalParam(call, "limit", DefaultHistoryLimit)
				if errResp != nil {
					return errResp
				}
				return record(trace, call, func() toolcall.Outcome { return s.History(ctx, limit) })
			},
		},
	}
}

func record[Resp any](trace *agenttrace.Trace[Resp], call toolcall.ToolCall, run func() toolcall.Outcome) map[string]any {
	tc := trace.StartToolCall(call.ID, call.Name, call.Args)
	o := run()
	tc.Complete(o.Text, o.Err)
	opCounter.WithLabelValues(call.Name, o.Kind.String()).Inc()
	return o.Response()
}
