/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package research

import (
	"context"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tool names offered by Provider.
const (
	WebSearch             = "web_search"
	NewsSearch            = "news_search"
	MarketResearch        = "market_research"
	TechnicalResearch     = "technical_research"
	ComprehensiveResearch = "comprehensive_research"
)

var callCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "thinktank_research_calls_total",
		Help: "Research tool invocations by tool and outcome kind",
	},
	[]string{"tool", "kind"},
)

type provider[Resp, CB any] struct {
	tools *Tools
}

// NewProvider exposes t as agent tools. The callbacks value is unused, so
// the provider composes with any other via toolcall.Merge.
func NewProvider[Resp, CB any](t *Tools) toolcall.ToolProvider[Resp, CB] {
	return provider[Resp, CB]{tools: t}
}

var queryParam = toolcall.Parameter{
	Name:        "query",
	Type:        "string",
	Description: "The search query",
	Required:    true,
}

var maxResultsParam = toolcall.Parameter{
	Name:        "max_results",
	Type:        "integer",
	Description: "Maximum number of results to return (default 5)",
}

func (p provider[Resp, CB]) Tools(CB) map[string]toolcall.Tool[Resp] {
	limited := func(name, description string, fn func(context.Context, string, int) toolcall.Outcome) toolcall.Tool[Resp] {
		return toolcall.Tool[Resp]{
			Def: toolcall.Definition{
				Name:        name,
				Description: description,
				Parameters:  []toolcall.Parameter{queryParam, maxResultsParam},
			},
			Handler: func(ctx context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[Resp], _ *Resp) map[string]any {
				query, errResp := toolcall.Param[string](call, trace, "query")
				if errResp != nil {
					return errResp
				}
				limit, errResp := toolcall.OptionalParam(call, "max_results", DefaultMaxResults)
				if errResp != nil {
					return errResp
				}
				return record(trace, call, func() toolcall.Outcome { return fn(ctx, query, limit) })
			},
		}
	}

	return map[string]toolcall.Tool[Resp]{
		WebSearch: limited(WebSearch,
			"Search the web for current information about a topic", p.tools.Web),
		NewsSearch: limited(NewsSearch,
			"Search for recent news and developments about a topic", p.tools.News),
		MarketResearch: limited(MarketResearch,
			"Search for market trends, business information, and industry insights", p.tools.Market),
		TechnicalResearch: limited(TechnicalResearch,
			"Search for technical information, developments, and implementation details", p.tools.Technical),
		ComprehensiveResearch: {
			Def: toolcall.Definition{
				Name:        ComprehensiveResearch,
				Description: "Perform comprehensive research by searching web, news, market, and technical sources",
				Parameters:  []toolcall.Parameter{queryParam},
			},
			Handler: func(ctx context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[Resp], _ *Resp) map[string]any {
				query, errResp := toolcall.Param[string](call, trace, "query")
				if errResp != nil {
					return errResp
				}
				return record(trace, call, func() toolcall.Outcome { return p.tools.Comprehensive(ctx, query) })
			},
		},
	}
}

func record[Resp any](trace *agenttrace.Trace[Resp], call toolcall.ToolCall, run func() toolcall.Outcome) map[string]any {
	tc := trace.StartToolCall(call.ID, call.Name, call.Args)
	o := run()
	tc.Complete(o.Text, o.Err)
	callCounter.WithLabelValues(call.Name, o.Kind.String()).Inc()
	return o.Response()
}
