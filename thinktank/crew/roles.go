/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package crew

import (
	"chainguard.dev/thinktank/thinktank/discussions"
	"chainguard.dev/thinktank/thinktank/research"
)

// Role identifies one think tank agent.
type Role string

const (
	Visionary   Role = "visionary_thinker"
	Critical    Role = "critical_analyst"
	Implementer Role = "practical_implementer"
	Market      Role = "market_expert"
	Technical   Role = "technical_specialist"
	Synthesis   Role = "synthesis_coordinator"
)

// Roles returns every role in pipeline order.
func Roles() []Role {
	return []Role{Visionary, Critical, Implementer, Market, Technical, Synthesis}
}

var labels = map[Role]string{
	Visionary:   "Visionary Thinker",
	Critical:    "Critical Analyst",
	Implementer: "Practical Implementer",
	Market:      "Market Expert",
	Technical:   "Technical Specialist",
	Synthesis:   "Synthesis Coordinator",
}

// Label is the display name, e.g. "Market Expert".
func (r Role) Label() string {
	if l, ok := labels[r]; ok {
		return l
	}
	return string(r)
}

// toolSets are the tools each role may call.
var toolSets = map[Role][]string{
	Visionary: {
		discussions.SearchDiscussions, discussions.GetHistory,
		research.WebSearch, research.NewsSearch, research.ComprehensiveResearch,
	},
	Critical: {
		discussions.SearchDiscussions, discussions.GetHistory,
		research.WebSearch, research.NewsSearch, research.TechnicalResearch,
	},
	Implementer: {
		discussions.SearchDiscussions, discussions.GetHistory,
		research.WebSearch, research.TechnicalResearch, research.ComprehensiveResearch,
	},
	Market: {
		discussions.SearchDiscussions, discussions.GetHistory,
		research.WebSearch, research.NewsSearch, research.MarketResearch,
	},
	Technical: {
		discussions.SearchDiscussions, discussions.GetHistory,
		research.WebSearch, research.TechnicalResearch, research.ComprehensiveResearch,
	},
	Synthesis: {
		discussions.StoreDiscussion, discussions.SearchDiscussions, discussions.GetHistory,
		research.WebSearch, research.ComprehensiveResearch,
	},
}

// Tools returns the names of the tools r may call.
func (r Role) Tools() []string {
	return append([]string(nil), toolSets[r]...)
}
