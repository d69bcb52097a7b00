/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package crew

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"

	"chainguard.dev/thinktank/agents/promptbuilder"
)

// Request is the input to one stage.
type Request struct {
	Topic       string
	CurrentYear int
	// Context holds the results of every earlier stage, in order.
	Context []StageOutput
}

var _ promptbuilder.Bindable = (*Request)(nil)

type topicXML struct {
	XMLName xml.Name `xml:"topic"`
	Text    string   `xml:",chardata"`
}

type contextXML struct {
	XMLName xml.Name     `xml:"context"`
	Stages  []contribXML `xml:"contribution"`
}

type contribXML struct {
	Role    string `xml:"role,attr"`
	Content string `xml:",chardata"`
}

// Bind fills the placeholders the template uses. User supplied text is
// bound as escaped XML.
func (r *Request) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	var err error
	if p.Has("topic") {
		if p, err = p.BindXML("topic", topicXML{Text: r.Topic}); err != nil {
			return nil, err
		}
	}
	if p.Has("current_year") {
		if p, err = p.BindTrusted("current_year", promptbuilder.Trusted(strconv.Itoa(r.CurrentYear))); err != nil {
			return nil, err
		}
	}
	if p.Has(contextPlaceholder) {
		if len(r.Context) == 0 {
			p, err = p.BindTrusted(contextPlaceholder, "You are the first to contribute to this discussion.")
		} else {
			p, err = p.BindXML(contextPlaceholder, r.contextXML())
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *Request) contextXML() contextXML {
	c := contextXML{Stages: make([]contribXML, 0, len(r.Context))}
	for _, s := range r.Context {
		c.Stages = append(c.Stages, contribXML{Role: s.Role.Label(), Content: s.Result.Content})
	}
	return c
}

// StageResult is what an agent submits for its stage.
type StageResult struct {
	_ struct{} `submitresult:"description=Submit your completed contribution to the think tank discussion,payload=contribution,success=Contribution recorded."`

	Content string `json:"content" jsonschema:"required,description=Your complete contribution in markdown"`
	Summary string `json:"summary,omitempty" jsonschema:"description=A one or two sentence summary of your contribution"`
}

// Validate rejects an empty contribution.
func (s *StageResult) Validate() error {
	if strings.TrimSpace(s.Content) == "" {
		return errors.New("content is empty")
	}
	return nil
}

// UnmarshalText accepts a plain markdown answer.
func (s *StageResult) UnmarshalText(text []byte) error {
	s.Content = string(text)
	return s.Validate()
}
