/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discussions

import (
	"context"

	"chainguard.dev/thinktank/agents/toolcall"
	"github.com/chainguard-dev/clog"
)

// Session scopes a Service to one think tank run. The run's own Discussion,
// passed to Store once the pipeline finishes, is the only thing written;
// store requests from agents mid-run are deferred to it.
type Session struct {
	svc     *Service
	stored  *Record
	partial *Partial
}

// NewSession starts a run against svc.
func NewSession(svc *Service) *Session {
	return &Session{svc: svc}
}

// Service returns the underlying Service.
func (s *Session) Service() *Service {
	return s.svc
}

// Stored returns the record created in this run, if any.
func (s *Session) Stored() (Record, bool) {
	if s.stored == nil {
		return Record{}, false
	}
	return *s.stored, true
}

// Request notes an agent's wish to store the discussion on topic. Nothing is
// written until Store runs with the completed discussion.
func (s *Session) Request(ctx context.Context, topic string) toolcall.Outcome {
	if !s.svc.Available() {
		return s.svc.unavailable()
	}
	if s.stored != nil {
		return s.already()
	}
	clog.FromContext(ctx).With("requested_topic", topic).Info("Deferring discussion storage to the end of the run")
	return toolcall.OK("The discussion will be stored in Notion with every perspective and the full transcript when the think tank run completes.")
}

// Store writes the run's record. A record that already exists is returned
// as is. A page left half written by an earlier call is completed rather
// than created again.
func (s *Session) Store(ctx context.Context, d Discussion) toolcall.Outcome {
	if s.stored != nil {
		return s.already()
	}
	var o toolcall.Outcome
	if s.partial != nil {
		o = s.svc.Resume(ctx, *s.partial, d)
	} else {
		o = s.svc.Store(ctx, d)
	}
	switch v := o.Value.(type) {
	case Record:
		if o.Kind == toolcall.KindOK {
			s.stored, s.partial = &v, nil
		}
	case Partial:
		s.partial = &v
	}
	return o
}

func (s *Session) already() toolcall.Outcome {
	return toolcall.Outcome{
		Kind:  toolcall.KindOK,
		Text:  "Think tank discussion already stored in Notion! View at: " + s.stored.URL,
		Value: *s.stored,
	}
}

func (s *Session) Search(ctx context.Context, query string) toolcall.Outcome {
	return s.svc.Search(ctx, query)
}

func (s *Session) History(ctx context.Context, limit int) toolcall.Outcome {
	return s.svc.History(ctx, limit)
}
