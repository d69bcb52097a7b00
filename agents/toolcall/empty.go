/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

// EmptyTools is the callbacks type for agents without tools.
type EmptyTools struct{}

type emptyToolsProvider[Resp any] struct{}

var _ ToolProvider[any, EmptyTools] = emptyToolsProvider[any]{}

// NewEmptyToolsProvider provides no tools.
func NewEmptyToolsProvider[Resp any]() ToolProvider[Resp, EmptyTools] {
	return emptyToolsProvider[Resp]{}
}

func (emptyToolsProvider[Resp]) Tools(EmptyTools) map[string]Tool[Resp] {
	return map[string]Tool[Resp]{}
}
