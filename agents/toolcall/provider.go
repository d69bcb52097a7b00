/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"fmt"
	"maps"
	"slices"
)

// ToolProvider supplies tools bound to a callbacks value of type CB.
// Providers compose by wrapping a base provider.
type ToolProvider[Resp, CB any] interface {
	Tools(cb CB) map[string]Tool[Resp]
}

// ProviderFunc adapts a function to ToolProvider.
type ProviderFunc[Resp, CB any] func(cb CB) map[string]Tool[Resp]

func (f ProviderFunc[Resp, CB]) Tools(cb CB) map[string]Tool[Resp] {
	return f(cb)
}

// Merge unions the tools of several providers. Later providers win on name
// clashes.
func Merge[Resp, CB any](providers ...ToolProvider[Resp, CB]) ToolProvider[Resp, CB] {
	return ProviderFunc[Resp, CB](func(cb CB) map[string]Tool[Resp] {
		out := map[string]Tool[Resp]{}
		for _, p := range providers {
			maps.Copy(out, p.Tools(cb))
		}
		return out
	})
}

// Select restricts a provider to the named tools. Tools() panics if a name
// is not offered by base, since subsets are static configuration.
func Select[Resp, CB any](base ToolProvider[Resp, CB], names ...string) ToolProvider[Resp, CB] {
	return ProviderFunc[Resp, CB](func(cb CB) map[string]Tool[Resp] {
		all := base.Tools(cb)
		out := make(map[string]Tool[Resp], len(names))
		for _, n := range names {
			t, ok := all[n]
			if !ok {
				panic(fmt.Sprintf("toolcall: tool %q not provided (have %v)", n, slices.Sorted(maps.Keys(all))))
			}
			out[n] = t
		}
		return out
	})
}
