/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable is implemented by executor request types so that a shared
// template can be filled with the data of one request.
type Bindable interface {
	Bind(prompt *Prompt) (*Prompt, error)
}

// Noop returns the prompt unchanged.
type Noop struct{}

// Bind implements Bindable.
func (Noop) Bind(prompt *Prompt) (*Prompt, error) {
	return prompt, nil
}

// BindFunc adapts a function to Bindable.
type BindFunc func(*Prompt) (*Prompt, error)

// Bind implements Bindable.
func (f BindFunc) Bind(prompt *Prompt) (*Prompt, error) {
	return f(prompt)
}
