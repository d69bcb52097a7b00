/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// stringLiteral only accepts untyped string constants from callers outside
// this package.
type stringLiteral string

// Trusted is template text that ships with the binary, such as prompts
// decoded from embedded configuration. It must never carry user input.
type Trusted string

// Prompt is an immutable template with named {{placeholders}}.
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt parses a template literal.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	return parse(string(template))
}

// NewTrustedPrompt parses template text loaded from configuration that is
// compiled into the binary.
func NewTrustedPrompt(template Trusted) (*Prompt, error) {
	return parse(string(template))
}

func parse(template string) (*Prompt, error) {
	bindings := make(map[string]binding)
	tmpl, err := walkTemplate(template, func(name string) (string, error) {
		if _, ok := bindings[name]; !ok {
			bindings[name] = &unboundBinding{name: name}
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Prompt{template: tmpl, bindings: bindings}, nil
}

// GetBindings returns the set of placeholder names in the template.
func (p *Prompt) GetBindings() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// Has reports whether the template contains the named placeholder.
func (p *Prompt) Has(name string) bool {
	_, ok := p.bindings[name]
	return ok
}

// Unbound returns the names of placeholders that still need a value.
func (p *Prompt) Unbound() []string {
	var names []string
	for name, b := range p.bindings {
		if _, ok := b.(*unboundBinding); ok {
			names = append(names, name)
		}
	}
	return names
}

func (p *Prompt) with(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	np := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	np.bindings[name] = b
	return np, nil
}

// BindStringLiteral binds a developer supplied literal.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.with(name, &literalBinding{val: string(value)})
}

// BindTrusted binds text that ships with the binary.
func (p *Prompt) BindTrusted(name string, value Trusted) (*Prompt, error) {
	return p.with(name, &literalBinding{val: string(value)})
}

// BindXML binds data marshaled with encoding/xml.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.with(name, &xmlBinding{data: data})
}

// BindJSON binds data marshaled with encoding/json.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.with(name, &jsonBinding{data: data})
}

// Build renders the prompt. Every placeholder must be bound.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		v, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = v
	}
	return walkTemplate(p.template, func(name string) (string, error) {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("internal error: binding %q not found in values map", name)
		}
		return v, nil
	})
}
