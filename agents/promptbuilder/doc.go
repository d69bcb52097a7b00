/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder builds LLM prompts from templates with {{name}}
placeholders, keeping caller data out of the instruction text.

Templates come from one of two trusted places: string literals in Go source
(NewPrompt) or configuration embedded in the binary (NewTrustedPrompt).
Runtime data, such as a discussion topic typed by a user, can only be bound
through an encoder:

	p := promptbuilder.MustNewPrompt(`Research {{topic}} as of {{year}}.`)
	p, err := p.BindJSON("topic", topic)
	if err != nil {
		return err
	}
	p, err = p.BindJSON("year", 2026)
	if err != nil {
		return err
	}
	text, err := p.Build()

Substitution is single pass, so bound values that themselves contain
{{placeholders}} are never expanded. Prompts are immutable; every Bind
method returns a new Prompt.

Placeholder names start with a letter and continue with letters, digits or
underscores.
*/
package promptbuilder
