/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package toolcall defines provider-independent tools for agents.
//
// A Tool is declared once and converted to each SDK's shape by the
// claudetool, googletool and openaitool packages. ToolProviders bind tools
// to their dependencies and can be merged or narrowed with Select to give
// each agent its own subset.
//
// Tools backed by remote services report an Outcome. Its Kind lets callers
// tell "no results" from "transport failure" from "missing credentials",
// while Response renders the same outcome as text for the model.
package toolcall
