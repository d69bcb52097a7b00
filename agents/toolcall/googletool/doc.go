/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package googletool adapts toolcall tools to Gemini function declarations.
package googletool
