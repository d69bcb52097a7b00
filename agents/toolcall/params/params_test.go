/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package params_test

import (
	"errors"
	"testing"

	"chainguard.dev/thinktank/agents/toolcall/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var args = map[string]any{
	"query":       "vertical farming",
	"max_results": float64(3),
	"quoted":      "7",
	"limit":       nil,
	"flag":        true,
	"bad":         "seven",
}

func TestExtract(t *testing.T) {
	q, err := params.Extract[string](args, "query")
	require.NoError(t, err)
	assert.Equal(t, "vertical farming", q)

	n, err := params.Extract[int](args, "max_results")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n64, err := params.Extract[int64](args, "quoted")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n64)

	b, err := params.Extract[bool](args, "flag")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = params.Extract[string](args, "missing")
	assert.EqualError(t, err, "missing parameter is required")

	_, err = params.Extract[int](args, "bad")
	assert.Error(t, err)

	_, err = params.Extract[string](args, "max_results")
	assert.Error(t, err)
}

func TestExtractOptional(t *testing.T) {
	n, err := params.ExtractOptional(args, "absent", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = params.ExtractOptional(args, "limit", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "null falls back to the default")

	n, err = params.ExtractOptional(args, "max_results", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = params.ExtractOptional(args, "flag", 5)
	assert.Error(t, err)
}

func TestErrorResponses(t *testing.T) {
	assert.Equal(t, map[string]any{"error": "query parameter is required"}, params.Error("%s parameter is required", "query"))
	assert.Equal(t,
		map[string]any{"error": "boom", "tool": "web_search"},
		params.ErrorWithContext(errors.New("boom"), map[string]any{"tool": "web_search"}))
}
