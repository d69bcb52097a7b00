/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// ExtractJSON returns the body of the first ```json fenced block in text.
// Without such a block it strips a surrounding ``` fence, if any, and
// returns the trimmed text.
func ExtractJSON(text string) string {
	var (
		body    []string
		inBlock bool
	)
	for _, line := range strings.Split(text, "\n") {
		switch {
		case !inBlock && strings.TrimSpace(line) == "```json":
			inBlock = true
		case inBlock && strings.TrimSpace(line) == "```":
			return strings.TrimSpace(strings.Join(body, "\n"))
		case inBlock:
			body = append(body, line)
		}
	}
	if inBlock {
		return strings.TrimSpace(strings.Join(body, "\n"))
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Extract decodes the JSON found by ExtractJSON into a T.
func Extract[T any](text string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &out); err != nil {
		return out, err
	}
	return out, nil
}

// Parse decodes a model's final answer into T. JSON is tried first. When
// that fails and T (or *T) implements encoding.TextUnmarshaler, the trimmed
// text is handed to UnmarshalText instead, which suits prose answers such as
// markdown reports.
func Parse[T any](text string) (T, error) {
	out, jsonErr := Extract[T](text)
	if jsonErr == nil {
		return out, nil
	}
	var zero T
	target := any(&zero)
	if typ := reflect.TypeFor[T](); typ.Kind() == reflect.Pointer {
		v := reflect.New(typ.Elem())
		reflect.ValueOf(&zero).Elem().Set(v)
		target = zero
	}
	tu, ok := target.(encoding.TextUnmarshaler)
	if !ok {
		var empty T
		return empty, fmt.Errorf("decoding response: %w", jsonErr)
	}
	if err := tu.UnmarshalText([]byte(strings.TrimSpace(text))); err != nil {
		var empty T
		return empty, fmt.Errorf("decoding response as text: %w", err)
	}
	return zero, nil
}
