/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package params

import (
	"fmt"
	"maps"
	"strconv"
)

// Extract returns the named argument as a T. JSON numbers arrive as
// float64 and are converted to the requested integer type. Numeric strings
// are accepted for integer parameters since some models quote them.
func Extract[T any](args map[string]any, name string) (T, error) {
	value, ok := args[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s parameter is required", name)
	}
	return convert[T](name, value)
}

// ExtractOptional is Extract with a default for absent or null arguments.
func ExtractOptional[T any](args map[string]any, name string, def T) (T, error) {
	value, ok := args[name]
	if !ok || value == nil {
		return def, nil
	}
	return convert[T](name, value)
}

func convert[T any](name string, value any) (T, error) {
	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := convertNumeric[T](value); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%s parameter must be of type %T, got %T", name, zero, value)
}

func convertNumeric[T any](value any) (T, bool) {
	var zero T
	var n int64
	switch v := value.(type) {
	case float64:
		n = int64(v)
	case int:
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return zero, false
		}
		n = parsed
	default:
		return zero, false
	}
	switch any(zero).(type) {
	case int:
		return any(int(n)).(T), true
	case int32:
		return any(int32(n)).(T), true
	case int64:
		return any(n).(T), true
	}
	return zero, false
}

// Error builds a tool error response.
func Error(format string, args ...any) map[string]any {
	return map[string]any{"error": fmt.Sprintf(format, args...)}
}

// ErrorWithContext builds a tool error response carrying extra fields.
func ErrorWithContext(err error, context map[string]any) map[string]any {
	resp := map[string]any{"error": err.Error()}
	maps.Copy(resp, context)
	return resp
}
