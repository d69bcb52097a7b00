/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package transcript records the prompts and responses of one think tank
// run in order.
package transcript

import "strings"

// Logger is an append-only list of "role: content" lines. It is owned by a
// single run and is not safe for concurrent use.
type Logger struct {
	lines []string
}

// New returns an empty Logger.
func New() *Logger {
	return &Logger{}
}

// Log appends one entry.
func (l *Logger) Log(role, content string) {
	l.lines = append(l.lines, role+": "+content)
}

// Transcript joins every entry with a blank line, in the order logged.
func (l *Logger) Transcript() string {
	return strings.Join(l.lines, "\n\n")
}

// Len is the number of entries logged so far.
func (l *Logger) Len() int {
	return len(l.lines)
}
