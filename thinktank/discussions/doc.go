/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package discussions stores completed think tank discussions in a Notion
// database and lets agents search earlier ones.
//
// Service holds the formatting and page layout and talks to a Backend.
// Notion is the production Backend. Without credentials a Service has no
// backend and every operation reports KindMissingCredentials instead of
// failing, so a run can continue locally.
package discussions
