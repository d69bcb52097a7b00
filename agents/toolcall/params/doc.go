/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package params extracts typed tool arguments from decoded JSON and formats
// error responses. It is shared by every provider's tool adapter.
package params
