/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package googleexecutor runs a tool-using conversation against the Gemini
// API through a genai chat session.
//
//	client, _ := genai.NewClient(ctx, &genai.ClientConfig{
//	    APIKey:  key,
//	    Backend: genai.BackendGeminiAPI,
//	})
//	exec, err := googleexecutor.New[*crew.Request, *crew.StageResult](client, prompt)
//	out, err := exec.Execute(ctx, request, googletool.Map(tools))
//
// Malformed function calls are answered with a request to try again using
// the declared functions. Thought parts are recorded on the trace.
package googleexecutor
