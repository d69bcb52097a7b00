/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metaagent builds an agent from a prompt pair and a tool provider,
// choosing the executor from the model name:
//   - "claude-*" uses the Anthropic Messages API
//   - "gemini-*" uses the Gemini API
//   - "gpt-*", "o1*", "o3*" and "o4*" use OpenAI chat completions
//
// Tools are written once against toolcall.Tool and adapted per provider.
// Every agent also gets a submit_result tool whose payload schema is
// reflected from Resp.
//
//	config := metaagent.Config[*crew.StageResult, *discussions.Session]{
//	    SystemInstructions: system,
//	    UserPrompt:         task,
//	    Tools:              toolcall.Select(tools, "web_search", "news_search"),
//	    Credentials:        metaagent.Credentials{AnthropicAPIKey: key},
//	}
//	agent, err := metaagent.New[*crew.Request](ctx, "claude-sonnet-4-5", config)
//	out, err := agent.Execute(ctx, request, session)
package metaagent
