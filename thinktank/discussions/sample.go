/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discussions

// SampleDiscussion is an example record for checking a new database.
func SampleDiscussion() Discussion {
	return Discussion{
		Topic: "AI-Powered Education Platform",
		Outputs: []RoleOutput{{
			Label:   "Visionary Thinker",
			Content: "AI-powered personalized education could revolutionize learning by adapting to each student's unique needs and learning style.",
		}, {
			Label:   "Critical Analyst",
			Content: "Key challenges include data privacy concerns, implementation costs, and ensuring equitable access across different socioeconomic groups.",
		}, {
			Label:   "Practical Implementer",
			Content: "Phase 1: Pilot program in 3 schools. Phase 2: Expand to 50 schools. Phase 3: Full deployment with continuous improvement.",
		}, {
			Label:   "Market Expert",
			Content: "Education technology market is growing at 15% annually. Key competitors include Duolingo, Coursera, and Khan Academy.",
		}, {
			Label:   "Technical Specialist",
			Content: "Requires machine learning models for personalization, secure data storage, and scalable cloud infrastructure.",
		}, {
			Label:   "Synthesis Coordinator",
			Content: "AI education platform shows strong potential with careful attention to privacy, accessibility, and gradual rollout.",
		}},
		Report: `# AI-Powered Education Platform Analysis

## Executive Summary
The proposed AI-powered education platform shows significant potential for transforming learning experiences while requiring careful attention to implementation challenges.

## Key Recommendations
1. Start with a pilot program in 3 diverse schools
2. Implement robust data privacy measures from day one
3. Ensure equitable access through strategic partnerships
4. Build scalable technical infrastructure
5. Establish continuous feedback loops for improvement

## Next Steps
- Develop detailed technical specifications
- Create privacy and security protocols
- Identify pilot school partners
- Secure initial funding for development
`,
	}
}
