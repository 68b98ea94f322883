package service

import (
	"fmt"
	"strings"

	"argutree-backend/models"
)

const (
	maxContextCases = 3
	snippetLimit    = 200
)

// promptPrimary is domain-agnostic: IRAC structure works for criminal
// and civil questions alike
const promptPrimary = `You are a skilled attorney drafting a legal argument. Based on the following cases, create a strong primary argument for: %s

Available Cases:
%s

Structure your response as a clear IRAC analysis:
1. Issue: What is the legal question?
2. Rule: What legal principles apply (cite the cases)?
3. Application: How do the facts apply to the law?
4. Conclusion: What should the outcome be?

Make it persuasive and cite specific case law. Keep it under 300 words.`

const promptOppositionCriminal = `You are opposing counsel for the prosecution finding weaknesses in the defense's argument about: %s

Based on these contrary authorities:
%s

Draft a counter-argument that:
1. Identifies the strongest opposing legal precedent
2. Distinguishes or undermines the defense's position
3. Cites specific case law that favors the prosecution
4. Points out factual or legal gaps in the defense's argument

Be aggressive but professional. Under 250 words.`

const promptOppositionCivil = `You are opposing counsel finding weaknesses in the claimant's argument about: %s

Based on these contrary authorities:
%s

Draft a counter-argument that:
1. Identifies the strongest opposing legal precedent
2. Distinguishes or undermines the claimant's position
3. Cites specific case law that favors the opposing party
4. Points out factual or legal gaps in the claimant's argument

Be aggressive but professional. Under 250 words.`

const promptCounterRebuttalCriminal = `You are strengthening the defense's original argument against the prosecution's opposition. Query: %s

Using these supporting authorities:
%s

Create a counter-rebuttal that:
1. Addresses the prosecution's strongest points
2. Distinguishes contrary cases or shows they're not controlling
3. Reinforces your original argument with additional authority
4. Anticipates and preempts further attacks

Make it bulletproof. Under 250 words.`

const promptCounterRebuttalCivil = `You are strengthening the claimant's original argument against opposition. Query: %s

Using these supporting authorities:
%s

Create a counter-rebuttal that:
1. Addresses the opposition's strongest points
2. Distinguishes contrary cases or shows they're not controlling
3. Reinforces your original argument with additional authority
4. Anticipates and preempts further attacks

Make it bulletproof. Under 250 words.`

// selectPromptTemplate picks the role-and-domain template. The primary
// template is shared across domains.
func selectPromptTemplate(role models.Role, domain Domain) string {
	switch role {
	case models.RoleOpposition:
		if domain == DomainCriminal {
			return promptOppositionCriminal
		}
		return promptOppositionCivil
	case models.RoleCounterRebuttal:
		if domain == DomainCriminal {
			return promptCounterRebuttalCriminal
		}
		return promptCounterRebuttalCivil
	default:
		return promptPrimary
	}
}

// renderPrompt fills the selected template with the query and case context
func renderPrompt(role models.Role, domain Domain, query string, cases models.CaseRecords) string {
	return fmt.Sprintf(selectPromptTemplate(role, domain), query, buildCaseContext(cases))
}

// buildCaseContext renders a bounded-size context block from the top
// cases, in input order
func buildCaseContext(cases models.CaseRecords) string {
	var builder strings.Builder
	for i, c := range cases {
		if i >= maxContextCases {
			break
		}
		builder.WriteString(fmt.Sprintf("Case %d: %s (%s)\n", i+1, c.Name, c.Citation))
		builder.WriteString(fmt.Sprintf("Court: %s\n", c.Court))
		builder.WriteString(fmt.Sprintf("Key Point: %s...\n", truncate(c.Snippet, snippetLimit)))
		builder.WriteString(fmt.Sprintf("URL: %s\n\n", c.URL))
	}
	return builder.String()
}

// truncate cuts s to at most limit runes, never splitting a multibyte
// character
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
