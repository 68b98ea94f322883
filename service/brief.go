package service

import (
	"fmt"
	"strings"

	"argutree-backend/models"
)

// AssembleBrief renders a research node as a plain-text argument brief
func AssembleBrief(node *models.ResearchNode) string {
	var builder strings.Builder

	builder.WriteString("LEGAL RESEARCH BRIEF\n\n")
	builder.WriteString(fmt.Sprintf("Research Question: %s\n", node.Query))
	builder.WriteString(fmt.Sprintf("Prepared: %s\n\n", node.Timestamp.Format("January 2, 2006")))

	builder.WriteString("I. PRIMARY ARGUMENT\n")
	builder.WriteString(node.PrimaryArgument.Text + "\n\n")
	writeAuthorities(&builder, "Supporting Authorities", node.PrimaryArgument.SupportingCases)

	builder.WriteString("II. ANTICIPATED OPPOSITION\n")
	builder.WriteString(fmt.Sprintf("Assessed threat level: %s\n\n", node.Opposition.ThreatLevel))
	builder.WriteString(node.Opposition.Text + "\n\n")
	writeAuthorities(&builder, "Contrary Authorities", node.Opposition.OpposingCases)

	builder.WriteString("III. COUNTER-REBUTTAL\n")
	builder.WriteString(node.CounterRebuttal.Text + "\n\n")

	builder.WriteString("IV. CONCLUSION\n")
	builder.WriteString(fmt.Sprintf(
		"The primary position, reinforced by the counter-rebuttal above, rests on %d supporting and %d contrary authorities reviewed.\n",
		len(node.PrimaryArgument.SupportingCases), len(node.Opposition.OpposingCases)))

	return builder.String()
}

// writeAuthorities lists cases as a cited block
func writeAuthorities(builder *strings.Builder, heading string, cases models.CaseRecords) {
	if len(cases) == 0 {
		return
	}
	builder.WriteString(heading + ":\n")
	for _, c := range cases {
		builder.WriteString(fmt.Sprintf("  - %s, %s (%s, %s)\n", c.Name, c.Citation, c.Court, c.Date))
	}
	builder.WriteString("\n")
}
