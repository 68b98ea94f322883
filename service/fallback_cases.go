package service

import "argutree-backend/models"

// Hardcoded fallback case sets, returned when the search service is
// unreachable or its payload cannot be parsed. Deterministic per topic
// bucket so the pipeline always produces a structurally complete node.
// The content is placeholder authority, not verified case law.

// criminalFallbackCases covers criminal-law queries
var criminalFallbackCases = models.CaseRecords{
	{
		ID:             "mock-criminal-1",
		Name:           "People v. Wilson",
		Court:          "California Court of Appeal",
		Date:           "1963-05-15",
		Snippet:        "The location of the actus reus (the criminal act) is a key determinant in establishing jurisdiction for criminal prosecution.",
		URL:            "https://courtlistener.com/mock/people-v-wilson",
		Citation:       "220 Cal.App.2d 568 (1963)",
		RelevanceScore: 0.94,
	},
	{
		ID:             "mock-criminal-2",
		Name:           "Strassheim v. Daily",
		Court:          "U.S. Supreme Court",
		Date:           "1911-03-13",
		Snippet:        "A state's power to prosecute offenses committed within its boundaries is not lost merely because the defendant is later found outside of the state.",
		URL:            "https://courtlistener.com/mock/strassheim-v-daily",
		Citation:       "221 U.S. 280 (1911)",
		RelevanceScore: 0.91,
	},
}

// landlordTenantFallbackCases is also the default bucket for queries
// that match no topic keywords
var landlordTenantFallbackCases = models.CaseRecords{
	{
		ID:             "mock-1",
		Name:           "Green v. Superior Court",
		Court:          "CA Supreme Court",
		Date:           "2023-03-15",
		Snippet:        "Security deposits must be returned within 21 days unless specific deductions are itemized...",
		URL:            "https://courtlistener.com/mock/green-v-superior",
		Citation:       "2023 Cal. LEXIS 1234",
		RelevanceScore: 0.92,
	},
	{
		ID:             "mock-2",
		Name:           "Tenant Rights Coalition v. Metro Housing",
		Court:          "9th Circuit",
		Date:           "2022-11-08",
		Snippet:        "Landlords bear burden of proof for security deposit deductions under Civil Code 1950.5...",
		URL:            "https://courtlistener.com/mock/tenant-rights-v-metro",
		Citation:       "2022 F.3d 567 (9th Cir.)",
		RelevanceScore: 0.88,
	},
}

// opposingFallbackCases is the single fallback set for opposing-stance
// retrieval, regardless of topic
var opposingFallbackCases = models.CaseRecords{
	{
		ID:             "mock-opp-1",
		Name:           "Landlord Protection Alliance v. Davis",
		Court:          "CA Court of Appeal",
		Date:           "2023-01-20",
		Snippet:        "Court held that normal wear and tear standards are subjective and landlords have discretion in deposit deductions...",
		URL:            "https://courtlistener.com/mock/landlord-protection-v-davis",
		Citation:       "2023 Cal. App. LEXIS 890",
		ThreatLevel:    models.ThreatHigh,
		RelevanceScore: 0.82,
	},
	{
		ID:             "mock-opp-2",
		Name:           "Property Owners United v. State",
		Court:          "Superior Court",
		Date:           "2022-09-14",
		Snippet:        "Tenant failed to provide forwarding address, relieving landlord of deposit return obligations...",
		URL:            "https://courtlistener.com/mock/property-owners-v-state",
		Citation:       "2022 Cal. Super. LEXIS 445",
		ThreatLevel:    models.ThreatMedium,
		RelevanceScore: 0.71,
	},
}

// fallbackCasesForTopic selects the supporting-stance fallback bucket
func fallbackCasesForTopic(topic Topic) models.CaseRecords {
	switch topic {
	case TopicCriminal:
		return criminalFallbackCases
	default:
		return landlordTenantFallbackCases
	}
}
