package service

import "strings"

// Topic represents a coarse legal topic bucket derived from query text.
// The bucketing is intentionally crude keyword matching; it only drives
// fallback case selection and prompt template choice, never ranking.
type Topic string

const (
	TopicCriminal       Topic = "criminal"
	TopicLandlordTenant Topic = "landlord_tenant"
	TopicGeneral        Topic = "general"
)

// Domain represents the prompt-template domain for argument generation
type Domain string

const (
	DomainCriminal Domain = "criminal"
	DomainCivil    Domain = "civil"
)

// ClassifyTopic classifies free text into a topic bucket by keyword match
func ClassifyTopic(text string) Topic {
	lowered := strings.ToLower(text)

	for _, kw := range []string{"murder", "criminal", "homicide", "prosecution"} {
		if strings.Contains(lowered, kw) {
			return TopicCriminal
		}
	}

	for _, kw := range []string{"landlord", "tenant", "deposit", "eviction"} {
		if strings.Contains(lowered, kw) {
			return TopicLandlordTenant
		}
	}

	return TopicGeneral
}

// DomainForTopic maps a topic bucket onto a prompt-template domain.
// Everything that is not criminal is argued as a civil matter.
func DomainForTopic(topic Topic) Domain {
	if topic == TopicCriminal {
		return DomainCriminal
	}
	return DomainCivil
}
