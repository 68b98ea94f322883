package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"argutree-backend/models"
)

// courtListenerSearchBase is the CourtListener opinion search endpoint.
// Declared as a var so tests can substitute an httptest server.
var courtListenerSearchBase = "https://www.courtlistener.com/api/rest/v4/search/"

const (
	searchTimeout      = 10 * time.Second
	maxSupportingCases = 5
	maxOpposingCases   = 4

	// Position-independent relevance placeholders: the service's own
	// ranking (order_by=score desc) is treated as authoritative.
	supportingRelevance = 0.85
	opposingRelevance   = 0.75

	// Federal appellate courts filter for supporting-stance searches
	federalCourts = "scotus,ca1,ca2,ca3,ca4,ca5,ca6,ca7,ca8,ca9,ca10,ca11,cadc"
)

// RetrievalStatus indicates whether cases came from the live search
// service or from the hardcoded fallback sets
type RetrievalStatus string

const (
	RetrievalSuccess  RetrievalStatus = "success"
	RetrievalFallback RetrievalStatus = "fallback"
)

// RetrievalResult represents the outcome of a case retrieval. Cases is
// always populated with a usable (possibly fallback) set.
type RetrievalResult struct {
	Status RetrievalStatus    `json:"status"`
	Cases  models.CaseRecords `json:"cases"`
}

// CaseRetriever queries CourtListener for case law matching a query and
// stance. Failures never propagate: the retriever degrades to a
// deterministic fallback set keyed by topic classification.
type CaseRetriever struct {
	client       *http.Client
	token        string
	jurisdiction string
}

// CaseRetrieverOption is a functional option for CaseRetriever
type CaseRetrieverOption func(*CaseRetriever)

// RetrieverWithToken sets the CourtListener API token
func RetrieverWithToken(token string) CaseRetrieverOption {
	return func(r *CaseRetriever) {
		r.token = token
	}
}

// RetrieverWithHTTPClient sets the HTTP client
func RetrieverWithHTTPClient(client *http.Client) CaseRetrieverOption {
	return func(r *CaseRetriever) {
		r.client = client
	}
}

// RetrieverWithJurisdiction sets the court filter for supporting searches
func RetrieverWithJurisdiction(courts string) CaseRetrieverOption {
	return func(r *CaseRetriever) {
		r.jurisdiction = courts
	}
}

// NewCaseRetriever creates a new case retriever
func NewCaseRetriever(opts ...CaseRetrieverOption) *CaseRetriever {
	r := &CaseRetriever{
		client:       &http.Client{Timeout: searchTimeout},
		jurisdiction: federalCourts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// courtListener search response structures
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID          json.Number    `json:"id"`
	CaseName    string         `json:"caseName"`
	Court       string         `json:"court"`
	DateFiled   string         `json:"dateFiled"`
	Snippet     string         `json:"snippet"`
	AbsoluteURL string         `json:"absolute_url"`
	Citation    searchCitation `json:"citation"`
}

type searchCitation struct {
	Neutral string `json:"neutral"`
}

// Retrieve searches for cases matching query and stance. For the
// opposing stance the search query is augmented with contrary-authority
// terms; contextText carries the primary argument so step ordering in
// the builder stays a real data dependency, but it does not alter the
// search string. One outbound call, no retries.
func (r *CaseRetriever) Retrieve(ctx context.Context, query string, stance models.Stance, contextText string) *RetrievalResult {
	searchQuery := query
	if stance == models.StanceOpposing {
		searchQuery = "contrary authority " + query + " adverse authority"
	}

	cases, err := r.search(ctx, searchQuery, stance)
	if err != nil {
		log.Printf("Warning: Case search failed (%s stance): %v. Using fallback cases.", stance, err)
		return &RetrievalResult{
			Status: RetrievalFallback,
			Cases:  fallbackCases(query, stance),
		}
	}

	return &RetrievalResult{
		Status: RetrievalSuccess,
		Cases:  cases,
	}
}

// search performs the actual CourtListener call and normalizes results
func (r *CaseRetriever) search(ctx context.Context, searchQuery string, stance models.Stance) (models.CaseRecords, error) {
	params := url.Values{
		"q":        {searchQuery},
		"type":     {"o"}, // opinions
		"order_by": {"score desc"},
		"format":   {"json"},
	}
	if stance == models.StanceSupporting && r.jurisdiction != "" {
		params.Set("court", r.jurisdiction)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, courtListenerSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Token "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API error: %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	limit := maxSupportingCases
	relevance := supportingRelevance
	if stance == models.StanceOpposing {
		limit = maxOpposingCases
		relevance = opposingRelevance
	}

	cases := make(models.CaseRecords, 0, limit)
	for i, result := range data.Results {
		if i >= limit {
			break
		}
		record := models.CaseRecord{
			ID:             result.ID.String(),
			Name:           result.CaseName,
			Court:          result.Court,
			Date:           result.DateFiled,
			Snippet:        result.Snippet,
			URL:            "https://www.courtlistener.com" + result.AbsoluteURL,
			Citation:       result.Citation.Neutral,
			RelevanceScore: relevance,
		}
		if record.Name == "" {
			record.Name = "Unknown Case"
		}
		if record.Court == "" {
			record.Court = "Unknown Court"
		}
		if record.Date == "" {
			record.Date = "Unknown Date"
		}
		if record.Citation == "" {
			record.Citation = "No citation"
		}
		if stance == models.StanceOpposing {
			// Coarse constant classification, not a real threat model
			record.ThreatLevel = models.ThreatHigh
		}
		cases = append(cases, record)
	}

	return cases, nil
}

// fallbackCases selects the deterministic fallback set for a failed search
func fallbackCases(query string, stance models.Stance) models.CaseRecords {
	var bucket models.CaseRecords
	if stance == models.StanceOpposing {
		bucket = opposingFallbackCases
	} else {
		bucket = fallbackCasesForTopic(ClassifyTopic(query))
	}

	// Copy so callers never share the package-level literals
	out := make(models.CaseRecords, len(bucket))
	copy(out, bucket)
	return out
}
