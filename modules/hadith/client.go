package hadith

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Defaults for the Dorar search API collaborator.
const (
	DefaultAPIBase        = "https://dorar-hadith-api.vercel.app"
	DefaultTimeoutSeconds = 30
	DefaultMaxResults     = 15
)

// Config holds the search client settings.
type Config struct {
	APIBase string `yaml:"api_base" envconfig:"HADITH_API_BASE"`
	// TimeoutSeconds bounds each outbound request.
	TimeoutSeconds int `yaml:"timeout_seconds" envconfig:"HADITH_TIMEOUT_SECONDS"`
	// MaxResults caps how many results a search keeps.
	MaxResults int `yaml:"max_results" envconfig:"HADITH_MAX_RESULTS"`
}

// SharhMetadata describes the optional extended explanation of a result.
type SharhMetadata struct {
	ID             json.Number `json:"id"`
	IsContainSharh bool        `json:"isContainSharh"`
	Sharh          string      `json:"sharh"`
}

// Result is one hadith as returned by the search API.
type Result struct {
	Hadith       string `json:"hadith"`
	Rawi         string `json:"rawi"`
	Mohdith      string `json:"mohdith"`
	Book         string `json:"book"`
	NumberOrPage string `json:"numberOrPage"`
	Grade        string `json:"grade"`
	ExplainGrade string `json:"explainGrade"`

	HasSimilarHadith          bool   `json:"hasSimilarHadith"`
	SimilarHadithDorar        string `json:"similarHadithDorar"`
	HasAlternateHadithSahih   bool   `json:"hasAlternateHadithSahih"`
	AlternateHadithSahihDorar string `json:"alternateHadithSahihDorar"`
	HasUsulHadith             bool   `json:"hasUsulHadith"`
	UsulHadithDorar           string `json:"usulHadithDorar"`

	HasSharhMetadata bool           `json:"hasSharhMetadata"`
	SharhMetadata    *SharhMetadata `json:"sharhMetadata"`
}

// Client talks to the hadith search API.
type Client struct {
	base       string
	maxResults int
	http       *http.Client
}

// NewClient builds a Client, filling zero config fields with defaults.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if base == "" {
		base = DefaultAPIBase
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Client{
		base:       base,
		maxResults: maxResults,
		http:       &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// MaxResults reports the configured result cap.
func (cl *Client) MaxResults() int { return cl.maxResults }

// ExtractGradeFilter interprets the in-query filter toggle: a "0"
// anywhere in the query requests all authenticity grades and is stripped
// from the search text.
func ExtractGradeFilter(query string) (cleaned string, allGrades bool) {
	if !strings.Contains(query, "0") {
		return query, false
	}
	return strings.TrimSpace(strings.ReplaceAll(query, "0", "")), true
}

// Search queries the API and returns at most MaxResults results in API
// order. allGrades widens the authenticity filter from scholar-verified
// to everything.
func (cl *Client) Search(ctx context.Context, query string, allGrades bool) ([]Result, error) {
	grade := "1"
	if allGrades {
		grade = "0"
	}
	params := url.Values{}
	params.Set("value", query)
	params.Set("removehtml", "false")
	params.Set("specialist", "true")
	params.Set("d[]", grade)

	var payload struct {
		Data []Result `json:"data"`
	}
	if err := cl.getJSON(ctx, cl.base+"/v1/site/hadith/search?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	results := payload.Data
	if len(results) > cl.maxResults {
		results = results[:cl.maxResults]
	}
	return results, nil
}

// FetchSharh retrieves the extended explanation text for a sharh id.
func (cl *Client) FetchSharh(ctx context.Context, id string) (string, error) {
	var payload struct {
		Data struct {
			SharhMetadata struct {
				Sharh string `json:"sharh"`
			} `json:"sharhMetadata"`
		} `json:"data"`
	}
	if err := cl.getJSON(ctx, cl.base+"/v1/site/sharh/"+url.PathEscape(id), &payload); err != nil {
		return "", err
	}
	return payload.Data.SharhMetadata.Sharh, nil
}

func (cl *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := cl.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hadith: api status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("hadith: decode response: %w", err)
	}
	return nil
}
