package signals

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
)

const (
	GoogleSearchURL  = "https://www.googleapis.com/customsearch/v1"
	SerpAPISearchURL = "https://serpapi.com/search.json"

	// results requested per chunk query
	webResultsPerQuery = 5
)

// GoogleSearchClient queries the Google Custom Search JSON API
type GoogleSearchClient struct {
	http     httpClient
	apiKey   string
	engineID string
}

func NewGoogleSearchClient(baseURL, apiKey, engineID string, timeout time.Duration) *GoogleSearchClient {
	if baseURL == "" {
		baseURL = GoogleSearchURL
	}
	return &GoogleSearchClient{
		http:     newHTTPClient(baseURL, "google", timeout),
		apiKey:   apiKey,
		engineID: engineID,
	}
}

type googleSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

func (c *GoogleSearchClient) Name() string { return "google" }

func (c *GoogleSearchClient) Search(ctx context.Context, query string) ([]models.WebResult, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(webResultsPerQuery))

	var resp googleSearchResponse
	if err := c.http.getJSON(ctx, params, &resp); err != nil {
		return nil, err
	}

	results := make([]models.WebResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, models.WebResult{Title: item.Title, URL: item.Link, Snippet: item.Snippet})
	}
	return results, nil
}

// SerpAPIClient queries Google results through SerpApi
type SerpAPIClient struct {
	http   httpClient
	apiKey string
}

func NewSerpAPIClient(baseURL, apiKey string, timeout time.Duration) *SerpAPIClient {
	if baseURL == "" {
		baseURL = SerpAPISearchURL
	}
	return &SerpAPIClient{
		http:   newHTTPClient(baseURL, "serpapi", timeout),
		apiKey: apiKey,
	}
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

func (c *SerpAPIClient) Name() string { return "serpapi" }

func (c *SerpAPIClient) Search(ctx context.Context, query string) ([]models.WebResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("engine", "google")
	params.Set("num", strconv.Itoa(webResultsPerQuery))

	var resp serpAPIResponse
	if err := c.http.getJSON(ctx, params, &resp); err != nil {
		return nil, err
	}

	results := make([]models.WebResult, 0, len(resp.OrganicResults))
	for _, r := range resp.OrganicResults {
		results = append(results, models.WebResult{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}
	return results, nil
}
