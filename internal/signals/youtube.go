package signals

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
)

const (
	YouTubeSearchURL = "https://www.googleapis.com/youtube/v3/search"
	youTubeWatchURL  = "https://www.youtube.com/watch?v="
)

// YouTubeClient searches videos through the YouTube Data API v3
type YouTubeClient struct {
	http   httpClient
	apiKey string
}

func NewYouTubeClient(baseURL, apiKey string, timeout time.Duration) *YouTubeClient {
	if baseURL == "" {
		baseURL = YouTubeSearchURL
	}
	return &YouTubeClient{
		http:   newHTTPClient(baseURL, "youtube", timeout),
		apiKey: apiKey,
	}
}

type youTubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func (c *YouTubeClient) Name() string { return "youtube" }

func (c *YouTubeClient) SearchVideos(ctx context.Context, query string, maxResults int) ([]models.VideoResult, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", c.apiKey)

	var resp youTubeSearchResponse
	if err := c.http.getJSON(ctx, params, &resp); err != nil {
		return nil, err
	}

	results := make([]models.VideoResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, models.VideoResult{
			Title:        item.Snippet.Title,
			URL:          youTubeWatchURL + item.ID.VideoID,
			Channel:      item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.Thumbnails.Default.URL,
		})
	}
	return results, nil
}
