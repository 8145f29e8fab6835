package signals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleSearchClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "key-1", q.Get("key"))
		assert.Equal(t, "engine-1", q.Get("cx"))
		assert.Equal(t, `"some phrase"`, q.Get("q"))
		assert.Equal(t, "5", q.Get("num"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"title":"Page","link":"https://example.com/p","snippet":"some phrase here"}]}`))
	}))
	defer server.Close()

	client := NewGoogleSearchClient(server.URL, "key-1", "engine-1", time.Second)
	results, err := client.Search(context.Background(), `"some phrase"`)

	require.NoError(t, err)
	assert.Equal(t, []models.WebResult{{Title: "Page", URL: "https://example.com/p", Snippet: "some phrase here"}}, results)
	assert.Equal(t, "google", client.Name())
}

func TestGoogleSearchClient_NoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"searchInformation":{"totalResults":"0"}}`))
	}))
	defer server.Close()

	results, err := NewGoogleSearchClient(server.URL, "k", "cx", time.Second).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSerpAPIClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "serp-key", q.Get("api_key"))
		assert.Equal(t, "google", q.Get("engine"))

		_, _ = w.Write([]byte(`{"organic_results":[{"title":"A","link":"https://a.example.com","snippet":"s"},{"title":"B","link":"https://b.example.com"}]}`))
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, "serp-key", time.Second)
	results, err := client.Search(context.Background(), "phrase")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://b.example.com", results[1].URL)
	assert.Equal(t, "serpapi", client.Name())
}

func TestYouTubeClient_SearchVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "5", q.Get("maxResults"))
		assert.Equal(t, "yt-key", q.Get("key"))

		_, _ = w.Write([]byte(`{"items":[{"id":{"videoId":"abc123"},"snippet":{"title":"Midnight Drive","channelTitle":"Night Owls","thumbnails":{"default":{"url":"https://i.ytimg.com/vi/abc123/default.jpg"}}}}]}`))
	}))
	defer server.Close()

	results, err := NewYouTubeClient(server.URL, "yt-key", time.Second).SearchVideos(context.Background(), "Midnight Drive", 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.VideoResult{
		Title:        "Midnight Drive",
		URL:          "https://www.youtube.com/watch?v=abc123",
		Channel:      "Night Owls",
		ThumbnailURL: "https://i.ytimg.com/vi/abc123/default.jpg",
	}, results[0])
}

func TestClient_ErrorStatusesAreUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"api error envelope", http.StatusForbidden, `{"error":{"code":403,"message":"quota exceeded"}}`, "quota exceeded"},
		{"plain body", http.StatusBadGateway, "upstream down", "upstream down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewGoogleSearchClient(server.URL, "k", "cx", time.Second).Search(context.Background(), "q")
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrExternalSignalUnavailable)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := NewYouTubeClient(server.URL, "k", 20*time.Millisecond).SearchVideos(context.Background(), "q", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrExternalSignalUnavailable)
}
