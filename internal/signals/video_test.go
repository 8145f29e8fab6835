package signals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoSearcher struct {
	videos   []models.VideoResult
	err      error
	gotQuery string
	gotMax   int
}

func (f *fakeVideoSearcher) SearchVideos(_ context.Context, query string, maxResults int) ([]models.VideoResult, error) {
	f.gotQuery = query
	f.gotMax = maxResults
	return f.videos, f.err
}

func TestVideoSignal_MeanTitleSimilarity(t *testing.T) {
	searcher := &fakeVideoSearcher{
		videos: []models.VideoResult{
			{Title: "Midnight Drive", URL: "https://www.youtube.com/watch?v=a", Channel: "Night Owls"},
			{Title: "Midnight Drive (Official Video)", URL: "https://www.youtube.com/watch?v=b", Channel: "Label"},
			{Title: "Cooking pasta at home", URL: "https://www.youtube.com/watch?v=c", Channel: "Chef"},
		},
	}

	result := NewVideoSignal(searcher, time.Second).Check(context.Background(), "Midnight Drive")

	assert.Equal(t, "Midnight Drive", searcher.gotQuery)
	assert.Equal(t, MaxVideoCandidates, searcher.gotMax)

	want := (TitleExact + TitleCandidateHasQuery + TitleFloor) / 3
	assert.InDelta(t, want, result.Score, 1e-9)
	assert.Equal(t, 3, result.Checked)
	assert.False(t, result.Unavailable)

	require.Len(t, result.Matches, 3)
	assert.Equal(t, models.SourceVideo, result.Matches[0].Source)
	assert.Equal(t, "Night Owls", result.Matches[0].Owner)
	assert.Equal(t, TitleExact, result.Matches[0].SimilarityScore)
}

func TestVideoSignal_CapsCandidates(t *testing.T) {
	videos := make([]models.VideoResult, 8)
	for i := range videos {
		videos[i] = models.VideoResult{Title: "Midnight Drive"}
	}

	result := NewVideoSignal(&fakeVideoSearcher{videos: videos}, time.Second).Check(context.Background(), "Midnight Drive")

	assert.Equal(t, MaxVideoCandidates, result.Checked)
	assert.Len(t, result.Matches, MaxVideoCandidates)
	assert.Equal(t, 1.0, result.Score)
}

func TestVideoSignal_Unavailable(t *testing.T) {
	failing := &fakeVideoSearcher{err: errors.New("quota exceeded")}
	result := NewVideoSignal(failing, time.Second).Check(context.Background(), "Midnight Drive")
	assert.True(t, result.Unavailable)
	assert.Zero(t, result.Score)

	result = NewVideoSignal(nil, time.Second).Check(context.Background(), "Midnight Drive")
	assert.True(t, result.Unavailable)
}

func TestVideoSignal_EmptyTitleOrNoResults(t *testing.T) {
	searcher := &fakeVideoSearcher{}

	result := NewVideoSignal(searcher, time.Second).Check(context.Background(), "  ")
	assert.Zero(t, result.Checked)
	assert.Empty(t, searcher.gotQuery)

	result = NewVideoSignal(searcher, time.Second).Check(context.Background(), "Midnight Drive")
	assert.Zero(t, result.Score)
	assert.False(t, result.Unavailable)
	assert.NotNil(t, result.Matches)
}
