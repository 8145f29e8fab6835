package models

// WebResult is one hit from a web search collaborator
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// VideoResult is one hit from a video search collaborator
type VideoResult struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Channel      string `json:"channel"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// SignalResult is an external signal reduced to a score and its matches
type SignalResult struct {
	Score       float64
	Matches     []CandidateMatch
	Checked     int
	Unavailable bool
}
