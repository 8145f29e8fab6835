package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/rs/zerolog/log"
)

// maximum bytes of an error body kept in an error message
const maxErrorBody = 512

// apiError is the error envelope shared by the Google APIs and SerpApi
type apiError struct {
	Error json.RawMessage `json:"error"`
}

// httpClient performs JSON GET requests against a search API
type httpClient struct {
	baseURL    string
	provider   string
	httpClient *http.Client
}

func newHTTPClient(baseURL, provider string, timeout time.Duration) httpClient {
	return httpClient{
		baseURL:  baseURL,
		provider: provider,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c httpClient) getJSON(ctx context.Context, params url.Values, out interface{}) error {
	endpoint := c.baseURL + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s request failed: %v", models.ErrExternalSignalUnavailable, c.provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiError
		if err := json.Unmarshal(body, &errResp); err == nil && len(errResp.Error) > 0 {
			return fmt.Errorf("%w: %s API error (status %d): %s",
				models.ErrExternalSignalUnavailable, c.provider, resp.StatusCode, truncate(string(errResp.Error)))
		}
		return fmt.Errorf("%w: %s unexpected status code %d: %s",
			models.ErrExternalSignalUnavailable, c.provider, resp.StatusCode, truncate(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", c.provider, err)
	}

	log.Trace().
		Str("provider", c.provider).
		Int("bytes", len(body)).
		Msg("External search response received")

	return nil
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}
