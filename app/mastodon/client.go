package mastodon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hartlco/masto-rss/app/timeline"
	"github.com/hartlco/masto-rss/app/upstream"
)

// timelinePath is relative to the validated instance base URL. The page size
// of 40 is fixed; there is no pagination.
const timelinePath = "api/v1/timelines/home?limit=40"

const maxResponseBytes = 10 << 20

type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  userAgent,
	}
}

// HomeTimeline fetches one page of the authenticated user's home timeline
// from the given instance and normalizes it. instanceURL must come from
// upstream.ValidateInstance. Failures are classified into user-safe errors.
func (c *Client) HomeTimeline(ctx context.Context, instanceURL, accessToken string) ([]timeline.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, instanceURL+timelinePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeline: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var statuses []Status
	if err := upstream.Classify(resp.StatusCode, body, &statuses); err != nil {
		return nil, err
	}

	return normalizeStatuses(statuses), nil
}
