package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hartlco/masto-rss/app/timeline"
	"github.com/hartlco/masto-rss/app/upstream"
)

const DefaultServiceURL = "https://bsky.social"

const (
	createSessionPath = "/xrpc/com.atproto.server.createSession"
	getTimelinePath   = "/xrpc/app.bsky.feed.getTimeline?limit=40"
)

const maxResponseBytes = 10 << 20

// AuthMode selects how a timeline request authenticates: with the process-wide
// account credentials, or with a bearer token supplied per request. Both modes
// share one fetch-and-normalize path.
type AuthMode int

const (
	AuthBearerToken AuthMode = iota
	AuthCredentials
)

type Auth struct {
	Mode  AuthMode
	Token string // required for AuthBearerToken, ignored otherwise
}

type Client struct {
	httpClient *http.Client
	serviceURL string
	userAgent  string
	identifier string
	password   string
}

func NewClient(serviceURL, userAgent, identifier, password string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		serviceURL: serviceURL,
		userAgent:  userAgent,
		identifier: identifier,
		password:   password,
	}
}

// HomeTimeline fetches one page of the account's timeline and normalizes it.
// In credentials mode a session is created first; its access token is used
// for the timeline call and discarded afterwards.
func (c *Client) HomeTimeline(ctx context.Context, auth Auth) ([]timeline.Post, error) {
	token := auth.Token
	if auth.Mode == AuthCredentials {
		var err error
		token, err = c.createSession(ctx)
		if err != nil {
			return nil, err
		}
	}

	status, body, err := c.do(ctx, http.MethodGet, getTimelinePath, token, nil)
	if err != nil {
		return nil, err
	}

	var resp timelineResponse
	if err := upstream.Classify(status, body, &resp); err != nil {
		return nil, err
	}

	// a JSON object without the feed field decodes fine but is not a timeline
	if resp.Feed == nil {
		return nil, upstream.Unexpected(status, body)
	}

	return normalizeTimeline(resp.Feed), nil
}

func (c *Client) createSession(ctx context.Context) (string, error) {
	payload, err := json.Marshal(createSessionRequest{
		Identifier: c.identifier,
		Password:   c.password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode session request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, createSessionPath, "", payload)
	if err != nil {
		return "", err
	}

	var session createSessionResponse
	if err := upstream.Classify(status, body, &session); err != nil {
		return "", err
	}

	if session.AccessJwt == "" {
		return "", upstream.Unexpected(status, body)
	}

	return session.AccessJwt, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serviceURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to reach upstream: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}
