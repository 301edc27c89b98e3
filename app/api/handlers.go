package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hartlco/masto-rss/app/bluesky"
	"github.com/hartlco/masto-rss/app/feed"
	"github.com/hartlco/masto-rss/app/timeline"
	"github.com/hartlco/masto-rss/app/upstream"
)

// internalErrorMessage is the only text ever returned for render/serialize
// failures; details go to the log.
const internalErrorMessage = "An internal error occurred. Please try again later."

const rssContentType = "application/rss+xml; charset=utf-8"

func NewHandler(mastodonFetcher MastodonFetcher, blueskyFetcher BlueskyFetcher,
	hasCredentials bool, version string) *Handler {
	return &Handler{
		mastodon:       mastodonFetcher,
		bluesky:        blueskyFetcher,
		generator:      feed.NewGenerator(),
		hasCredentials: hasCredentials,
		version:        version,
	}
}

// GetMastodonFeed serves GET /:instance/:token. Validation happens before any
// network call; an invalid hostname never reaches the upstream client.
func (h *Handler) GetMastodonFeed(c *gin.Context) {
	instanceURL, err := upstream.ValidateInstance(c.Param("instance"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	token := c.Param("token")
	if token == "" {
		c.String(http.StatusBadRequest, "access token is required")
		return
	}

	posts, err := h.mastodon.HomeTimeline(c.Request.Context(), instanceURL, token)
	if err != nil {
		h.renderFetchError(c, err)
		return
	}

	h.renderFeed(c, feed.Metadata{
		Title:       "Mastodon Timeline",
		Link:        instanceURL,
		Description: "Mastodon Timeline",
	}, posts)
}

// GetBlueskyFeed serves GET /bluesky/:token.
func (h *Handler) GetBlueskyFeed(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.String(http.StatusBadRequest, "access token is required")
		return
	}

	h.serveBlueskyFeed(c, bluesky.Auth{Mode: bluesky.AuthBearerToken, Token: token})
}

// GetBlueskyCredentialsFeed serves GET /bluesky using the process-wide
// account configured via BLUESKY_IDENTIFIER/BLUESKY_PASSWORD.
func (h *Handler) GetBlueskyCredentialsFeed(c *gin.Context) {
	if !h.hasCredentials {
		c.String(http.StatusBadRequest, "Bluesky credentials are not configured; use /bluesky/<token>")
		return
	}

	h.serveBlueskyFeed(c, bluesky.Auth{Mode: bluesky.AuthCredentials})
}

func (h *Handler) serveBlueskyFeed(c *gin.Context, auth bluesky.Auth) {
	posts, err := h.bluesky.HomeTimeline(c.Request.Context(), auth)
	if err != nil {
		h.renderFetchError(c, err)
		return
	}

	h.renderFeed(c, feed.Metadata{
		Title:       "Bluesky Timeline",
		Link:        "https://bsky.app/",
		Description: "Bluesky Timeline",
	}, posts)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   h.version,
	})
}

func (h *Handler) renderFeed(c *gin.Context, metadata feed.Metadata, posts []timeline.Post) {
	rss, err := h.generator.Run(metadata, feed.ItemsFromPosts(posts))
	if err != nil {
		slog.Error("RSS generation error", "feed", metadata.Title, "error", err)
		c.String(http.StatusInternalServerError, internalErrorMessage)
		return
	}

	c.Data(http.StatusOK, rssContentType, []byte(rss))
}

func (h *Handler) renderFetchError(c *gin.Context, err error) {
	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		slog.Error("Upstream request failed",
			"status", upstreamErr.StatusCode, "message", upstreamErr.Message)
		c.String(http.StatusBadGateway, upstreamErr.Message)
		return
	}

	// transport-level failure with no classified message
	slog.Error("Timeline fetch failed", "error", err)
	c.String(http.StatusBadGateway, "upstream request failed, please try again later")
}
