package api

import (
	"context"

	"github.com/hartlco/masto-rss/app/bluesky"
	"github.com/hartlco/masto-rss/app/feed"
	"github.com/hartlco/masto-rss/app/mastodon"
	"github.com/hartlco/masto-rss/app/timeline"
)

type MastodonFetcher interface {
	HomeTimeline(ctx context.Context, instanceURL, accessToken string) ([]timeline.Post, error)
}

var _ MastodonFetcher = (*mastodon.Client)(nil)

type BlueskyFetcher interface {
	HomeTimeline(ctx context.Context, auth bluesky.Auth) ([]timeline.Post, error)
}

var _ BlueskyFetcher = (*bluesky.Client)(nil)

type GeneratorInterface interface {
	Run(metadata feed.Metadata, items []feed.Item) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

type Handler struct {
	mastodon       MastodonFetcher
	bluesky        BlueskyFetcher
	generator      GeneratorInterface
	hasCredentials bool
	version        string
}
