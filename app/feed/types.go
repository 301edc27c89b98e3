package feed

import (
	"time"

	"github.com/hartlco/masto-rss/app/timeline"
)

// Metadata describes the RSS channel.
type Metadata struct {
	Title       string
	Link        string
	Description string
}

// Item is one renderable feed entry: a flattened post plus its pre-rendered
// HTML description.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string // HTML fragment produced by timeline.Render
	PublishedAt *time.Time
	Media       []timeline.Media
}

// ItemsFromPosts renders each post and flattens it into feed items,
// preserving input order. Posts without an identifier have already been
// dropped during normalization.
func ItemsFromPosts(posts []timeline.Post) []Item {
	items := make([]Item, 0, len(posts))
	for _, post := range posts {
		items = append(items, Item{
			GUID:        post.ID,
			Title:       post.DisplayName(),
			Link:        post.Permalink,
			Description: timeline.Render(post),
			PublishedAt: post.CreatedAt,
			Media:       post.Media,
		})
	}
	return items
}
