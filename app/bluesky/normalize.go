package bluesky

import (
	"strings"
	"time"

	"github.com/hartlco/masto-rss/app/timeline"
)

func normalizeTimeline(feed []FeedViewPost) []timeline.Post {
	posts := make([]timeline.Post, 0, len(feed))
	for _, entry := range feed {
		post, ok := normalizePostView(entry.Post)
		if !ok {
			continue
		}

		if entry.Reason != nil && entry.Reason.Type == reasonRepost && entry.Reason.By != nil {
			post = wrapRepost(post, *entry.Reason)
		}

		posts = append(posts, post)
	}
	return posts
}

// wrapRepost turns a timeline entry that was boosted into a wrapper post
// attributed to the reposting actor. The wrapper GUID is derived from the
// inner URI plus the reposter, so the same post boosted by two follows still
// yields two distinct feed items.
func wrapRepost(inner timeline.Post, reason Reason) timeline.Post {
	wrapper := timeline.Post{
		ID:           inner.ID + "#repost-" + reason.By.DID,
		AuthorName:   reason.By.DisplayName,
		AuthorHandle: reason.By.Handle,
		Permalink:    inner.Permalink,
		CreatedAt:    inner.CreatedAt,
		Repost:       &inner,
	}

	if ts, err := time.Parse(time.RFC3339, reason.IndexedAt); err == nil {
		wrapper.CreatedAt = &ts
	}

	return wrapper
}

func normalizePostView(view PostView) (timeline.Post, bool) {
	if view.URI == "" {
		return timeline.Post{}, false
	}

	post := timeline.Post{
		ID:           view.URI,
		AuthorName:   view.Author.DisplayName,
		AuthorHandle: view.Author.Handle,
		ContentHTML:  view.Record.Text,
		Permalink:    postPermalink(view.Author.Handle, view.URI),
	}

	if ts, err := time.Parse(time.RFC3339, view.Record.CreatedAt); err == nil {
		post.CreatedAt = &ts
	}

	if view.Embed != nil {
		applyEmbed(&post, *view.Embed)
	}

	return post, true
}

func applyEmbed(post *timeline.Post, embed Embed) {
	switch embed.Type {
	case embedImagesView:
		for _, img := range embed.Images {
			url := timeline.SafeURL(img.Fullsize)
			if url == "" {
				continue
			}
			post.Media = append(post.Media, timeline.Media{
				URL:       url,
				Kind:      timeline.MediaImage,
				Alt:       img.Alt,
				Thumbnail: timeline.SafeURL(img.Thumb),
			})
		}
	case embedVideoView:
		url := timeline.SafeURL(embed.Playlist)
		if url == "" {
			return
		}
		post.Media = append(post.Media, timeline.Media{
			URL:       url,
			Kind:      timeline.MediaVideo,
			Alt:       embed.Alt,
			Thumbnail: timeline.SafeURL(embed.Thumbnail),
		})
	case embedRecordView:
		if embed.Record != nil {
			applyQuote(post, *embed.Record)
		}
	case embedRecordWithMediaView:
		if embed.Media != nil {
			applyEmbed(post, *embed.Media)
		}
		if embed.Record != nil {
			applyQuote(post, *embed.Record)
		}
	}
}

// applyQuote attaches the quoted record as a nested post. Quote depth is
// naturally bounded to one level because RecordValue carries no embeds of its
// own; whatever the quoted post embedded is not unwrapped further.
func applyQuote(post *timeline.Post, record EmbedRecord) {
	// recordWithMedia nests the view record one level deeper
	if record.Record != nil {
		record = *record.Record
	}

	if record.Author.Handle == "" && record.Author.DisplayName == "" {
		return
	}

	post.Quote = &timeline.Post{
		ID:           record.URI,
		AuthorName:   record.Author.DisplayName,
		AuthorHandle: record.Author.Handle,
		ContentHTML:  record.Value.Text,
		Permalink:    postPermalink(record.Author.Handle, record.URI),
	}
}

// postPermalink builds the human-facing bsky.app URL from an actor handle and
// an AT-URI (at://did:plc:xyz/app.bsky.feed.post/rkey).
func postPermalink(handle, uri string) string {
	if handle == "" || !strings.HasPrefix(uri, "at://") {
		return ""
	}

	rkey := uri[strings.LastIndex(uri, "/")+1:]
	if rkey == "" {
		return ""
	}

	// the handle and rkey are upstream-controlled; run the assembled URL
	// through the same screen as every other upstream URL
	return timeline.SafeURL("https://bsky.app/profile/" + handle + "/post/" + rkey)
}
