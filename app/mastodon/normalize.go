package mastodon

import (
	"cmp"
	"time"

	"github.com/hartlco/masto-rss/app/timeline"
)

// normalizeStatuses converts raw statuses into platform-agnostic posts,
// dropping records without an identifier.
func normalizeStatuses(statuses []Status) []timeline.Post {
	posts := make([]timeline.Post, 0, len(statuses))
	for _, status := range statuses {
		if post, ok := normalizeStatus(status, 0); ok {
			posts = append(posts, post)
		}
	}
	return posts
}

func normalizeStatus(status Status, depth int) (timeline.Post, bool) {
	if status.ID == "" {
		return timeline.Post{}, false
	}

	post := timeline.Post{
		ID:           status.ID,
		AuthorName:   status.Account.DisplayName,
		AuthorHandle: cmp.Or(status.Account.Acct, status.Account.Username),
		ContentHTML:  status.Content,
		Permalink:    cmp.Or(timeline.SafeURL(status.URL), timeline.SafeURL(status.URI)),
	}

	if ts, err := time.Parse(time.RFC3339, status.CreatedAt); err == nil {
		post.CreatedAt = &ts
	}

	// the depth cap is enforced here, not in the renderer: a pathological
	// self-referential payload must not survive normalization
	if depth < timeline.MaxNestingDepth {
		if status.Reblog != nil {
			if inner, ok := normalizeStatus(*status.Reblog, depth+1); ok {
				post.Repost = &inner
			}
		}
		if status.Quote != nil && status.Quote.QuotedStatus != nil {
			if inner, ok := normalizeStatus(*status.Quote.QuotedStatus, depth+1); ok {
				post.Quote = &inner
			}
		}
	}

	for _, attachment := range status.MediaAttachments {
		if media, ok := normalizeAttachment(attachment); ok {
			post.Media = append(post.Media, media)
		}
	}

	return post, true
}

func normalizeAttachment(attachment MediaAttachment) (timeline.Media, bool) {
	url := cmp.Or(timeline.SafeURL(attachment.URL), timeline.SafeURL(attachment.RemoteURL))
	if url == "" {
		return timeline.Media{}, false
	}

	switch attachment.Type {
	case "image":
		return timeline.Media{
			URL:  url,
			Kind: timeline.MediaImage,
			Alt:  attachment.Description,
		}, true
	case "video", "gifv":
		return timeline.Media{
			URL:       url,
			Kind:      timeline.MediaVideo,
			Alt:       attachment.Description,
			Thumbnail: timeline.SafeURL(attachment.PreviewURL),
		}, true
	}

	// audio and unknown attachment types have no rendering
	return timeline.Media{}, false
}
