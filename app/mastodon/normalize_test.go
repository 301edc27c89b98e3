package mastodon

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hartlco/masto-rss/app/timeline"
)

func TestNormalizeStatus(t *testing.T) {
	raw := `{
		"id": "110000000000000001",
		"created_at": "2023-07-03T10:00:00.000Z",
		"content": "<p>Hello fediverse</p>",
		"url": "https://mastodon.social/@alice/110000000000000001",
		"uri": "https://mastodon.social/users/alice/statuses/110000000000000001",
		"account": {
			"display_name": "Alice",
			"acct": "alice",
			"username": "alice"
		},
		"media_attachments": [
			{
				"type": "image",
				"url": "https://files.mastodon.social/a.png",
				"description": "a picture"
			}
		]
	}`

	var status Status
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}

	post, ok := normalizeStatus(status, 0)
	if !ok {
		t.Fatal("Expected status to normalize")
	}

	if post.ID != "110000000000000001" {
		t.Errorf("Expected ID '110000000000000001', got '%s'", post.ID)
	}

	if post.AuthorName != "Alice" || post.AuthorHandle != "alice" {
		t.Errorf("Unexpected author: %s / %s", post.AuthorName, post.AuthorHandle)
	}

	if post.ContentHTML != "<p>Hello fediverse</p>" {
		t.Errorf("Content must stay raw until render time, got '%s'", post.ContentHTML)
	}

	if post.Permalink != "https://mastodon.social/@alice/110000000000000001" {
		t.Errorf("Unexpected permalink: %s", post.Permalink)
	}

	expected := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	if post.CreatedAt == nil || !post.CreatedAt.Equal(expected) {
		t.Errorf("Unexpected created_at: %v", post.CreatedAt)
	}

	if len(post.Media) != 1 {
		t.Fatalf("Expected 1 media item, got %d", len(post.Media))
	}
	if post.Media[0].Kind != timeline.MediaImage || post.Media[0].Alt != "a picture" {
		t.Errorf("Unexpected media: %+v", post.Media[0])
	}
}

func TestNormalizeStatusWithoutIDIsDropped(t *testing.T) {
	statuses := []Status{
		{ID: "", Content: "no id"},
		{ID: "2", Content: "kept"},
	}

	posts := normalizeStatuses(statuses)
	if len(posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(posts))
	}
	if posts[0].ID != "2" {
		t.Errorf("Expected surviving post '2', got '%s'", posts[0].ID)
	}
}

func TestNormalizeReblog(t *testing.T) {
	status := Status{
		ID:      "2",
		Account: Account{DisplayName: "Booster", Acct: "booster"},
		Reblog: &Status{
			ID:      "1",
			Content: "original",
			Account: Account{DisplayName: "Author", Acct: "author"},
		},
	}

	post, ok := normalizeStatus(status, 0)
	if !ok {
		t.Fatal("Expected status to normalize")
	}

	if post.Repost == nil {
		t.Fatal("Expected repost to be preserved")
	}
	if post.Repost.ID != "1" || post.Repost.ContentHTML != "original" {
		t.Errorf("Unexpected repost: %+v", post.Repost)
	}
}

func TestNormalizeCapsNestingDepth(t *testing.T) {
	// reblog-of-reblog: upstream only nests one level, but a hostile payload
	// is not trusted to honor that
	status := Status{
		ID:      "3",
		Account: Account{Acct: "outer"},
		Reblog: &Status{
			ID:      "2",
			Account: Account{Acct: "middle"},
			Reblog: &Status{
				ID:      "1",
				Account: Account{Acct: "inner"},
			},
		},
	}

	post, ok := normalizeStatus(status, 0)
	if !ok {
		t.Fatal("Expected status to normalize")
	}

	if post.Repost == nil {
		t.Fatal("First level of nesting should survive")
	}
	if post.Repost.Repost != nil {
		t.Error("Nesting beyond the depth cap must be discarded")
	}
}

func TestNormalizeSelfReferentialStatusTerminates(t *testing.T) {
	status := Status{ID: "1", Account: Account{Acct: "loop"}}
	status.Reblog = &status

	done := make(chan struct{})
	go func() {
		normalizeStatus(status, 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Normalization did not terminate on a self-referential status")
	}
}

func TestNormalizeQuote(t *testing.T) {
	status := Status{
		ID:      "2",
		Content: "my commentary",
		Account: Account{Acct: "commenter"},
		Quote: &Quote{
			State: "accepted",
			QuotedStatus: &Status{
				ID:      "1",
				Content: "quoted text",
				URL:     "https://mastodon.social/@author/1",
				Account: Account{DisplayName: "Quoted Author", Acct: "author"},
			},
		},
	}

	post, ok := normalizeStatus(status, 0)
	if !ok {
		t.Fatal("Expected status to normalize")
	}

	if post.Quote == nil {
		t.Fatal("Expected quote to be preserved")
	}
	if post.Quote.AuthorName != "Quoted Author" {
		t.Errorf("Unexpected quoted author: %s", post.Quote.AuthorName)
	}
	if post.Repost != nil {
		t.Error("Quote must not be treated as a repost")
	}
}

func TestNormalizeAttachments(t *testing.T) {
	status := Status{
		ID:      "1",
		Account: Account{Acct: "a"},
		MediaAttachments: []MediaAttachment{
			{Type: "image", URL: "https://files.example.com/a.png"},
			{Type: "image", URL: "", RemoteURL: "https://remote.example.com/b.png"},
			{Type: "image"}, // no URL at all: dropped
			{Type: "video", URL: "https://files.example.com/c.mp4", PreviewURL: "https://files.example.com/c.jpg"},
			{Type: "audio", URL: "https://files.example.com/d.mp3"},  // unsupported kind
			{Type: "image", URL: "javascript:alert(1)"},              // unsafe scheme
		},
	}

	post, _ := normalizeStatus(status, 0)

	if len(post.Media) != 3 {
		t.Fatalf("Expected 3 media items, got %d: %+v", len(post.Media), post.Media)
	}

	if post.Media[0].URL != "https://files.example.com/a.png" {
		t.Errorf("Unexpected first media URL: %s", post.Media[0].URL)
	}

	if post.Media[1].URL != "https://remote.example.com/b.png" {
		t.Errorf("Expected remote_url fallback, got: %s", post.Media[1].URL)
	}

	if post.Media[2].Kind != timeline.MediaVideo || post.Media[2].Thumbnail != "https://files.example.com/c.jpg" {
		t.Errorf("Unexpected video media: %+v", post.Media[2])
	}
}

func TestNormalizeUnparsableTimestamp(t *testing.T) {
	status := Status{ID: "1", CreatedAt: "not-a-date", Account: Account{Acct: "a"}}

	post, _ := normalizeStatus(status, 0)
	if post.CreatedAt != nil {
		t.Error("Unparsable created_at should leave CreatedAt nil")
	}
}
