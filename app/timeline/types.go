package timeline

import (
	"cmp"
	"strings"
	"time"
)

// MaxNestingDepth caps how many levels of repost/quote wrapping survive
// normalization. Upstream APIs nest at most one level themselves, and the cap
// guarantees termination even on a pathological self-referential payload.
const MaxNestingDepth = 1

type MediaKind int

const (
	MediaImage MediaKind = iota
	MediaVideo
)

// Post is the platform-agnostic record the renderer and assembler consume.
// Values are built once per request from upstream JSON and discarded after
// the RSS document is produced.
type Post struct {
	ID           string // stable unique identifier, never empty
	AuthorName   string // display name, may be empty (see DisplayName)
	AuthorHandle string
	ContentHTML  string // raw upstream text, NOT escaped; escaped exactly once at render time
	Permalink    string
	CreatedAt    *time.Time // nil when the upstream timestamp was unparsable
	Repost       *Post
	Quote        *Post
	Media        []Media // insertion order = display order
}

type Media struct {
	URL       string // empty means the item is dropped from output
	Kind      MediaKind
	Alt       string
	Thumbnail string
}

// DisplayName returns the author's display name, falling back to the handle
// when the upstream profile has none.
func (p Post) DisplayName() string {
	return cmp.Or(p.AuthorName, p.AuthorHandle)
}

// SafeURL accepts only plain http/https URLs and returns "" for everything
// else (javascript:, data:, relative paths, attribute-breakout attempts).
// Rejected URLs are treated as absent by the renderer and assembler.
func SafeURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return ""
	}
	if strings.ContainsAny(raw, "\"'<> \t\r\n") {
		return ""
	}
	return raw
}
