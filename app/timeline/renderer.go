package timeline

import (
	"fmt"
	"html"
	"strings"
)

// maxRenderDepth is a second line of defense behind MaxNestingDepth: even if
// a normalizer ever produced a deeper chain, rendering still terminates.
const maxRenderDepth = 3

// Render converts one post into an HTML fragment suitable as an RSS item
// description. All text fields are escaped here, exactly once; URLs have
// already passed SafeURL during normalization.
func Render(p Post) string {
	return render(p, 0)
}

func render(p Post, depth int) string {
	var fragments []string

	base := "<p>" + html.EscapeString(p.ContentHTML) + "</p>"
	if p.Quote != nil && depth < maxRenderDepth {
		base += "\n" + renderQuote(*p.Quote)
	}
	fragments = append(fragments, base)

	if p.Repost != nil && depth < maxRenderDepth {
		fragments = append(fragments, fmt.Sprintf("%s:\n<blockquote>%s</blockquote>",
			html.EscapeString(p.DisplayName()), render(*p.Repost, depth+1)))
	}

	for _, media := range p.Media {
		if fragment := renderMedia(media); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}

	return strings.Join(fragments, "\n")
}

// renderQuote emits a compact block-quote for a quoted post: author name,
// the quoted text when non-blank, and a link to the quoted post when one
// exists. The author line is always present.
func renderQuote(q Post) string {
	parts := []string{"<p>" + html.EscapeString(q.DisplayName()) + "</p>"}

	if strings.TrimSpace(q.ContentHTML) != "" {
		parts = append(parts, "<p>"+html.EscapeString(q.ContentHTML)+"</p>")
	}

	if q.Permalink != "" {
		parts = append(parts, fmt.Sprintf(`<p><a href="%s">View quoted post</a></p>`, q.Permalink))
	}

	return "<blockquote>" + strings.Join(parts, "\n") + "</blockquote>"
}

func renderMedia(m Media) string {
	if m.URL == "" {
		return ""
	}

	switch m.Kind {
	case MediaImage:
		return fmt.Sprintf(`<img src="%s" alt="%s">`, m.URL, html.EscapeString(m.Alt))
	case MediaVideo:
		link := fmt.Sprintf(`<p><a href="%s">Watch video</a></p>`, m.URL)
		if m.Thumbnail != "" {
			return fmt.Sprintf(`<a href="%s"><img src="%s" alt="%s"></a>`,
				m.URL, m.Thumbnail, html.EscapeString(m.Alt)) + "\n" + link
		}
		return link
	}

	return ""
}
