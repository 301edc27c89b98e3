package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"mime"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hartlco/masto-rss/app/timeline"
)

const mediaNamespace = "http://search.yahoo.com/mrss/"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run serializes channel metadata and an ordered item list into an RSS 2.0
// document. Item order is preserved exactly. The media extension namespace is
// declared only when at least one item actually carries media, so consumers
// can always resolve the media:content elements they encounter.
func (g *Generator) Run(metadata Metadata, items []Item) (string, error) {
	if err := validateMetadata(metadata); err != nil {
		return "", fmt.Errorf("failed to build channel: %w", err)
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	if hasMedia(items) {
		buf.WriteString(fmt.Sprintf(`<rss version="2.0" xmlns:media="%s">`, mediaNamespace))
	} else {
		buf.WriteString(`<rss version="2.0">`)
	}
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", metadata.Title, 4)
	g.writeElement(&buf, "link", metadata.Link, 4)
	g.writeElement(&buf, "description", metadata.Description, 4)

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, item Item) {
	buf.WriteString("    <item>\n")

	if item.GUID != "" {
		buf.WriteString(`      <guid isPermaLink="false">`)
		xml.EscapeText(buf, []byte(item.GUID))
		buf.WriteString("</guid>\n")
	}

	if item.Title != "" {
		g.writeElement(buf, "title", item.Title, 6)
	}

	if item.Link != "" {
		g.writeElement(buf, "link", item.Link, 6)
	}

	g.writeElement(buf, "description", item.Description, 6)

	// pubDate only when the upstream timestamp parsed; never defaulted
	if item.PublishedAt != nil {
		g.writeElement(buf, "pubDate", item.PublishedAt.Format(time.RFC1123Z), 6)
	}

	g.writeEnclosure(buf, item)

	for _, media := range item.Media {
		if media.URL == "" {
			continue
		}
		medium := "image"
		if media.Kind == timeline.MediaVideo {
			medium = "video"
		}
		buf.WriteString(fmt.Sprintf("      <media:content url=\"%s\" medium=\"%s\" />\n",
			html.EscapeString(media.URL), medium))
	}

	buf.WriteString("    </item>\n")
}

// writeEnclosure emits the single RSS 2.0 enclosure for the first media item
// whose MIME type is derivable from its URL. The upstream APIs report neither
// length nor type, so length is 0 and items with unguessable types get only
// the media:content element.
func (g *Generator) writeEnclosure(buf *bytes.Buffer, item Item) {
	for _, media := range item.Media {
		if media.URL == "" {
			continue
		}
		mimeType := mime.TypeByExtension(path.Ext(media.URL))
		if mimeType == "" {
			continue
		}
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(media.URL), html.EscapeString(mimeType)))
		return
	}
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func validateMetadata(metadata Metadata) error {
	for name, value := range map[string]string{
		"title":       metadata.Title,
		"link":        metadata.Link,
		"description": metadata.Description,
	} {
		if !utf8.ValidString(value) {
			return fmt.Errorf("channel %s is not valid UTF-8", name)
		}
		if strings.ContainsFunc(value, isXMLIllegal) {
			return fmt.Errorf("channel %s contains characters not allowed in XML", name)
		}
	}
	return nil
}

// isXMLIllegal reports control characters that XML 1.0 forbids entirely.
func isXMLIllegal(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' && r != '\r'
}

func hasMedia(items []Item) bool {
	for _, item := range items {
		for _, media := range item.Media {
			if media.URL != "" {
				return true
			}
		}
	}
	return false
}
