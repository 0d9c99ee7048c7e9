// Package extract turns a single blog post document into a BlogPost record.
// HTML posts are parsed structurally, but the assignment of date, category,
// tags and read time follows fixed content rules over the flat list of
// marked metadata values, in document order.
package extract

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"blogdex/internal/models"
)

// FromHTML extracts a BlogPost from raw HTML. It returns nil when the
// document has no title element or cannot be parsed; extraction is best
// effort and never panics out to the caller.
func FromHTML(content []byte, filename, year string) (post *models.BlogPost) {
	defer func() {
		if recover() != nil {
			post = nil
		}
	}()

	data := content
	enc, _, _ := charset.DetermineEncoding(data, "text/html")
	if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
		data = decoded
	} else if !utf8.Valid(data) {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return nil
	}
	title = strings.TrimSpace(strings.TrimSuffix(title, titleSuffix))

	excerpt := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))

	var values []string
	doc.Find(metadataValueSelector).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			values = append(values, t)
		}
	})

	return assemble(title, excerpt, values, filename, year)
}

// assemble applies the content rules to the candidate metadata values.
// Each value feeds at most one field; first match wins per field.
func assemble(title, excerpt string, values []string, filename, year string) *models.BlogPost {
	p := &models.BlogPost{
		ID:       strings.TrimSuffix(filename, filepath.Ext(filename)),
		Title:    title,
		Excerpt:  excerpt,
		Tags:     []string{},
		ReadTime: DefaultReadTime,
		Author:   Author,
		Path:     year + "/" + filename,
	}

	readTimeSet := false
	for _, v := range values {
		switch {
		case p.Date == "" && looksLikeDate(v):
			p.Date = v
		case p.Category == "" && isKnownCategory(v):
			p.Category = v
		case len(p.Tags) == 0 && looksLikeTags(v):
			p.Tags = splitTags(v)
		case !readTimeSet && strings.Contains(v, readTimeMarker):
			p.ReadTime = v
			readTimeSet = true
		}
	}
	return p
}
