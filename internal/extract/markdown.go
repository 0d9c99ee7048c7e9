package extract

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"blogdex/internal/models"
)

// frontmatterData mirrors the YAML header carried by markdown posts.
type frontmatterData struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	ReadTime    string   `yaml:"readTime"`
}

var (
	headingRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	goalRe    = regexp.MustCompile(`\*\*Goal:\*\*\s*([^\n]+)`)
)

// FromMarkdown extracts a BlogPost from a markdown post. Frontmatter fields
// win; a missing title falls back to the first H1, a missing description to
// the "**Goal:**" line. Returns nil when no title can be found at all;
// like FromHTML, extraction is best effort and never panics out to the
// caller.
func FromMarkdown(content []byte, filename, year string) (post *models.BlogPost) {
	defer func() {
		if recover() != nil {
			post = nil
		}
	}()

	var fm frontmatterData
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		// No parsable frontmatter; treat the whole file as markdown.
		body = content
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		if m := headingRe.FindSubmatch(body); m != nil {
			title = strings.TrimSpace(string(m[1]))
		}
	}
	if title == "" {
		return nil
	}
	title = strings.TrimSpace(strings.TrimSuffix(title, titleSuffix))

	excerpt := strings.TrimSpace(fm.Description)
	if excerpt == "" {
		if m := goalRe.FindSubmatch(body); m != nil {
			excerpt = strings.TrimSpace(string(m[1]))
		}
	}

	category := ""
	if isKnownCategory(fm.Category) {
		category = fm.Category
	}

	tags := make([]string, 0, len(fm.Tags))
	for _, t := range fm.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	readTime := strings.TrimSpace(fm.ReadTime)
	if !strings.Contains(readTime, readTimeMarker) {
		readTime = DefaultReadTime
	}

	return &models.BlogPost{
		ID:       strings.TrimSuffix(filename, filepath.Ext(filename)),
		Title:    title,
		Excerpt:  excerpt,
		Date:     strings.TrimSpace(fm.Date),
		Category: category,
		Tags:     tags,
		ReadTime: readTime,
		Author:   Author,
		Path:     year + "/" + filename,
	}
}
