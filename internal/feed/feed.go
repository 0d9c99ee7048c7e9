// Package feed generates the RSS 2.0 feed from a built blog index. Posts
// whose publication date cannot be resolved are skipped rather than given a
// fake date.
package feed

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gorilla/feeds"

	"blogdex/internal/config"
	"blogdex/internal/models"
)

type Generator struct {
	site config.SiteConfig
	root string // blog content root, used for git date lookups
	now  func() time.Time
}

func New(site config.SiteConfig, root string) *Generator {
	return &Generator{site: site, root: root, now: time.Now}
}

// Generate renders the feed XML for the given index.
func (g *Generator) Generate(idx *models.BlogIndex) (string, error) {
	editor := fmt.Sprintf("%s (%s)", g.site.Email, g.site.Author)

	f := &feeds.Feed{
		Title:       g.site.Title,
		Link:        &feeds.Link{Href: g.site.Link},
		Description: g.site.Description,
		Author:      &feeds.Author{Name: g.site.Author, Email: g.site.Email},
	}

	var newest time.Time
	for _, post := range idx.Posts {
		published, ok := g.publishedAt(post)
		if !ok {
			continue
		}
		if published.After(newest) {
			newest = published
		}
		url := fmt.Sprintf("%s/blob/main/blogs/%s", g.site.Link, post.Path)
		description := post.Excerpt
		if description == "" {
			description = "Read the full article: " + post.Title
		}
		f.Items = append(f.Items, &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: url},
			Description: description,
			Author:      &feeds.Author{Name: g.site.Author, Email: g.site.Email},
			Id:          url,
			IsPermaLink: "true",
			Created:     published,
		})
	}

	if newest.IsZero() {
		newest = g.now()
	}
	f.Created = newest

	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = g.site.Language
	rss.ManagingEditor = editor
	rss.WebMaster = editor
	return feeds.ToXML(rss)
}

// publishedAt resolves a post's publication time: the extracted date string
// when it parses, otherwise the file's first git commit date.
func (g *Generator) publishedAt(post models.BlogPost) (time.Time, bool) {
	if post.Date != "" {
		if t, err := dateparse.ParseAny(post.Date); err == nil {
			return t, true
		}
	}
	return g.gitDate(post.Path)
}

func (g *Generator) gitDate(relPath string) (time.Time, bool) {
	out, err := exec.Command("git", "-C", g.root, "log", "--format=%aI", "--reverse", "--", relPath).Output()
	if err != nil {
		return time.Time{}, false
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if line == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, line)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
