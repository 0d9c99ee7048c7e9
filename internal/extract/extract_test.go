package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePost = `<!doctype html><html lang="en"><head>
<title>Scaling Redis Beyond 1TB - Nipuna Perera</title>
<meta name="description" content="How we scaled...">
</head><body>
<span class="metadata-value">December 20, 2024</span>
<span class="metadata-value">Database</span>
<span class="metadata-value">Redis, Scaling, Production</span>
<span class="metadata-value">8 min read</span>
<p>Post body.</p>
</body></html>`

func TestFromHTML(t *testing.T) {
	post := FromHTML([]byte(samplePost), "redis-scaling.html", "2024")
	require.NotNil(t, post)

	assert.Equal(t, "redis-scaling", post.ID)
	assert.Equal(t, "Scaling Redis Beyond 1TB", post.Title)
	assert.Equal(t, "How we scaled...", post.Excerpt)
	assert.Equal(t, "December 20, 2024", post.Date)
	assert.Equal(t, "Database", post.Category)
	assert.Equal(t, []string{"Redis", "Scaling", "Production"}, post.Tags)
	assert.Equal(t, "8 min read", post.ReadTime)
	assert.Equal(t, Author, post.Author)
	assert.Equal(t, "2024/redis-scaling.html", post.Path)
}

func TestFromHTMLNoTitle(t *testing.T) {
	html := `<html><head></head><body><p>untitled</p></body></html>`
	if post := FromHTML([]byte(html), "x.html", "2024"); post != nil {
		t.Fatalf("expected nil for missing title, got %+v", post)
	}
}

func TestFromHTMLDefaults(t *testing.T) {
	html := `<html><head><title>Bare Post</title></head><body></body></html>`
	post := FromHTML([]byte(html), "bare.html", "2023")
	require.NotNil(t, post)

	assert.Equal(t, "Bare Post", post.Title)
	assert.Empty(t, post.Excerpt)
	assert.Empty(t, post.Date)
	assert.Empty(t, post.Category)
	assert.Empty(t, post.Tags)
	assert.NotNil(t, post.Tags)
	assert.Equal(t, DefaultReadTime, post.ReadTime)
}

func TestFromHTMLUnknownCategoryIgnored(t *testing.T) {
	html := `<html><head><title>T</title></head><body>
<span class="metadata-value">Gardening</span>
</body></html>`
	post := FromHTML([]byte(html), "t.html", "2024")
	require.NotNil(t, post)
	assert.Empty(t, post.Category)
}

func TestFromHTMLTagHeuristic(t *testing.T) {
	// Comma-separated but with no known technology name: not a tag list.
	html := `<html><head><title>T</title></head><body>
<span class="metadata-value">Knitting, Pottery, Baking</span>
</body></html>`
	post := FromHTML([]byte(html), "t.html", "2024")
	require.NotNil(t, post)
	assert.Empty(t, post.Tags)
}

func TestFromHTMLGarbage(t *testing.T) {
	if post := FromHTML([]byte("\x00\xff\xfe garbage"), "g.html", "2024"); post != nil {
		// goquery is lenient, but whatever comes back must lack a title
		t.Fatalf("expected nil for garbage input, got %+v", post)
	}
}

const sampleMarkdown = `---
title: Postmortem of a Failover
description: What went wrong during the switchover.
date: March 3, 2025
category: Database
tags: [MySQL, Replication]
readTime: 6 min read
---

# Postmortem of a Failover

Body text.
`

func TestFromMarkdown(t *testing.T) {
	post := FromMarkdown([]byte(sampleMarkdown), "failover-postmortem.md", "2025")
	require.NotNil(t, post)

	assert.Equal(t, "failover-postmortem", post.ID)
	assert.Equal(t, "Postmortem of a Failover", post.Title)
	assert.Equal(t, "What went wrong during the switchover.", post.Excerpt)
	assert.Equal(t, "March 3, 2025", post.Date)
	assert.Equal(t, "Database", post.Category)
	assert.Equal(t, []string{"MySQL", "Replication"}, post.Tags)
	assert.Equal(t, "6 min read", post.ReadTime)
	assert.Equal(t, "2025/failover-postmortem.md", post.Path)
}

func TestFromMarkdownFallbacks(t *testing.T) {
	md := "# Heading Title\n\n**Goal:** Keep the lights on.\n\nMore text.\n"
	post := FromMarkdown([]byte(md), "notes.md", "2024")
	require.NotNil(t, post)

	assert.Equal(t, "Heading Title", post.Title)
	assert.Equal(t, "Keep the lights on.", post.Excerpt)
	assert.Equal(t, DefaultReadTime, post.ReadTime)
}

func TestFromMarkdownMalformedFrontmatter(t *testing.T) {
	// A header that fails YAML decoding must degrade to plain markdown,
	// never escape the extractor.
	md := "---\ntags: {jagged: [\n---\n\n# Still Titled\n"
	post := FromMarkdown([]byte(md), "odd.md", "2024")
	require.NotNil(t, post)
	assert.Equal(t, "Still Titled", post.Title)
	assert.Empty(t, post.Tags)
}

func TestFromMarkdownNoTitle(t *testing.T) {
	if post := FromMarkdown([]byte("just a paragraph\n"), "x.md", "2024"); post != nil {
		t.Fatalf("expected nil for untitled markdown, got %+v", post)
	}
}
