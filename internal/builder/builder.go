// Package builder walks the blog content root, extracts metadata from every
// post under the four-digit year directories, and emits the aggregate index
// artifact as pretty-printed JSON.
package builder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"blogdex/internal/errors"
	"blogdex/internal/extract"
	"blogdex/internal/models"
	"blogdex/pkg/logger"
)

var yearDirRe = regexp.MustCompile(`^\d{4}$`)

type Builder struct {
	root string
	log  *logger.Logger
}

func New(root string, log *logger.Logger) *Builder {
	return &Builder{root: root, log: log}
}

// Scan enumerates year directories newest first and extracts every post.
// A failed post or an unreadable year directory is logged and skipped; a
// failure to read the root itself is fatal. The returned index is fully
// deterministic for unchanged input.
func (b *Builder) Scan() (*models.BlogIndex, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, errors.Wrap(errors.CodeIO, err, "read blog root %s", b.root)
	}

	var years []string
	for _, e := range entries {
		if e.IsDir() && yearDirRe.MatchString(e.Name()) {
			years = append(years, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	posts := []models.BlogPost{}
	byCategory := map[string]int{}
	byTag := map[string]int{}

	for _, year := range years {
		n, err := b.scanYear(year, &posts, byCategory, byTag)
		if err != nil {
			b.log.Warnf("skipping year %s: %v", year, err)
			continue
		}
		b.log.Infof("scanned %s: %d posts", year, n)
	}

	sortPosts(posts)
	return &models.BlogIndex{
		Posts:      posts,
		Categories: categoryCounts(byCategory),
		Tags:       tagCounts(byTag),
	}, nil
}

// scanYear extracts every post under one year directory. An absent or
// unreadable directory is a directory-missing-class error; the caller treats
// it as zero posts for that year.
func (b *Builder) scanYear(year string, posts *[]models.BlogPost, byCategory, byTag map[string]int) (int, error) {
	dir := filepath.Join(b.root, year)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrap(errors.CodeDirectoryMissing, err, "read year directory %s", dir)
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".html" && ext != ".md" {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			b.log.Errorf("read %s/%s: %v", year, name, err)
			continue
		}

		var post *models.BlogPost
		if ext == ".html" {
			post = extract.FromHTML(content, name, year)
		} else {
			post = extract.FromMarkdown(content, name, year)
		}
		if post == nil {
			b.log.Errorf("no usable metadata in %s/%s, skipped", year, name)
			continue
		}

		*posts = append(*posts, *post)
		if post.Category != "" {
			byCategory[post.Category]++
		}
		for _, t := range post.Tags {
			byTag[t]++
		}
		n++
	}
	return n, nil
}

// WriteIndex writes the index as pretty-printed JSON. A write failure is
// fatal to the build.
func (b *Builder) WriteIndex(idx *models.BlogIndex, path string) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.Wrap(errors.CodeIO, err, "encode index")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.CodeIO, err, "write index %s", path)
	}
	return nil
}

// sortPosts orders posts newest first by their best-effort parsed date.
// Unparsable dates sort to the end; the sort is stable so posts with
// identical date strings keep their scan order.
func sortPosts(posts []models.BlogPost) {
	keys := make([]time.Time, len(posts))
	for i := range posts {
		keys[i] = parseDate(posts[i].Date)
	}
	idx := make([]int, len(posts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]].After(keys[idx[j]])
	})
	sorted := make([]models.BlogPost, len(posts))
	for i, k := range idx {
		sorted[i] = posts[k]
	}
	copy(posts, sorted)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func categoryCounts(m map[string]int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(m))
	for name, n := range m {
		out = append(out, models.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Name < out[j].Name
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func tagCounts(m map[string]int) []models.TagCount {
	out := make([]models.TagCount, 0, len(m))
	for name, n := range m {
		out = append(out, models.TagCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Name < out[j].Name
		}
		return out[i].Count > out[j].Count
	})
	return out
}
