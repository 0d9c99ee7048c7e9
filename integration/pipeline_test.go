//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blogdex/internal/builder"
	"blogdex/internal/client"
	"blogdex/pkg/logger"
)

const post = `<html><head><title>Scaling Redis Beyond 1TB - Nipuna Perera</title>
<meta name="description" content="How we scaled..."></head><body>
<span class="metadata-value">December 20, 2024</span>
<span class="metadata-value">Database</span>
<span class="metadata-value">Redis, Scaling, Production</span>
<span class="metadata-value">8 min read</span>
</body></html>`

// Builds an index from disk, serves it over HTTP, and consumes it with the
// client: the full producer/consumer contract in one pass.
func TestBuildServeConsume(t *testing.T) {
	root := t.TempDir()
	yearDir := filepath.Join(root, "2024")
	if err := os.MkdirAll(yearDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(yearDir, "redis-scaling.html"), []byte(post), 0o644); err != nil {
		t.Fatal(err)
	}

	b := builder.New(root, logger.NewNop())
	idx, err := b.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if err := b.WriteIndex(idx, filepath.Join(root, "index.json")); err != nil {
		t.Fatalf("write index: %v", err)
	}

	ts := httptest.NewServer(http.FileServer(http.Dir(root)))
	defer ts.Close()

	c := client.New(ts.URL, client.Options{Timeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fetched, err := c.FetchIndex(ctx)
	if err != nil {
		t.Fatalf("fetch index: %v", err)
	}
	if len(fetched.Posts) != 1 {
		t.Fatalf("want 1 post, got %d", len(fetched.Posts))
	}

	got, err := c.GetPostByID(ctx, "redis-scaling")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Title != "Scaling Redis Beyond 1TB" {
		t.Fatalf("unexpected title %q", got.Title)
	}

	source, err := c.FetchPostSource(ctx, got.Path)
	if err != nil {
		t.Fatalf("fetch source: %v", err)
	}
	if len(source) == 0 {
		t.Fatal("empty post source")
	}
}
