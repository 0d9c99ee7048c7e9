package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "blogs", cfg.Build.Root)
	assert.Equal(t, 5*time.Minute, cfg.Client.CacheTTL.Std())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	content := `
site:
  title: Another Blog
  author: Someone Else
build:
  root: posts
client:
  timeout: 3s
  attempts: 5
  cache_ttl: 30s
server:
  addr: ":9000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Another Blog", cfg.Site.Title)
	assert.Equal(t, "Someone Else", cfg.Site.Author)
	assert.Equal(t, "posts", cfg.Build.Root)
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout.Std())
	assert.Equal(t, 5, cfg.Client.Attempts)
	assert.Equal(t, 30*time.Second, cfg.Client.CacheTTL.Std())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	// untouched sections keep their defaults
	assert.Equal(t, "index.json", cfg.Build.IndexFile)
	assert.Equal(t, Default().Site.Email, cfg.Site.Email)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  timeout: soon\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
