// Package config loads site configuration from an optional YAML file,
// falling back to built-in defaults so the tools run with no arguments.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "10s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// SiteConfig describes the site itself; it feeds the RSS channel and the
// fixed author attribution on every post.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	Author      string `yaml:"author"`
	Email       string `yaml:"email"`
}

// BuildConfig holds index builder settings.
type BuildConfig struct {
	Root      string `yaml:"root"`       // blog content root
	IndexFile string `yaml:"index_file"` // written inside Root
	FeedFile  string `yaml:"feed_file"`  // written next to Root
}

// ClientConfig holds index consumer settings.
type ClientConfig struct {
	Endpoint  string   `yaml:"endpoint"`
	Timeout   Duration `yaml:"timeout"`    // limit for a single attempt
	Attempts  int      `yaml:"attempts"`   // total attempts, not retries
	BaseDelay Duration `yaml:"base_delay"` // doubled on each retry
	CacheTTL  Duration `yaml:"cache_ttl"`
}

// ServerConfig holds site server settings.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	SiteDir string `yaml:"site_dir"`
}

type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Build  BuildConfig  `yaml:"build"`
	Client ClientConfig `yaml:"client"`
	Server ServerConfig `yaml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:       "Nipuna Perera - Blog",
			Link:        "https://github.com/nipunap/nipunap",
			Description: "Senior Staff Database Reliability Engineer specializing in managing complex database environments, ensuring high availability and performance at scale.",
			Language:    "en-us",
			Author:      "Nipuna Perera",
			Email:       "nipunap@gmail.com",
		},
		Build: BuildConfig{
			Root:      "blogs",
			IndexFile: "index.json",
			FeedFile:  "feed.xml",
		},
		Client: ClientConfig{
			Endpoint:  "/blogs",
			Timeout:   Duration(10 * time.Second),
			Attempts:  3,
			BaseDelay: Duration(time.Second),
			CacheTTL:  Duration(5 * time.Minute),
		},
		Server: ServerConfig{
			Addr:    ":8080",
			SiteDir: ".",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
