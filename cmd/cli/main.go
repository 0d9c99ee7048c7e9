package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"blogdex/internal/builder"
	"blogdex/internal/client"
	"blogdex/internal/config"
	"blogdex/internal/feed"
	"blogdex/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "site.yaml", "site configuration file")
	root := flag.String("root", "", "blog content root (overrides config)")
	out := flag.String("out", "", "index output path (default <root>/index.json)")
	withFeed := flag.Bool("feed", true, "also regenerate the RSS feed")
	watch := flag.Bool("watch", false, "stay running and rebuild on changes")
	verify := flag.String("verify", "", "after building, fetch the index from this base URL as a smoke check")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(2)
	}
	if *root != "" {
		cfg.Build.Root = *root
	}
	indexPath := *out
	if indexPath == "" {
		indexPath = filepath.Join(cfg.Build.Root, cfg.Build.IndexFile)
	}
	feedPath := filepath.Join(filepath.Dir(cfg.Build.Root), cfg.Build.FeedFile)

	log := logger.New()
	defer log.Sync()

	b := builder.New(cfg.Build.Root, log)
	gen := feed.New(cfg.Site, cfg.Build.Root)

	run := func() error {
		idx, err := b.Scan()
		if err != nil {
			return err
		}
		if err := b.WriteIndex(idx, indexPath); err != nil {
			return err
		}
		if *withFeed {
			xml, err := gen.Generate(idx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(feedPath, []byte(xml), 0o644); err != nil {
				return fmt.Errorf("write feed %s: %w", feedPath, err)
			}
			log.Infof("feed generated: %s", feedPath)
		}
		log.Infof("indexed %d posts, %d categories, %d tags -> %s",
			len(idx.Posts), len(idx.Categories), len(idx.Tags), indexPath)
		return nil
	}

	if err := run(); err != nil {
		log.Errorf("build failed: %v", err)
		log.Sync()
		os.Exit(1)
	}

	if *verify != "" {
		c := client.New(strings.TrimRight(*verify, "/")+cfg.Client.Endpoint, client.Options{
			Timeout:   cfg.Client.Timeout.Std(),
			Attempts:  cfg.Client.Attempts,
			BaseDelay: cfg.Client.BaseDelay.Std(),
			CacheTTL:  cfg.Client.CacheTTL.Std(),
		})
		idx, err := c.FetchIndex(context.Background())
		if err != nil {
			log.Errorf("verify failed: %v", err)
			log.Sync()
			os.Exit(1)
		}
		log.Infof("verify ok: %d posts served at %s%s", len(idx.Posts), *verify, cfg.Client.Endpoint)
	}

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		log.Infof("watching %s for changes", cfg.Build.Root)
		err := b.Watch(ctx, func() {
			if err := run(); err != nil {
				log.Errorf("rebuild failed: %v", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			log.Errorf("watch failed: %v", err)
			log.Sync()
			os.Exit(1)
		}
	}
}
