package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"blogdex/internal/config"
	dErrors "blogdex/internal/errors"
	"blogdex/internal/render"
	"blogdex/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "site.yaml", "site configuration file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	siteDir := flag.String("site", "", "site root directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(2)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *siteDir != "" {
		cfg.Server.SiteDir = *siteDir
	}

	l := logger.New()
	defer l.Sync()

	rend := render.New()
	blogRoot := filepath.Join(cfg.Server.SiteDir, cfg.Build.Root)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Post sources and the index artifact. The index is always served with
	// no-store so a stale post listing can never be cached.
	mux.HandleFunc("/blogs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		rel := path.Clean(strings.TrimPrefix(r.URL.Path, "/blogs/"))
		if rel == "." || strings.HasPrefix(rel, "..") {
			http.Error(w, dErrors.CodeNotFound.UserMessage(), http.StatusNotFound)
			return
		}
		full := filepath.Join(blogRoot, filepath.FromSlash(rel))

		if rel == cfg.Build.IndexFile {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, full)
			return
		}

		if strings.HasSuffix(rel, ".md") && r.URL.Query().Get("render") == "1" {
			source, err := os.ReadFile(full)
			if err != nil {
				http.Error(w, dErrors.CodeNotFound.UserMessage(), http.StatusNotFound)
				return
			}
			html, err := rend.RenderPost(source)
			if err != nil {
				l.Errorf("render %s: %v", rel, err)
				http.Error(w, dErrors.CodeParse.UserMessage(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(html)
			return
		}

		http.ServeFile(w, r, full)
	})

	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		http.ServeFile(w, r, filepath.Join(cfg.Server.SiteDir, cfg.Build.FeedFile))
	})

	mux.Handle("/", http.FileServer(http.Dir(cfg.Server.SiteDir)))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      logRequest(l, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Infof("server listening on %s, serving %s", cfg.Server.Addr, cfg.Server.SiteDir)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		l.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
