// Package offline serves the web shell through a versioned response cache
// so the client keeps working while the origin is unreachable.
package offline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxEntryBytes caps a single cached response body.
const maxEntryBytes = 8 << 20

// DocumentFallback is served for navigations that miss both network and cache.
const DocumentFallback = "/index.html"

// ShellURLs are precached into the shell partition on Install.
var ShellURLs = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/logo192.png",
	"/logo512.png",
	"/favicon.ico",
}

var staticExtensions = map[string]bool{
	".js": true, ".css": true, ".png": true, ".jpg": true, ".jpeg": true,
	".svg": true, ".ico": true, ".webp": true, ".gif": true,
	".woff": true, ".woff2": true, ".ttf": true, ".map": true,
}

// AssetCache is an http.Handler in front of the shell origin.
type AssetCache struct {
	origin  *url.URL
	version string
	store   Storage
	client  *http.Client
	proxy   *httputil.ReverseProxy
	log     zerolog.Logger
}

func NewAssetCache(origin *url.URL, version string, store Storage, client *http.Client) *AssetCache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &AssetCache{
		origin:  origin,
		version: version,
		store:   store,
		client:  client,
		proxy:   httputil.NewSingleHostReverseProxy(origin),
		log:     log.With().Str("component", "offline").Str("version", version).Logger(),
	}
}

func (c *AssetCache) ShellPartition() string { return c.version }

func (c *AssetCache) AssetPartition() string { return c.version + "-assets" }

// Install precaches the shell documents. Every URL must load.
func (c *AssetCache) Install(ctx context.Context) error {
	if s, ok := c.store.(interface{ Create(string) }); ok {
		s.Create(c.ShellPartition())
		s.Create(c.AssetPartition())
	}
	for _, p := range ShellURLs {
		e, err := c.fetch(ctx, &url.URL{Path: p})
		if err != nil {
			return fmt.Errorf("precache %s: %w", p, err)
		}
		if e.Status != http.StatusOK {
			return fmt.Errorf("precache %s: status %d", p, e.Status)
		}
		c.store.Put(c.ShellPartition(), p, e)
	}
	c.log.Info().Int("documents", len(ShellURLs)).Msg("Shell precached")
	return nil
}

// Activate deletes every partition not named by the current version.
func (c *AssetCache) Activate() []string {
	keep := map[string]bool{c.ShellPartition(): true, c.AssetPartition(): true}
	var deleted []string
	for _, name := range c.store.Partitions() {
		if keep[name] {
			continue
		}
		if c.store.Delete(name) {
			deleted = append(deleted, name)
		}
	}
	if len(deleted) > 0 {
		c.log.Info().Strs("deleted", deleted).Msg("Stale caches removed")
	}
	return deleted
}

func (c *AssetCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method != http.MethodGet:
		c.proxy.ServeHTTP(w, r)
	case isStatic(r.URL.Path):
		c.serveStatic(w, r)
	case isNavigation(r) || isShellURL(r.URL.Path):
		c.serveNavigation(w, r)
	default:
		c.proxy.ServeHTTP(w, r)
	}
}

// Network first, then cache, then the document fallback.
func (c *AssetCache) serveNavigation(w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r.URL)
	e, err := c.fetch(r.Context(), r.URL)
	if err == nil && e.Status < http.StatusInternalServerError {
		if e.Status == http.StatusOK {
			c.store.Put(c.ShellPartition(), key, e)
		}
		write(w, e)
		return
	}
	if err != nil {
		c.log.Debug().Err(err).Str("path", key).Msg("Navigation offline, using cache")
	}
	if cached, ok := c.store.Get(c.ShellPartition(), key); ok {
		write(w, cached)
		return
	}
	if cached, ok := c.store.Get(c.ShellPartition(), DocumentFallback); ok {
		write(w, cached)
		return
	}
	if err == nil {
		write(w, e)
		return
	}
	http.Error(w, "offline", http.StatusServiceUnavailable)
}

// Cache first, populated on miss.
func (c *AssetCache) serveStatic(w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r.URL)
	for _, partition := range []string{c.AssetPartition(), c.ShellPartition()} {
		if cached, ok := c.store.Get(partition, key); ok {
			write(w, cached)
			return
		}
	}
	e, err := c.fetch(r.Context(), r.URL)
	if err != nil {
		c.log.Debug().Err(err).Str("path", key).Msg("Static asset unavailable")
		http.Error(w, "offline", http.StatusServiceUnavailable)
		return
	}
	if e.Status == http.StatusOK {
		c.store.Put(c.AssetPartition(), key, e)
	}
	write(w, e)
}

// cacheKey identifies a response by path and query, so versioned asset
// URLs never share an entry.
func cacheKey(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}

func (c *AssetCache) fetch(ctx context.Context, target *url.URL) (Entry, error) {
	u := c.origin.ResolveReference(&url.URL{Path: target.Path, RawQuery: target.RawQuery})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Entry{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Entry{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEntryBytes+1))
	if err != nil {
		return Entry{}, err
	}
	if len(body) > maxEntryBytes {
		return Entry{}, fmt.Errorf("%s: response larger than %d bytes", target.Path, maxEntryBytes)
	}
	return Entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}, nil
}

func write(w http.ResponseWriter, e Entry) {
	for k, vs := range e.Header {
		if strings.EqualFold(k, "Content-Length") {
			continue
		}
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(e.Status)
	_, _ = io.Copy(w, bytes.NewReader(e.Body))
}

func isStatic(p string) bool {
	if strings.HasPrefix(p, "/static/") {
		return true
	}
	return staticExtensions[strings.ToLower(path.Ext(p))]
}

func isShellURL(p string) bool {
	for _, u := range ShellURLs {
		if u == p {
			return true
		}
	}
	return false
}

func isNavigation(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
