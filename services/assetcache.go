// services/assetcache.go - Offline Asset Cache (cache-first)
package services

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tracker/models"
)

// DefaultCacheVersion names the current asset cache generation. Bumping it
// (CACHE_VERSION env) invalidates every previously cached asset on the next
// activation.
const DefaultCacheVersion = "rn-tracker-cache-20260104_v6"

// baselineAsset is served when both the cache and the origin fail.
const baselineAsset = "/index.html"

// PrecacheAssets is the fixed asset list warmed during installation.
var PrecacheAssets = []string{
	"/",
	"/index.html",
	"/styles.css",
	"/app.js",
	"/manifest.webmanifest",
	"/icon-192.png",
	"/icon-512.png",
}

// ErrAssetUnavailable means neither the cache, the origin, nor the baseline
// document could produce a response.
var ErrAssetUnavailable = errors.New("asset unavailable")

// CacheStore persists asset entries across restarts.
type CacheStore interface {
	Get(cacheName, path string) (*models.AssetEntry, error)
	Put(entry *models.AssetEntry) error
	List(cacheName string) ([]models.AssetEntry, error)
	PurgeExcept(cacheName string) (int64, error)
}

// AssetCache serves static assets cache-first with origin fallback,
// mirroring the PWA service worker's install/activate/fetch lifecycle. The
// origin is the local static directory.
type AssetCache struct {
	version   string
	staticDir string
	store     CacheStore

	mu  sync.RWMutex
	hot map[string]*models.AssetEntry
}

// NewAssetCache creates the cache for one version generation.
func NewAssetCache(version, staticDir string, store CacheStore) *AssetCache {
	if version == "" {
		version = DefaultCacheVersion
	}
	return &AssetCache{
		version:   version,
		staticDir: staticDir,
		store:     store,
		hot:       make(map[string]*models.AssetEntry),
	}
}

// Version returns the active cache name.
func (a *AssetCache) Version() string {
	return a.version
}

// Install precaches the fixed asset list from the origin. Missing assets
// abort the installation, like a failed cache.addAll.
func (a *AssetCache) Install() error {
	for _, path := range PrecacheAssets {
		entry, err := a.readOrigin(path)
		if err != nil {
			return fmt.Errorf("precache %s: %w", path, err)
		}
		if err := a.put(entry); err != nil {
			return fmt.Errorf("precache %s: %w", path, err)
		}
	}
	log.Printf("✅ Asset cache %s installed (%d assets)", a.version, len(PrecacheAssets))
	return nil
}

// Activate purges every persisted entry belonging to another cache version
// and warms the in-memory map from the surviving rows.
func (a *AssetCache) Activate() error {
	purged, err := a.store.PurgeExcept(a.version)
	if err != nil {
		return fmt.Errorf("purge stale caches: %w", err)
	}
	if purged > 0 {
		log.Printf("🧹 Purged %d stale cache entries", purged)
	}

	entries, err := a.store.List(a.version)
	if err != nil {
		return fmt.Errorf("list cache entries: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.hot = make(map[string]*models.AssetEntry, len(entries))
	for i := range entries {
		e := entries[i]
		a.hot[e.Path] = &e
	}
	return nil
}

// Fetch serves a path cache-first. On a miss the origin is read and the
// response opportunistically stored; when everything fails, the baseline
// document is returned so the app shell still loads offline.
func (a *AssetCache) Fetch(path string) (*models.AssetEntry, error) {
	path = normalizePath(path)

	if entry := a.cached(path); entry != nil {
		return entry, nil
	}

	entry, err := a.readOrigin(path)
	if err == nil {
		if perr := a.put(entry); perr != nil {
			log.Printf("cache store error for %s: %v", path, perr)
		}
		return entry, nil
	}

	if baseline := a.cached(baselineAsset); baseline != nil {
		return baseline, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAssetUnavailable, path)
}

func (a *AssetCache) cached(path string) *models.AssetEntry {
	a.mu.RLock()
	entry := a.hot[path]
	a.mu.RUnlock()
	if entry != nil {
		return entry
	}

	entry, err := a.store.Get(a.version, path)
	if err != nil || entry == nil {
		return nil
	}
	a.mu.Lock()
	a.hot[path] = entry
	a.mu.Unlock()
	return entry
}

func (a *AssetCache) put(entry *models.AssetEntry) error {
	if err := a.store.Put(entry); err != nil {
		return err
	}
	a.mu.Lock()
	a.hot[entry.Path] = entry
	a.mu.Unlock()
	return nil
}

// readOrigin loads an asset from the static directory.
func (a *AssetCache) readOrigin(path string) (*models.AssetEntry, error) {
	rel := strings.TrimPrefix(path, "/")
	if rel == "" {
		rel = "index.html"
	}

	full := filepath.Join(a.staticDir, filepath.Clean("/"+rel))
	body, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}

	return &models.AssetEntry{
		CacheName:   a.version,
		Path:        path,
		ContentType: contentTypeFor(rel),
		Body:        body,
		StoredAt:    time.Now().UTC(),
	}, nil
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
