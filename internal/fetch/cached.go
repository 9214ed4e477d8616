package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/searchfind/screening-engine/internal/logging"
)

// DefaultPageTTL is how long a fetched posting is served from the cache.
const DefaultPageTTL = 24 * time.Hour

// PageCache stores fetched pages between calls.
type PageCache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Page is a fetched job posting with the text of its main content.
type Page struct {
	Result
	Platform  Platform `json:"platform"`
	Rendered  bool     `json:"rendered"`
	FromCache bool     `json:"-"`
}

// FetcherConfig configures a Fetcher. Nil fields disable the matching
// feature.
type FetcherConfig struct {
	Options  *Options
	Cache    PageCache
	CacheTTL time.Duration
	Renderer Renderer
	Logger   logging.Logger
}

// Fetcher retrieves job postings over HTTP, falling back to a headless
// browser for client-rendered pages and caching what it fetched.
type Fetcher struct {
	options  *Options
	cache    PageCache
	cacheTTL time.Duration
	renderer Renderer
	logger   logging.Logger
}

// NewFetcher returns a Fetcher built from cfg.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	f := &Fetcher{
		options:  cfg.Options,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		renderer: cfg.Renderer,
		logger:   cfg.Logger,
	}
	if f.options == nil {
		f.options = DefaultOptions()
	}
	if f.cacheTTL <= 0 {
		f.cacheTTL = DefaultPageTTL
	}
	if f.logger == nil {
		f.logger = logging.NewNoOpLogger()
	}
	return f
}

func pageKey(urlStr string) string {
	sum := sha256.Sum256([]byte(urlStr))
	return "page:" + hex.EncodeToString(sum[:])
}

// JobPosting fetches urlStr and extracts the posting text using the
// selectors of the detected platform.
func (f *Fetcher) JobPosting(ctx context.Context, urlStr string) (*Page, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}
	log := f.logger.WithFields(map[string]interface{}{"url": urlStr})

	key := pageKey(urlStr)
	if f.cache != nil {
		var cached Page
		found, err := f.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			log.WithError(err).Warn("page cache lookup failed", nil)
		case found:
			cached.FromCache = true
			return &cached, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)

	page := &Page{Result: *result, Platform: platform}
	page.Text, err = ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if f.renderer != nil && ShouldUseBrowser(page.Text) {
		log.Debug("page text too short, rendering in browser", map[string]interface{}{"chars": len(page.Text)})
		if html, err := f.renderer.Render(ctx, urlStr); err != nil {
			log.WithError(err).Warn("browser rendering failed, keeping HTTP content", nil)
		} else if text, err := ExtractMainText(html, content, noise...); err == nil && len(text) > len(page.Text) {
			page.HTML, page.Text, page.Rendered = html, text, true
		}
	}

	if f.cache != nil {
		if err := f.cache.SetWithTTL(ctx, key, page, f.cacheTTL); err != nil {
			log.WithError(err).Warn("page cache store failed", nil)
		}
	}

	log.Debug("job posting fetched", map[string]interface{}{
		"platform": string(platform),
		"chars":    len(page.Text),
		"rendered": page.Rendered,
	})
	return page, nil
}
