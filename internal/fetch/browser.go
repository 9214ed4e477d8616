package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/searchfind/screening-engine/internal/logging"
)

// MinContentLength is the shortest extracted text accepted from a plain
// HTTP fetch. Shorter pages are assumed to render client-side.
const MinContentLength = 500

// DefaultRenderTimeout bounds one headless browser render.
const DefaultRenderTimeout = 30 * time.Second

// ShouldUseBrowser reports whether extracted text is too short to be the
// real page content.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer returns the HTML of a page after its scripts have run.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// BrowserRenderer renders pages with a local headless Chrome.
type BrowserRenderer struct {
	Timeout time.Duration
	Logger  logging.Logger
}

// NewBrowserRenderer returns a renderer with the default timeout.
func NewBrowserRenderer(logger logging.Logger) *BrowserRenderer {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &BrowserRenderer{Timeout: DefaultRenderTimeout, Logger: logger}
}

// Render loads url in headless Chrome, dismisses common cookie banners and
// returns the rendered document. Chrome or Chromium must be installed.
func (b *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	b.Logger.Debug("rendering page in headless browser", map[string]interface{}{"url": url})

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Cookie banners are optional; a missing button is not an error.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	b.Logger.Debug("page rendered", map[string]interface{}{"url": url, "bytes": len(html)})
	return html, nil
}
