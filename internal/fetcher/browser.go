package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/qvl-tools/qvlscan/pkg/models"
)

// consentScript clicks the first button whose text or class mentions
// "accept". Best effort: a page without a consent overlay returns false.
const consentScript = `(() => {
	const buttons = Array.from(document.querySelectorAll('button'));
	const accept = buttons.find(b =>
		/accept/i.test(b.textContent || '') || /accept/i.test(b.className || ''));
	if (accept) { accept.click(); return true; }
	return false;
})()`

// Browser fetches pages through headless Chrome via the DevTools protocol.
type Browser struct{}

// NewBrowser creates the Chrome-backed Fetcher.
func NewBrowser() *Browser { return &Browser{} }

// Name returns the fetcher name.
func (b *Browser) Name() string { return "chrome" }

// Fetch navigates to the page, lets the first wave of scripts settle,
// dismisses a consent overlay if one shows up, waits until a table element is
// present (bounded by MaxWait), and captures the rendered DOM. The browser is
// torn down on every exit path.
func (b *Browser) Fetch(ctx context.Context, opts models.FetchOptions) (*models.Snapshot, error) {
	start := time.Now()

	chromePath, err := resolveChrome(opts.ChromePath)
	if err != nil {
		return nil, err
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.ExecPath(chromePath),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var statusCode int64
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Response.URL == opts.URL {
			statusCode = resp.Response.Status
		}
	})

	log.Debug().Str("url", opts.URL).Str("chrome", chromePath).Msg("Navigating to QVL page")
	if err := chromedp.Run(browserCtx, network.Enable(), chromedp.Navigate(opts.URL)); err != nil {
		return nil, newFetchError(CodeNavigation, "navigation failed", err)
	}

	if opts.SettleDelay > 0 {
		select {
		case <-time.After(opts.SettleDelay):
		case <-browserCtx.Done():
			return nil, newFetchError(CodeTimeout, "render settle interrupted", browserCtx.Err())
		}
	}

	b.dismissConsent(browserCtx)

	if err := waitForSelector(browserCtx, "table", opts.MaxWait, opts.PollInterval); err != nil {
		return nil, err
	}

	// The table may keep filling in after it first appears.
	if opts.SettleDelay > 0 {
		time.Sleep(opts.SettleDelay)
	}

	var outer string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &outer, chromedp.ByQuery)); err != nil {
		return nil, newFetchError(CodeNavigation, "snapshot capture failed", err)
	}

	snap := &models.Snapshot{
		URL:        opts.URL,
		HTML:       outer,
		StatusCode: int(statusCode),
		FetchedAt:  time.Now(),
		ElapsedMS:  time.Since(start).Milliseconds(),
	}

	log.Info().
		Str("url", opts.URL).
		Int("status", snap.StatusCode).
		Int64("elapsed_ms", snap.ElapsedMS).
		Msg("Fetch completed")
	return snap, nil
}

// dismissConsent clicks through a cookie overlay when present. Absence of
// the overlay is not an error.
func (b *Browser) dismissConsent(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var clicked bool
	if err := chromedp.Run(cctx, chromedp.Evaluate(consentScript, &clicked)); err != nil {
		log.Debug().Err(err).Msg("Consent probe failed, continuing")
		return
	}
	if clicked {
		log.Debug().Msg("Consent overlay dismissed")
		time.Sleep(time.Second)
	}
}

// waitForSelector polls the page at a fixed interval until the selector
// matches, up to maxWait. The token bucket paces the probes and honors
// context cancellation.
func waitForSelector(ctx context.Context, selector string, maxWait, interval time.Duration) error {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	wctx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	probe := fmt.Sprintf("document.querySelector(%q) !== null", selector)

	for {
		if err := limiter.Wait(wctx); err != nil {
			return newFetchError(CodeTimeout,
				fmt.Sprintf("no %q element after %s", selector, maxWait), err)
		}
		var present bool
		if err := chromedp.Run(wctx, chromedp.Evaluate(probe, &present)); err != nil {
			if wctx.Err() != nil {
				return newFetchError(CodeTimeout,
					fmt.Sprintf("no %q element after %s", selector, maxWait), wctx.Err())
			}
			return newFetchError(CodeNavigation, "selector probe failed", err)
		}
		if present {
			log.Debug().Str("selector", selector).Msg("Selector present")
			return nil
		}
	}
}
