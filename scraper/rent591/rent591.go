package rent591

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/a05031113/rent-scrapper/config"
	"github.com/a05031113/rent-scrapper/models"
	"github.com/a05031113/rent-scrapper/utils"
)

const (
	baseURL = "https://rent.591.com.tw/list"

	// The site renders search results server-side (Nuxt SSR); pages
	// settle once the embedded __NUXT__ payload is populated.
	pageSettle      = 5 * time.Second
	pageLoadTimeout = 60 * time.Second
)

// extractNuxtJS pulls the search-result payload out of the rendered
// page's window.__NUXT__.data. The payload key varies per route, so the
// values are scanned for the one carrying an items array.
const extractNuxtJS = `
	(function() {
		var d = window.__NUXT__ && window.__NUXT__.data;
		if (!d) return null;
		var keys = Object.keys(d);
		for (var i = 0; i < keys.length; i++) {
			var inner = d[keys[i]] && d[keys[i]].data;
			if (inner && inner.items && Array.isArray(inner.items)) {
				return { items: inner.items, total: inner.total, firstRow: inner.firstRow };
			}
		}
		return null;
	})()
`

// nuxtPayload is one page of search results as embedded by the server.
type nuxtPayload struct {
	Items    []models.NuxtItem `json:"items"`
	Total    any               `json:"total"`
	FirstRow any               `json:"firstRow"`
}

// Scraper drives the headless-browser session against the rental site.
// Start must be called once before FetchProfile; Stop releases the
// browser.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig

	browserCtx context.Context
	cancel     context.CancelFunc

	// sleep is swapped out in tests to skip politeness delays.
	sleep func(time.Duration)
}

// New creates a ready-to-start Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		sleep: time.Sleep,
	}
}

// Start launches the browser and verifies the search page renders with
// its embedded data. The bootstrap probe is retried with exponential
// backoff; failure here is fatal for the run.
func (s *Scraper) Start(ctx context.Context) error {
	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[rent591] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	s.browserCtx = browserCtx
	s.cancel = func() {
		cancelBrowser()
		cancelAlloc()
	}

	err := s.retry.Do("session-bootstrap", func() error {
		probeCtx, cancel := chromedp.NewContext(s.browserCtx)
		defer cancel()
		probeCtx, cancelTimeout := context.WithTimeout(probeCtx, pageLoadTimeout)
		defer cancelTimeout()

		var ready bool
		if err := chromedp.Run(probeCtx,
			chromedp.Navigate(baseURL),
			chromedp.Sleep(pageSettle),
			chromedp.Evaluate(`!!(window.__NUXT__ && window.__NUXT__.data)`, &ready),
		); err != nil {
			return fmt.Errorf("probe navigation: %w", err)
		}
		if !ready {
			return fmt.Errorf("search page rendered without embedded data")
		}
		return nil
	})
	if err != nil {
		s.Stop()
		return fmt.Errorf("rent591: start browser session: %w", err)
	}

	s.logger.Info("[rent591] Browser session ready")
	return nil
}

// Stop releases the browser. Safe to call more than once.
func (s *Scraper) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// FetchProfile pages through one region's search results and returns
// the raw records. Pagination stops at the configured page cap, on an
// empty page, once the server-reported total is reached, or on a page
// load error — the error case is logged and the partial results for
// this profile are kept.
func (s *Scraper) FetchProfile(ctx context.Context, profile config.SearchProfile) []models.NuxtItem {
	var all []models.NuxtItem
	total := 0

	for page := 0; page < s.cfg.MaxPages; page++ {
		firstRow := page * s.cfg.PageSize
		pageURL := s.searchURL(profile, firstRow)
		s.logger.Info("[rent591] %s | page %d (firstRow=%d)", profile.Label, page+1, firstRow)

		payload, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			s.logger.Error("[rent591] page %d failed: %v — stopping pagination", page+1, err)
			break
		}
		if payload == nil || len(payload.Items) == 0 {
			s.logger.Info("[rent591] page %d returned no items — done", page+1)
			break
		}

		all = append(all, payload.Items...)
		if t := toInt(payload.Total); t > 0 {
			total = t
		}
		s.logger.Info("[rent591] got %d items (%d / %d)", len(payload.Items), len(all), total)

		if total > 0 && len(all) >= total {
			break
		}
		if page < s.cfg.MaxPages-1 {
			s.politeDelay(s.cfg.PageDelayMinMs, s.cfg.PageDelayMaxMs)
		}
	}

	return all
}

func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (*nuxtPayload, error) {
	pageCtx, cancel := chromedp.NewContext(s.browserCtx)
	defer cancel()
	pageCtx, cancelTimeout := context.WithTimeout(pageCtx, pageLoadTimeout)
	defer cancelTimeout()

	// Honor cancellation of the run-level context too.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload *nuxtPayload
	err := chromedp.Run(pageCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(pageSettle),
		chromedp.Evaluate(extractNuxtJS, &payload),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp page load: %w", err)
	}
	return payload, nil
}

// searchURL builds the Nuxt SSR route for one result page. The query is
// assembled by hand so comma-separated values stay unescaped, matching
// the site's own URLs. firstRow is omitted on the first page.
func (s *Scraper) searchURL(profile config.SearchProfile, firstRow int) string {
	f := s.cfg.Filter
	pairs := [][2]string{
		{"kind", f.Kind},
		{"layout", f.Layout},
		{"rentprice", f.RentPrice},
		{"area", f.Area},
		{"other", f.Other},
		{"option", f.Option},
		{"order", f.Order},
		{"orderType", f.OrderType},
		{"region", strconv.Itoa(profile.Region)},
		{"section", profile.Section},
	}
	if firstRow > 0 {
		pairs = append(pairs, [2]string{"firstRow", strconv.Itoa(firstRow)})
	}

	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		parts = append(parts, kv[0]+"="+kv[1])
	}
	return baseURL + "?" + strings.Join(parts, "&")
}

// politeDelay sleeps a random duration within [minMs, maxMs] between
// requests. Not a correctness requirement, just throttle avoidance.
func (s *Scraper) politeDelay(minMs, maxMs int) {
	if maxMs <= 0 {
		return
	}
	d := time.Duration(minMs) * time.Millisecond
	if spread := maxMs - minMs; spread > 0 {
		d += time.Duration(rand.Intn(spread+1)) * time.Millisecond
	}
	s.sleep(d)
}

// ProfileDelay pauses between region profiles.
func (s *Scraper) ProfileDelay() {
	s.politeDelay(s.cfg.ProfileDelayMinMs, s.cfg.ProfileDelayMaxMs)
}

// findChromeBinary locates a Chrome/Chromium binary, preferring an
// explicit override.
func findChromeBinary(override string) string {
	if override != "" {
		return override
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// toInt coerces the server's total count, which arrives as a JSON
// number or a digit string depending on the page.
func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
