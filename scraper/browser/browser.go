package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"casino-collector/models"
	"casino-collector/scraper"
	"casino-collector/services"
	"casino-collector/utils"
)

// Scraper collects casino data through a headless browser. Casino sites
// that render their content with JavaScript return near-empty HTML to a
// plain HTTP client; this backend loads the page, waits for rendering,
// and hands the final DOM to the shared extractor.
type Scraper struct {
	logger    *utils.Logger
	retry     *utils.RetryConfig
	chromeBin string
	userAgent string
}

// New creates a ready-to-use browser-backed casino scraper.
func New(logger *utils.Logger, chromeBin, userAgent string, maxRetries int) *Scraper {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &Scraper{
		logger:    logger,
		chromeBin: chromeBin,
		userAgent: userAgent,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape renders the casino page headlessly and builds its record.
func (s *Scraper) Scrape(ctx context.Context, url string) (*models.CasinoData, error) {
	s.logger.Info("[browser] Scraping casino data from: %s", url)
	s.logger.Debug("[browser] Using browser binary: %s", s.chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(s.userAgent),
	)
	if s.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(s.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	var html string
	err := s.retry.Do("render-page", func() error {
		tabCtx, cancel := chromedp.NewContext(silentCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(url),
			chromedp.Sleep(4*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("browser: render %q: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("browser: parse %q: %w", url, err)
	}

	casino, err := scraper.ExtractCasino(doc, url)
	if err != nil {
		return nil, err
	}
	if err := casino.Validate(); err != nil {
		return nil, err
	}
	services.Finalize(casino)

	s.logger.Info("[browser] Scraped %s (completeness: %.1f%%)",
		casino.Name, casino.DataCompletenessScore)
	return casino, nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
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
