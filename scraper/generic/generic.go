package generic

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"casino-collector/models"
	"casino-collector/scraper"
	"casino-collector/services"
	"casino-collector/utils"
)

// Scraper collects casino data over plain HTTP. It fetches the page,
// runs the shared heuristic extractor, validates, and scores.
type Scraper struct {
	client *resty.Client
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use generic casino scraper.
func New(logger *utils.Logger, userAgent string, timeout time.Duration, maxRetries int) *Scraper {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return &Scraper{
		client: client,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape fetches the casino page and builds its record.
func (s *Scraper) Scrape(ctx context.Context, url string) (*models.CasinoData, error) {
	s.logger.Info("[generic] Scraping casino data from: %s", url)

	var body []byte
	err := s.retry.Do("fetch-page", func() error {
		res, err := s.client.R().
			SetContext(ctx).
			Get(url)
		if err != nil {
			return err
		}
		if res.IsError() {
			return fmt.Errorf("unexpected status %s", res.Status())
		}
		body = res.Body()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generic: fetch %q: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("generic: parse %q: %w", url, err)
	}

	casino, err := scraper.ExtractCasino(doc, url)
	if err != nil {
		return nil, err
	}
	if err := casino.Validate(); err != nil {
		return nil, err
	}
	services.Finalize(casino)

	s.logger.Info("[generic] Scraped %s (completeness: %.1f%%)",
		casino.Name, casino.DataCompletenessScore)
	return casino, nil
}
