package scraper

import (
	"context"

	"casino-collector/models"
)

// CasinoScraper is the interface every collection backend must satisfy.
// Implementations return a validated, scored record or an error; they
// never return a partially constructed record.
type CasinoScraper interface {
	Scrape(ctx context.Context, url string) (*models.CasinoData, error)
}
