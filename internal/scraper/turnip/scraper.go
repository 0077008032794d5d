package turnip

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"go-turnip-automation/internal/browser"
	"go-turnip-automation/internal/models"
	"go-turnip-automation/internal/scraper"
)

type Scraper struct {
	baseURL     string
	waitTimeout time.Duration
	extractor   *Extractor
}

func NewScraper(baseURL string, waitTimeout time.Duration) *Scraper {
	return &Scraper{
		baseURL:     strings.TrimRight(baseURL, "/"),
		waitTimeout: waitTimeout,
		extractor:   NewExtractor(),
	}
}

func (s *Scraper) Name() string {
	return "turnip.exchange"
}

// IslandURL is the detail page for a listing code.
// The code is opaque and always escaped as a single path segment.
func IslandURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + IslandPath + url.PathEscape(code)
}

func (s *Scraper) Scrape(ctx context.Context, session browser.Session) ([]models.Listing, error) {
	snapshot, err := s.capture(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.extractor.Extract(snapshot)
}

// capture grabs the rendered islands page and closes the session right after.
func (s *Scraper) capture(ctx context.Context, session browser.Session) (string, error) {
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("⚠️ Failed to close scrape session: %v", err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := s.baseURL + IslandsPath
	log.Printf("🏝️ Loading %s...", target)
	if err := session.Navigate(target); err != nil {
		return "", err
	}
	if err := session.WaitForVisible(SelListingBlock, s.waitTimeout); err != nil {
		return "", fmt.Errorf("%w: islands never rendered: %w", scraper.ErrExtraction, err)
	}

	snapshot, err := session.Snapshot()
	if err != nil {
		return "", fmt.Errorf("capture islands page: %w", err)
	}
	return snapshot, nil
}

var _ scraper.Scraper = (*Scraper)(nil)
