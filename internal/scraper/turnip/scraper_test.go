package turnip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-turnip-automation/internal/browser"
	"go-turnip-automation/internal/browser/browsertest"
	"go-turnip-automation/internal/scraper"
)

func TestScraper_Scrape(t *testing.T) {
	session := browsertest.NewFakeSession(page(okBlock("A"), okBlock("B")), SelListingBlock)
	s := NewScraper("https://turnip.test/", 10*time.Second)

	listings, err := s.Scrape(context.Background(), session)
	require.NoError(t, err)
	assert.Len(t, listings, 2)

	assert.Equal(t, []string{"navigate", "wait", "snapshot", "close"}, session.Ops())
	assert.Equal(t, "https://turnip.test/islands", session.Calls[0].Arg)
	assert.True(t, session.Closed)
}

func TestScraper_Scrape_NeverRendered(t *testing.T) {
	session := browsertest.NewFakeSession("")
	s := NewScraper("https://turnip.test", time.Second)

	_, err := s.Scrape(context.Background(), session)
	assert.True(t, errors.Is(err, scraper.ErrExtraction))
	assert.True(t, errors.Is(err, browser.ErrWaitTimeout))
	assert.True(t, session.Closed, "session must be released even on failure")
	assert.NotContains(t, session.Ops(), "snapshot")
}

func TestScraper_Scrape_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := browsertest.NewFakeSession(page(okBlock("A")), SelListingBlock)
	_, err := NewScraper("https://turnip.test", time.Second).Scrape(ctx, session)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"close"}, session.Ops())
}

func TestIslandURL(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{code: "abc", expected: "https://turnip.test/island/abc"},
		{code: "ab#c d/../x", expected: "https://turnip.test/island/ab%23c%20d%2F..%2Fx"},
		{code: "q?x=1", expected: "https://turnip.test/island/q%3Fx=1"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, IslandURL("https://turnip.test/", tt.code))
		})
	}
}
