package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockIsland = `<html><body>
<div id="island-detail" class="island-detail">
  <button id="notice">I understand</button>
  <input id="name" type="text">
</div>
</body></html>`

// helper: start a headless browser serving mockIsland for every request
func setupSession(t *testing.T) *PageSession {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pm, err := NewPlaywright(context.Background(), Options{Engine: "chromium", Headless: true})
	if err != nil {
		t.Skipf("playwright unavailable: %v", err)
	}
	t.Cleanup(func() { pm.Close() })

	bctx, err := pm.NewContext()
	require.NoError(t, err)
	page, err := bctx.NewPage()
	require.NoError(t, err)

	err = page.Route("**/*", func(route playwright.Route) {
		route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html"),
			Body:        mockIsland,
		})
	})
	require.NoError(t, err)

	return NewPageSession(bctx, page, Pacing{}, nil)
}

func TestPageSession_Flow(t *testing.T) {
	s := setupSession(t)
	defer s.Close()

	require.NoError(t, s.Navigate("https://turnip.test/island/abc"))
	require.NoError(t, s.WaitForVisible("#island-detail", 5*time.Second))
	require.NoError(t, s.TypeText("#name", "Tom Nook"))
	require.NoError(t, s.Click("#notice"))

	html, err := s.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, html, "island-detail")
}

func TestPageSession_WaitTimeout(t *testing.T) {
	s := setupSession(t)
	defer s.Close()

	require.NoError(t, s.Navigate("https://turnip.test/island/abc"))
	err := s.WaitForVisible("#never-there", 300*time.Millisecond)
	assert.True(t, errors.Is(err, ErrWaitTimeout), "got %v", err)
}
