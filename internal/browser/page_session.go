package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-turnip-automation/utils"
)

const navigationTimeout = 30 * time.Second

// Pacing is a random pause window in milliseconds applied before clicks and typing.
type Pacing struct {
	MinMs int
	MaxMs int
}

type PageSession struct {
	bctx        playwright.BrowserContext
	page        playwright.Page
	pacing      Pacing
	screenshots *utils.ScreenShotDebugger
}

// NewPageSession wraps an existing page. bctx may be nil when the page is owned elsewhere.
func NewPageSession(bctx playwright.BrowserContext, page playwright.Page, pacing Pacing, shots *utils.ScreenShotDebugger) *PageSession {
	return &PageSession{
		bctx:        bctx,
		page:        page,
		pacing:      pacing,
		screenshots: shots,
	}
}

// NewSession opens a fresh context and page.
func (pm *PlaywrightManager) NewSession(pacing Pacing, shots *utils.ScreenShotDebugger) (Session, error) {
	bctx, err := pm.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return NewPageSession(bctx, page, pacing, shots), nil
}

func (s *PageSession) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(navigationTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *PageSession) WaitForVisible(selector string, timeout time.Duration) error {
	err := s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%s after %v: %w", selector, timeout, ErrWaitTimeout)
	}
	return err
}

func (s *PageSession) Snapshot() (string, error) {
	return s.page.Content()
}

func (s *PageSession) Click(selector string) error {
	utils.RandomDelay(s.pacing.MinMs, s.pacing.MaxMs)
	return s.page.Locator(selector).First().Click()
}

func (s *PageSession) TypeText(selector, text string) error {
	utils.RandomDelay(s.pacing.MinMs, s.pacing.MaxMs)
	return s.page.Locator(selector).First().Fill(text)
}

func (s *PageSession) Screenshot(name string) error {
	if s.screenshots == nil {
		return nil
	}
	return s.screenshots.CaptureAndLog(s.page, name, "Capturing "+name)
}

func (s *PageSession) Close() error {
	if s.bctx != nil {
		return s.bctx.Close()
	}
	return s.page.Close()
}
