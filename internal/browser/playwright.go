package browser

import (
	"context"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	Engine    string // firefox or chromium
	Headless  bool
	SlowMo    float64
	UserAgent string
}

// PlaywrightManager owns the driver and the browser process.
// Each NewSession call gets its own isolated browser context.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
}

func NewPlaywright(ctx context.Context, opts Options) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch opts.Engine {
	case "", "firefox":
		browserType = pw.Firefox
	case "chromium":
		browserType = pw.Chromium
	default:
		pw.Stop()
		return nil, fmt.Errorf("unsupported browser engine %q", opts.Engine)
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(opts.SlowMo),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", browserType.Name(), err)
	}
	log.Printf("🌐 Launched %s (headless=%v)", browserType.Name(), opts.Headless)

	return &PlaywrightManager{
		pw:      pw,
		browser: browser,
		opts:    opts,
	}, nil
}

func (pm *PlaywrightManager) NewContext() (playwright.BrowserContext, error) {
	ctxOpts := playwright.BrowserNewContextOptions{}
	if pm.opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(pm.opts.UserAgent)
	}
	return pm.browser.NewContext(ctxOpts)
}

// Close stops the browser and the driver. Sessions left open for the user die with it.
func (pm *PlaywrightManager) Close() error {
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser: %v", err)
		}
	}
	if pm.pw != nil {
		return pm.pw.Stop()
	}
	return nil
}
