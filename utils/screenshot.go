package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenShotDebugger saves full-page screenshots when a browser flow goes wrong
type ScreenShotDebugger struct {
	outputDir string
}

func NewScreenShotDebugger(dir string) *ScreenShotDebugger {
	if dir == "" {
		dir = filepath.Join(".", "logs", "screenshots")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create screenshot directory: %v", err)
	}
	return &ScreenShotDebugger{
		outputDir: dir,
	}
}

func (s *ScreenShotDebugger) Path(name string, at time.Time) string {
	filename := fmt.Sprintf("%s_%s.png", name, at.Format("2006-01-02_15-04-05"))
	return filepath.Join(s.outputDir, filename)
}

func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	path := s.Path(name, time.Now())
	log.Printf("📸 %s", message)

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", path)
	return nil
}
