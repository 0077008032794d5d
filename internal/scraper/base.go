// Define an interface for all listing scrapers
// and the error kinds they share

package scraper

import (
	"context"
	"errors"
	"fmt"

	"go-turnip-automation/internal/browser"
	"go-turnip-automation/internal/models"
)

// ErrExtraction means the page yielded no parseable listings at all.
// It points at a page-shape problem upstream, not at an empty market.
var ErrExtraction = errors.New("no parseable listings on page")

// FieldParseError reports one listing block that could not be read.
// The block is dropped and extraction continues.
type FieldParseError struct {
	Index int
	Code  string
	Field string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("block %d (code %q): field %s: %v", e.Index, e.Code, e.Field, e.Err)
}

func (e *FieldParseError) Unwrap() error { return e.Err }

// Scraper defines the interface that all listing sources must implement
type Scraper interface {
	// Scrape takes ownership of session and closes it once the page is captured
	Scrape(ctx context.Context, session browser.Session) ([]models.Listing, error)

	//Name is the site name
	Name() string
}
