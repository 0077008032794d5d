package reporter

import (
	"go-turnip-automation/internal/models"
)

// Reporter receives the outcome of a run.
type Reporter interface {
	ReportListings(total int, ranked []models.Listing) error
	ReportJoin(listing models.Listing, joinErr error) error
}

// Multi fans out to every reporter and returns the first error.
type Multi []Reporter

func (m Multi) ReportListings(total int, ranked []models.Listing) error {
	var first error
	for _, r := range m {
		if err := r.ReportListings(total, ranked); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) ReportJoin(listing models.Listing, joinErr error) error {
	var first error
	for _, r := range m {
		if err := r.ReportJoin(listing, joinErr); err != nil && first == nil {
			first = err
		}
	}
	return first
}
