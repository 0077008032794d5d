package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-turnip-automation/internal/models"
)

// ErrInvalidParameter is returned for a negative skip or an unknown strategy name.
var ErrInvalidParameter = errors.New("invalid parameter")

// Strategy orders listings by a derived key, highest first.
type Strategy struct {
	Name string
	Key  func(models.Listing) float64
}

var (
	// ByPrice opens the most valuable island.
	ByPrice = Strategy{
		Name: "price",
		Key:  func(l models.Listing) float64 { return float64(l.Price) },
	}
	// ByRatio favours price per visitor already waiting. Empty queues rank first.
	ByRatio = Strategy{
		Name: "ratio",
		Key:  models.Listing.Ratio,
	}
)

var strategies = []Strategy{ByPrice, ByRatio}

func StrategyNames() []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name
	}
	return names
}

func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range strategies {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: unknown ranking %q (use %s)", ErrInvalidParameter, name, strings.Join(StrategyNames(), " or "))
}

// Rank returns a new slice sorted by strategy, highest key first, with the
// first skip entries dropped. Equal keys keep their input order.
func Rank(listings []models.Listing, skip int, strategy Strategy) ([]models.Listing, error) {
	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative, got %d", ErrInvalidParameter, skip)
	}
	if strategy.Key == nil {
		return nil, fmt.Errorf("%w: ranking strategy %q has no key", ErrInvalidParameter, strategy.Name)
	}

	ranked := make([]models.Listing, len(listings))
	copy(ranked, listings)
	sort.SliceStable(ranked, func(i, j int) bool {
		return strategy.Key(ranked[i]) > strategy.Key(ranked[j])
	})

	if skip >= len(ranked) {
		return []models.Listing{}, nil
	}
	return ranked[skip:], nil
}
