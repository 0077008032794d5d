package filter

import (
	"log"

	"go-turnip-automation/internal/models"
)

// Stage is one named predicate of the filter chain.
type Stage struct {
	Name  string
	Keeps func(models.Listing) bool
}

// Stages returns the predicates for c in their fixed evaluation order:
// queue length, price, excluded fruit, hemisphere.
func Stages(c Criteria) []Stage {
	return []Stage{
		{
			Name: "queue-length",
			Keeps: func(l models.Listing) bool {
				return c.minQueue.admitsAbove(l.QueueLength) && c.maxQueue.admitsBelow(l.QueueLength)
			},
		},
		{
			Name: "price",
			Keeps: func(l models.Listing) bool {
				return c.minPrice.admitsAbove(l.Price) && c.maxPrice.admitsBelow(l.Price)
			},
		},
		{
			Name: "fruit",
			Keeps: func(l models.Listing) bool {
				return c.excludeFruit == "" || l.Fruit != c.excludeFruit
			},
		},
		{
			Name: "hemisphere",
			Keeps: func(l models.Listing) bool {
				return c.hemisphere == "" || l.Hemisphere == c.hemisphere
			},
		},
	}
}

// Apply keeps the listings that pass every stage, preserving input order.
// The input slice is not modified.
func Apply(c Criteria, listings []models.Listing) []models.Listing {
	current := listings
	for _, stage := range Stages(c) {
		kept := make([]models.Listing, 0, len(current))
		for _, l := range current {
			if stage.Keeps(l) {
				kept = append(kept, l)
			}
		}
		log.Printf("🔎 Filter %s: %d -> %d", stage.Name, len(current), len(kept))
		current = kept
	}
	return current
}
