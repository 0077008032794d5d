package ranking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-turnip-automation/internal/filter"
	"go-turnip-automation/internal/models"
)

func codes(listings []models.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Code
	}
	return out
}

func scenario() []models.Listing {
	return []models.Listing{
		{Code: "A", Price: 100, QueueLength: 10},
		{Code: "B", Price: 150, QueueLength: 0},
		{Code: "C", Price: 80, QueueLength: 5},
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		skip     int
		expected []string
	}{
		{name: "price", strategy: ByPrice, expected: []string{"B", "A", "C"}},
		{name: "price skip one", strategy: ByPrice, skip: 1, expected: []string{"A", "C"}},
		{name: "ratio puts empty queue first", strategy: ByRatio, expected: []string{"B", "C", "A"}},
		{name: "skip everything", strategy: ByPrice, skip: 3, expected: []string{}},
		{name: "skip beyond length", strategy: ByPrice, skip: len(scenario()) + 5, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(scenario(), tt.skip, tt.strategy)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, codes(got))
		})
	}
}

func TestRank_Stable(t *testing.T) {
	in := []models.Listing{
		{Code: "first", Price: 200},
		{Code: "low", Price: 50},
		{Code: "second", Price: 200},
		{Code: "third", Price: 200},
		{Code: "top", Price: 900},
	}
	got, err := Rank(in, 0, ByPrice)
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "first", "second", "third", "low"}, codes(got))
}

func TestRank_StableWithInfiniteRatios(t *testing.T) {
	in := []models.Listing{
		{Code: "x", Price: 10, QueueLength: 0},
		{Code: "y", Price: 999, QueueLength: 0},
	}
	got, err := Rank(in, 0, ByRatio)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, codes(got))
}

func TestRank_NegativeSkip(t *testing.T) {
	_, err := Rank(scenario(), -1, ByPrice)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestRank_DoesNotReorderInput(t *testing.T) {
	in := scenario()
	_, err := Rank(in, 0, ByPrice)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, codes(in))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("Ratio")
	require.NoError(t, err)
	assert.Equal(t, "ratio", s.Name)

	_, err = ParseStrategy("cheapest")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

// minPrice=90 over A,B,C ranks to B then A, with C filtered out.
func TestFilterThenRank(t *testing.T) {
	c, err := filter.New(filter.MinPrice(90))
	require.NoError(t, err)

	got, err := Rank(filter.Apply(c, scenario()), 0, ByPrice)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, codes(got))
}
