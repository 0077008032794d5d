package filter

import (
	"errors"
	"fmt"

	"go-turnip-automation/internal/models"
)

// ErrInvalidFilterValue is returned for an option outside its domain
// or one that would cross its paired bound.
var ErrInvalidFilterValue = errors.New("invalid filter value")

// bound is an optional inclusive limit. The zero value is unset.
type bound struct {
	value int
	set   bool
}

// Criteria is an immutable filter configuration.
// With returns a new value and never touches the receiver.
type Criteria struct {
	minQueue, maxQueue bound
	minPrice, maxPrice bound
	excludeFruit       models.Fruit
	hemisphere         models.Hemisphere
}

// Option is one of the filter settings below. The set is closed.
type Option interface {
	option()
	fmt.Stringer
}

type (
	MinQueueLength int
	MaxQueueLength int
	MinPrice       int
	MaxPrice       int
	ExcludeFruit   models.Fruit
	OnlyHemisphere models.Hemisphere
)

func (MinQueueLength) option() {}
func (MaxQueueLength) option() {}
func (MinPrice) option()       {}
func (MaxPrice) option()       {}
func (ExcludeFruit) option()   {}
func (OnlyHemisphere) option() {}

func (o MinQueueLength) String() string { return fmt.Sprintf("min-queue=%d", int(o)) }
func (o MaxQueueLength) String() string { return fmt.Sprintf("max-queue=%d", int(o)) }
func (o MinPrice) String() string       { return fmt.Sprintf("min-price=%d", int(o)) }
func (o MaxPrice) String() string       { return fmt.Sprintf("max-price=%d", int(o)) }
func (o ExcludeFruit) String() string   { return fmt.Sprintf("exclude-fruit=%s", string(o)) }
func (o OnlyHemisphere) String() string { return fmt.Sprintf("hemisphere=%s", string(o)) }

// New builds criteria from opts, stopping at the first invalid one.
func New(opts ...Option) (Criteria, error) {
	return Criteria{}.With(opts...)
}

// With applies opts in order. Either all of them apply or c is returned unchanged.
func (c Criteria) With(opts ...Option) (Criteria, error) {
	next := c
	for _, opt := range opts {
		var err error
		if next, err = next.with(opt); err != nil {
			return c, fmt.Errorf("%w: %s: %v", ErrInvalidFilterValue, opt, err)
		}
	}
	return next, nil
}

func (c Criteria) with(opt Option) (Criteria, error) {
	switch o := opt.(type) {
	case MinQueueLength:
		if o < 0 {
			return c, errors.New("must not be negative")
		}
		if c.maxQueue.set && int(o) > c.maxQueue.value {
			return c, fmt.Errorf("above max queue length %d", c.maxQueue.value)
		}
		c.minQueue = bound{value: int(o), set: true}
	case MaxQueueLength:
		if o < 0 {
			return c, errors.New("must not be negative")
		}
		if c.minQueue.set && int(o) < c.minQueue.value {
			return c, fmt.Errorf("below min queue length %d", c.minQueue.value)
		}
		c.maxQueue = bound{value: int(o), set: true}
	case MinPrice:
		if o < 0 {
			return c, errors.New("must not be negative")
		}
		if c.maxPrice.set && int(o) > c.maxPrice.value {
			return c, fmt.Errorf("above max price %d", c.maxPrice.value)
		}
		c.minPrice = bound{value: int(o), set: true}
	case MaxPrice:
		if o < 0 {
			return c, errors.New("must not be negative")
		}
		if c.minPrice.set && int(o) < c.minPrice.value {
			return c, fmt.Errorf("below min price %d", c.minPrice.value)
		}
		c.maxPrice = bound{value: int(o), set: true}
	case ExcludeFruit:
		f, err := models.ParseFruit(string(o))
		if err != nil {
			return c, err
		}
		c.excludeFruit = f
	case OnlyHemisphere:
		h, err := models.ParseHemisphere(string(o))
		if err != nil {
			return c, err
		}
		c.hemisphere = h
	default:
		return c, fmt.Errorf("unsupported option %T", opt)
	}
	return c, nil
}

func (c Criteria) QueueRange() (min, max int, minSet, maxSet bool) {
	return c.minQueue.value, c.maxQueue.value, c.minQueue.set, c.maxQueue.set
}

func (c Criteria) PriceRange() (min, max int, minSet, maxSet bool) {
	return c.minPrice.value, c.maxPrice.value, c.minPrice.set, c.maxPrice.set
}

// ExcludedFruit is empty when no fruit is excluded.
func (c Criteria) ExcludedFruit() models.Fruit { return c.excludeFruit }

// Hemisphere is empty when any hemisphere is accepted.
func (c Criteria) Hemisphere() models.Hemisphere { return c.hemisphere }

func (b bound) admitsAbove(v int) bool { return !b.set || v >= b.value }
func (b bound) admitsBelow(v int) bool { return !b.set || v <= b.value }
