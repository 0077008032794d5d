package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Fruit string

const (
	FruitPeach  Fruit = "peach"
	FruitApple  Fruit = "apple"
	FruitPear   Fruit = "pear"
	FruitCherry Fruit = "cherry"
	FruitOrange Fruit = "orange"
)

var fruits = []Fruit{FruitPeach, FruitApple, FruitPear, FruitCherry, FruitOrange}

// ParseFruit accepts one of the five native fruits, case-insensitively.
func ParseFruit(s string) (Fruit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range fruits {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown fruit %q", s)
}

type Hemisphere string

const (
	HemisphereNorth Hemisphere = "north"
	HemisphereSouth Hemisphere = "south"
)

func ParseHemisphere(s string) (Hemisphere, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "northern", "n":
		return HemisphereNorth, nil
	case "south", "southern", "s":
		return HemisphereSouth, nil
	}
	return "", fmt.Errorf("unknown hemisphere %q", s)
}

// TradeMode is informational only. Nothing filters or joins on it.
type TradeMode string

const (
	TradeBuy  TradeMode = "buy"
	TradeSell TradeMode = "sell"
)

// TradeModeAt returns sell on Mondays and buy on every other day.
func TradeModeAt(t time.Time) TradeMode {
	if t.Weekday() == time.Monday {
		return TradeSell
	}
	return TradeBuy
}

// Listing is one island offer scraped from the islands page.
// Values are never mutated once the extractor returns them.
type Listing struct {
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	Fruit         Fruit      `json:"fruit"`
	Price         int        `json:"price"`
	Hemisphere    Hemisphere `json:"hemisphere"`
	Description   string     `json:"description"`
	QueueLength   int        `json:"queue_length"`
	QueueCapacity int        `json:"queue_capacity"`
	Mode          TradeMode  `json:"mode"`
}

// Ratio is price per waiting visitor. An empty queue is the best possible ratio.
func (l Listing) Ratio() float64 {
	if l.QueueLength == 0 {
		return math.Inf(1)
	}
	return float64(l.Price) / float64(l.QueueLength)
}

func (l Listing) String() string {
	return fmt.Sprintf("[c:%s][t:%s][p:%d][q:%d/%d][r:%.2f]",
		l.Code, l.Mode, l.Price, l.QueueLength, l.QueueCapacity, l.Ratio())
}
