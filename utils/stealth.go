package utils

import (
	"math/rand"
	"time"
)

// RandomDelay pauses execution for a random time between min and max (milliseconds)
func RandomDelay(min, max int) {
	if min <= 0 && max <= 0 {
		return
	}
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := time.Duration(rand.Intn(max-min)+min) * time.Millisecond
	time.Sleep(duration)
}
