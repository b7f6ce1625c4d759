package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/tartampluch/go-kronometer/internal/config"
)

// Clock abstracts time.Now() to allow deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// GameClock maps wall-clock time onto elapsed calendar seconds: Epoch is
// second zero and Rate calendar seconds pass per real second.
type GameClock struct {
	Epoch time.Time
	Rate  float64
}

// NewGameClock checks that rate is a positive finite number.
func NewGameClock(epoch time.Time, rate float64) (GameClock, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return GameClock{}, fmt.Errorf("%s: %v", config.ErrRateValue, rate)
	}
	return GameClock{Epoch: epoch, Rate: rate}, nil
}

// Seconds returns the calendar seconds elapsed at now.
func (g GameClock) Seconds(now time.Time) float64 {
	return now.Sub(g.Epoch).Seconds() * g.Rate
}

// WallTime returns the wall-clock instant at which s calendar seconds have elapsed.
func (g GameClock) WallTime(s float64) time.Time {
	return g.Epoch.Add(time.Duration(s / g.Rate * float64(time.Second)))
}
