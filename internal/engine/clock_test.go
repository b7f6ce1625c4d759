package engine_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-kronometer/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestGameClock(t *testing.T) {
	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	g, err := engine.NewGameClock(epoch, 2)
	require.NoError(t, err)

	var clock engine.Clock = MockClock{CurrentTime: epoch.Add(10 * time.Second)}
	assert.Equal(t, 20.0, g.Seconds(clock.Now()))
	assert.Equal(t, -4.0, g.Seconds(epoch.Add(-2*time.Second)))
	assert.True(t, g.WallTime(20).Equal(epoch.Add(10*time.Second)))
}

func TestNewGameClock_Rate(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := engine.NewGameClock(time.Time{}, rate)
		assert.Error(t, err, "rate %v", rate)
	}
}
