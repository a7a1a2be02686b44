package auth

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/primemotors/inventory-service/internal/clock"
)

var secretPattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestRotatingSecret_KnownVector(t *testing.T) {
	day := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)
	secret := NewRotatingSecret("TESTSEED", clock.Fixed(day))

	assert.Equal(t, "D8FD9A05", secret.Current())
	assert.Equal(t, "2E23F5FB", secret.At(day.AddDate(0, 0, 1)))
}

func TestRotatingSecret_Format(t *testing.T) {
	secret := NewRotatingSecret("format-seed", nil)
	start := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 400; i++ {
		value := secret.At(start.AddDate(0, 0, i))
		assert.Regexp(t, secretPattern, value)
	}
}

func TestRotatingSecret_DistinctAcrossDays(t *testing.T) {
	secret := NewRotatingSecret("TESTSEED", nil)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	seen := make(map[string]time.Time)
	for i := 0; i < 60; i++ {
		day := start.AddDate(0, 0, i)
		value := secret.At(day)
		prev, dup := seen[value]
		assert.Falsef(t, dup, "%s repeats secret of %s", day, prev)
		seen[value] = day
	}
}

func TestRotatingSecret_StableWithinUTCDay(t *testing.T) {
	secret := NewRotatingSecret("TESTSEED", nil)
	morning := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	lastSecond := time.Date(2024, time.January, 1, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, secret.At(morning), secret.At(lastSecond))
	assert.NotEqual(t, secret.At(lastSecond), secret.At(lastSecond.Add(time.Second)))
}

func TestRotatingSecret_PinnedToUTC(t *testing.T) {
	secret := NewRotatingSecret("TESTSEED", nil)
	manila := time.FixedZone("UTC+8", 8*60*60)

	// 2024-01-02 03:00 local is still 2024-01-01 in UTC.
	local := time.Date(2024, time.January, 2, 3, 0, 0, 0, manila)
	assert.Equal(t, "D8FD9A05", secret.At(local))
}

func TestRotatingSecret_IndependentInstancesAgree(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	a := NewRotatingSecret("shared-seed", clock.Fixed(now))
	b := NewRotatingSecret("shared-seed", clock.Fixed(now))
	other := NewRotatingSecret("other-seed", clock.Fixed(now))

	assert.Equal(t, a.Current(), b.Current())
	assert.NotEqual(t, a.Current(), other.Current())
}

func TestRotatingSecret_Validate(t *testing.T) {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	secret := NewRotatingSecret("TESTSEED", clock.Fixed(now))

	assert.True(t, secret.Validate("D8FD9A05"))
	assert.False(t, secret.Validate("d8fd9a05"))
	assert.False(t, secret.Validate("D8FD9A0"))
	assert.False(t, secret.Validate(""))
	assert.False(t, secret.Validate("2E23F5FB"))
}

func TestRotatingSecret_ConcurrentCalls(t *testing.T) {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	secret := NewRotatingSecret("TESTSEED", clock.Fixed(now))

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = secret.Current()
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "D8FD9A05", r)
	}
}
