package timezone_test

import (
	"renthubber/shared/timezone"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowUsesAppLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestFormatAndParseRoundTrip(t *testing.T) {
	start := time.Date(2025, 6, 1, 14, 0, 0, 0, timezone.GetLocation())

	formatted := timezone.Format(start, time.RFC3339)
	parsed, err := timezone.Parse(time.RFC3339, formatted)

	require.NoError(t, err)
	assert.True(t, start.Equal(parsed))
	assert.Equal(t, timezone.GetLocation(), timezone.ToAppTime(start.UTC()).Location())
}

func TestLoad(t *testing.T) {
	assert.Equal(t, time.UTC, timezone.Load(""))
	assert.Equal(t, time.UTC, timezone.Load("Mars/Olympus_Mons"))
	assert.Equal(t, "Europe/Rome", timezone.Load("Europe/Rome").String())
}

func TestSetLocation(t *testing.T) {
	previous := timezone.GetLocation()
	t.Cleanup(func() { timezone.SetLocation(previous) })

	rome := timezone.Load("Europe/Rome")
	timezone.SetLocation(rome)

	assert.Equal(t, rome, timezone.Now().Location())
	assert.Equal(t, "2025-06-01T16:00:00+02:00", timezone.Format(time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC), time.RFC3339))
}
