package timezone

import (
	"renthubber/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultLocation = "UTC"

var (
	appLocation *time.Location
	loadOnce    sync.Once
	mu          sync.RWMutex
)

// Load resolves an IANA name, falling back to UTC when it is empty or unknown.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	return loc
}

// SetLocation overrides the application location, mainly for tests.
func SetLocation(loc *time.Location) {
	loadOnce.Do(func() {})

	mu.Lock()
	defer mu.Unlock()

	appLocation = loc
}

// GetLocation returns the application location, loading it from APP_TIMEZONE on first use.
func GetLocation() *time.Location {
	loadOnce.Do(func() {
		loc := Load(config.Get().App.Timezone)

		mu.Lock()
		appLocation = loc
		mu.Unlock()

		log.Info().Str("location", loc.String()).Msg("Application timezone initialized")
	})

	mu.RLock()
	defer mu.RUnlock()

	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value in the application location unless it carries its own offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
