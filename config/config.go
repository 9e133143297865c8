package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"renthubber"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
			PoolSize        int    `envconfig:"POOL_SIZE" default:"20"`
			TimeoutMillis   int    `envconfig:"TIMEOUT_MILLIS" default:"500"`
			ConnectAttempts uint64 `envconfig:"CONNECT_ATTEMPTS" default:"3"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	// Tokens are issued by the identity provider; this service only validates them.
	JWT struct {
		AccessSecret string `envconfig:"ACCESS_SECRET"`
		Issuer       string `envconfig:"ISSUER"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingCompleted string `envconfig:"BOOKING_COMPLETED"`
			BookingSettled   string `envconfig:"BOOKING_SETTLED"`
			BookingCancelled string `envconfig:"BOOKING_CANCELLED"`
			PayoutProcessed  string `envconfig:"PAYOUT_PROCESSED"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Payment struct {
		SecretKey             string `envconfig:"SECRET_KEY"`
		Currency              string `envconfig:"CURRENCY" default:"eur"`
		Country               string `envconfig:"COUNTRY"`
		OnboardingRefreshURL  string `envconfig:"ONBOARDING_REFRESH_URL"`
		OnboardingReturnURL   string `envconfig:"ONBOARDING_RETURN_URL"`
		RequestTimeoutSeconds int    `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"30"`
	} `envconfig:"PAYMENT"`

	// Platform default commission percentages, e.g. "7.5".
	Fee struct {
		DefaultRenterPercent string `envconfig:"DEFAULT_RENTER_PERCENT"`
		DefaultHubberPercent string `envconfig:"DEFAULT_HUBBER_PERCENT"`
		PlatformFixedCents   int64  `envconfig:"PLATFORM_FIXED_CENTS"`
	} `envconfig:"FEE"`

	Settlement struct {
		FinalizeMaxRetries       uint64 `envconfig:"FINALIZE_MAX_RETRIES"       default:"5"`
		FinalizeBackoffMillis    int    `envconfig:"FINALIZE_BACKOFF_MILLIS"    default:"200"`
		ReconcileIntervalSeconds int    `envconfig:"RECONCILE_INTERVAL_SECONDS" default:"300"`
		StaleAfterSeconds        int    `envconfig:"STALE_AFTER_SECONDS"        default:"900"`
		ReportBucket             string `envconfig:"REPORT_BUCKET"`
	} `envconfig:"SETTLEMENT"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			Region          string `envconfig:"REGION"`
			Endpoint        string `envconfig:"ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			UsePathStyle    bool   `envconfig:"USE_PATH_STYLE"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// idempotencyKeyTTL is how long the payment processor remembers an idempotency
// key. Replays of stuck settlements must happen inside it.
const idempotencyKeyTTL = 24 * time.Hour

// Validate reports settings the services cannot run with.
func (c *Config) Validate() error {
	var errs []error

	for name, value := range map[string]string{
		"FEE_DEFAULT_RENTER_PERCENT": c.Fee.DefaultRenterPercent,
		"FEE_DEFAULT_HUBBER_PERCENT": c.Fee.DefaultHubberPercent,
	} {
		if value == "" {
			continue
		}

		if pct, err := decimal.NewFromString(value); err != nil || pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, fmt.Errorf("%s must be a percentage between 0 and 100, got %q", name, value))
		}
	}

	if stale := time.Duration(c.Settlement.StaleAfterSeconds) * time.Second; stale >= idempotencyKeyTTL {
		errs = append(errs, fmt.Errorf("SETTLEMENT_STALE_AFTER_SECONDS must stay below %s", idempotencyKeyTTL))
	}

	if c.Fee.PlatformFixedCents < 0 {
		errs = append(errs, errors.New("FEE_PLATFORM_FIXED_CENTS must not be negative"))
	}

	return errors.Join(errs...)
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		if verr := conf.Validate(); verr != nil {
			log.Fatal().Err(verr).Msg("Invalid service configuration")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}
