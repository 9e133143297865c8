package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./postgres.go -destination=./mocks/postgres_mock.go -package=mocks

//nolint:revive
import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"renthubber/config"
	"renthubber/shared/constant"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10

	txMaxSerializationRetries = 3
	txRetryBaseDelay          = 20 * time.Millisecond
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}
}

// Transactor runs a unit of work inside one serializable write transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
}

type transactor struct {
	db *sqlx.DB
}

func NewTransactor(conn *Connection) Transactor {
	return &transactor{db: conn.Write}
}

// WithinTx commits when fn returns nil and rolls back otherwise. Serialization
// failures reported by postgres restart fn from the beginning.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	backoff := retry.WithMaxRetries(txMaxSerializationRetries, retry.NewExponential(txRetryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error { //nolint:wrapcheck
		err := t.run(ctx, fn)
		if IsSerializationFailure(err) {
			log.Warn().Err(err).Msg("serialization failure, restarting transaction")

			return retry.RetryableError(err)
		}

		return err
	})
}

func (t *transactor) run(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	tx, err := t.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// PqCode returns the postgres error code wrapped in err, if any.
func PqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

func IsSerializationFailure(err error) bool {
	return PqCode(err) == constant.PqErrorCodeSerialization
}

func IsUniqueViolation(err error) bool {
	return PqCode(err) == constant.PqErrorCodeUniqueViolation
}

func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		config.DB.Postgres.Write.Host,
		config.DB.Postgres.Write.Port,
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		config.DB.Postgres.Read.Username,
		config.DB.Postgres.Read.Password,
		config.DB.Postgres.Read.Host,
		config.DB.Postgres.Read.Port,
		getDBName(config, config.DB.Postgres.Read.Name),
		config.DB.Postgres.Read.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresConnection connects with a constant backoff between attempts.
// It returns nil when every attempt failed.
func CreatePostgresConnection(name, username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)

	logger := log.With().Str("name", name).Str("host", host).Str("port", port).Str("dbName", dbName).Logger()

	var (
		sqlDB   *sqlx.DB
		attempt int
	)

	backoff := retry.WithMaxRetries(uint64(max(maxRetry-1, 0)), retry.NewConstant(time.Duration(waitTime)*time.Second))

	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		attempt++

		db, err := sqlx.ConnectContext(ctx, "postgres", descriptor)
		if err != nil {
			logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

			return retry.RetryableError(err)
		}

		sqlDB = db

		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Giving up connecting to database")

		return nil
	}

	sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
	sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

	logger.Info().Msg("Connected to database")

	return sqlDB
}
