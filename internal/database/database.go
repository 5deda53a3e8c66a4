// Package database provides PostgreSQL connectivity. Connections are opened
// per operation and closed by the caller; there is no pool.
package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campuskit/registrar/internal/config"
	"github.com/campuskit/registrar/internal/metrics"
	"github.com/campuskit/registrar/pkg/logger"
)

// ErrNotConfigured is returned by Connect when the dialer could not be configured.
var ErrNotConfigured = errors.New("database dialer is not configured")

// Conn is the subset of *pgx.Conn used by repositories and migrations.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connector opens a new connection. Callers own the returned Conn and must close it.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// Dialer opens a fresh PostgreSQL connection on every Connect call.
type Dialer struct {
	connConfig *pgx.ConnConfig
	configErr  error
	log        *logger.Logger
}

// Ensure Dialer implements Connector
var _ Connector = (*Dialer)(nil)

// NewDialer parses the connection settings once. A parse failure is logged
// and the dialer is still returned; every Connect will then fail with it.
func NewDialer(cfg *config.DatabaseConfig, log *logger.Logger) *Dialer {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dialer{log: log.WithComponent("database")}

	connConfig, err := pgx.ParseConfig(BuildDSN(cfg))
	if err != nil {
		d.configErr = fmt.Errorf("failed to parse database config: %w", err)
		d.log.Error("database dialer misconfigured", "error", err, "host", cfg.Host, "database", cfg.DBName)
		return d
	}
	if cfg.ConnectTimeout > 0 {
		connConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	d.connConfig = connConfig
	return d
}

// Connect opens a new connection.
func (d *Dialer) Connect(ctx context.Context) (Conn, error) {
	if d.configErr != nil {
		metrics.RecordDBConnectError()
		return nil, d.configErr
	}
	if d.connConfig == nil {
		metrics.RecordDBConnectError()
		return nil, ErrNotConfigured
	}

	start := time.Now()
	conn, err := pgx.ConnectConfig(ctx, d.connConfig)
	if err != nil {
		metrics.RecordDBConnectError()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	metrics.RecordDBQuery("connect", time.Since(start))

	d.log.Debug("database connection opened", "host", d.connConfig.Host, "database", d.connConfig.Database)
	return conn, nil
}

// Err returns the configuration error recorded at construction, if any.
func (d *Dialer) Err() error {
	return d.configErr
}

// BuildDSN constructs a PostgreSQL connection string.
func BuildDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s@%s:%d/%s?sslmode=%s",
		url.UserPassword(cfg.User, cfg.Password).String(),
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
}

// HealthCheck opens a connection, pings it and closes it again.
func HealthCheck(ctx context.Context, c Connector) error {
	conn, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()

	return conn.Ping(ctx)
}
