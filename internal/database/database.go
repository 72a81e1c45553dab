package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"casevault/internal/config"
)

var sqlOpen = sql.Open

// BuildPostgresDSN builds a postgres:// URL for the archive database,
// e.g. postgres://vault:secret@db:5432/casevault?sslmode=disable.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", fmt.Errorf("invalid database config: host, port, user, and name are required")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}

	q := u.Query()
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// NewPostgres opens the traced pool that backs the blob table, verifies it
// within ctx and, when reg is set, exports pool statistics as
// go_sql_* metrics labelled db_name.
func NewPostgres(ctx context.Context, c config.DatabaseConfig, logger zerolog.Logger, reg prometheus.Registerer) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL, semconv.DBName(c.Name)),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	applyPool(db, c)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	start := time.Now()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if reg != nil {
		if err := reg.Register(collectors.NewDBStatsCollector(db, c.Name)); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				_ = db.Close()
				return nil, fmt.Errorf("register pool metrics: %w", err)
			}
		}
	}

	stats := db.Stats()
	logger.Info().
		Str("component", "database").
		Str("event", "db_connected").
		Str("db_host", c.Host).
		Str("db_name", c.Name).
		Int("max_open_conns", stats.MaxOpenConnections).
		Int("open_conns", stats.OpenConnections).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("archive database ready")

	return db, nil
}

// applyPool sets only the limits that are configured; zero keeps the
// database/sql default.
func applyPool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}
