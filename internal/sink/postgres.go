package sink

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/trigger"
	json "github.com/goccy/go-json"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresSink implements Sink using PostgreSQL.
type PostgresSink struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

const createTableStmt = `
	CREATE TABLE IF NOT EXISTS detection_events (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		emitted_at TIMESTAMPTZ NOT NULL,
		payload    JSONB NOT NULL
	)
`

// NewPostgresSink creates a new PostgreSQL sink and ensures the events table
// exists.
func NewPostgresSink(cfg *PostgresConfig) (*PostgresSink, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(createTableStmt); err != nil {
		return nil, fmt.Errorf("create events table: %w", err)
	}

	cfg.Logger.Info("postgres-sink-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresSink{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// Record stores a detection event. The full event is stored as JSONB so new
// payload shapes never need a schema migration.
func (p *PostgresSink) Record(ctx context.Context, event *trigger.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	query := `
		INSERT INTO detection_events (id, kind, emitted_at, payload)
		VALUES ($1, $2, $3, $4)
	`

	_, err = p.db.ExecContext(ctx, query,
		event.ID,
		event.Kind,
		event.EmittedAt,
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	p.logger.Debug("event-stored",
		zap.String("event-id", event.ID),
		zap.String("kind", event.Kind))

	return nil
}

// Close closes the database connection.
func (p *PostgresSink) Close() error {
	p.logger.Info("closing-postgres-sink")
	return p.db.Close()
}
