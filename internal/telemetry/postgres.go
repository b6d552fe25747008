package telemetry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paanihub/paanictl/internal/models"
)

// PostgresSink lands every event in a single client_events table with
// the payload kept as jsonb, so downstream queries can unpack whatever
// shape each topic carries.
type PostgresSink struct {
	pool *pgxpool.Pool
}

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS client_events (
		id BIGSERIAL PRIMARY KEY,
		topic TEXT NOT NULL,
		payload JSONB NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

func NewPostgresSink(cfg models.DatabaseConfig) (*PostgresSink, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := pool.Exec(ctx, createEventsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating client_events table: %w", err)
	}

	return &PostgresSink{pool: pool}, nil
}

func (p *PostgresSink) WriteMessage(topic string, msg []byte) error {
	_, err := p.pool.Exec(context.Background(),
		"INSERT INTO client_events (topic, payload) VALUES ($1, $2)",
		topic, msg,
	)
	if err != nil {
		return fmt.Errorf("inserting %s event: %w", topic, err)
	}
	return nil
}

func (p *PostgresSink) Close() error {
	p.pool.Close()
	return nil
}
