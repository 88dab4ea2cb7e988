package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/denverdino/news-aggregator/internal/logger"
)

// PostgresHistory keeps the sent-item history in PostgreSQL, for
// deployments where several hosts share one digest schedule.
type PostgresHistory struct {
	db  *sql.DB
	ttl time.Duration
}

func NewPostgresHistory(connectionString string, ttl time.Duration) (*PostgresHistory, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	ph := &PostgresHistory{db: db, ttl: ttl}
	if err := ph.initSchema(); err != nil {
		return nil, err
	}
	if err := ph.cleanup(); err != nil {
		logger.Warn("history cleanup failed", "error", err)
	}
	return ph, nil
}

func (ph *PostgresHistory) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sent_news (
		id SERIAL PRIMARY KEY,
		url_hash VARCHAR(64) UNIQUE NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		sent_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_sent_news_url_hash ON sent_news(url_hash);
	CREATE INDEX IF NOT EXISTS idx_sent_news_sent_at ON sent_news(sent_at);
	`
	if _, err := ph.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (ph *PostgresHistory) Seen(url string) (bool, error) {
	cutoff := time.Now().Add(-ph.ttl)

	var count int
	query := `SELECT COUNT(*) FROM sent_news WHERE url_hash = $1 AND sent_at > $2`
	if err := ph.db.QueryRow(query, HashURL(url), cutoff).Scan(&count); err != nil {
		return false, fmt.Errorf("check history: %w", err)
	}
	return count > 0, nil
}

func (ph *PostgresHistory) Record(url, title string) error {
	query := `
		INSERT INTO sent_news (url_hash, title, url, sent_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (url_hash) DO UPDATE SET sent_at = NOW()
	`
	if _, err := ph.db.Exec(query, HashURL(url), title, url); err != nil {
		return fmt.Errorf("record sent item: %w", err)
	}
	return nil
}

// cleanup deletes entries past their TTL.
func (ph *PostgresHistory) cleanup() error {
	cutoff := time.Now().Add(-ph.ttl)

	result, err := ph.db.Exec(`DELETE FROM sent_news WHERE sent_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("cleanup history: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		logger.Debug("history cleanup removed old records", "count", rows)
	}
	return nil
}

func (ph *PostgresHistory) Close() error {
	if ph.db != nil {
		return ph.db.Close()
	}
	return nil
}
