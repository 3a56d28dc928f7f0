package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"casino-collector/models"
)

// PostgresWriter persists scored casino records to PostgreSQL. The full
// nested record is stored as a JSONB document alongside the flat columns
// the dashboard queries on.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS casinos (
			id              SERIAL PRIMARY KEY,
			name            TEXT         NOT NULL,
			url             TEXT         UNIQUE NOT NULL,
			completeness    NUMERIC(4,1) NOT NULL DEFAULT 0,
			license_count   INT          NOT NULL DEFAULT 0,
			provider_count  INT          NOT NULL DEFAULT 0,
			review_count    INT          NOT NULL DEFAULT 0,
			collection_date TIMESTAMPTZ  NOT NULL,
			document        JSONB        NOT NULL,
			created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_casinos_completeness ON casinos(completeness);
		CREATE INDEX IF NOT EXISTS idx_casinos_collected    ON casinos(collection_date);
	`)
	return err
}

// Clear deletes all stored casino records.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM casinos")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts the collection, clearing old data first.
func (pw *PostgresWriter) Write(casinos []*models.CasinoData) error {
	if len(casinos) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(casinos); i += batchSize {
		end := i + batchSize
		if end > len(casinos) {
			end = len(casinos)
		}
		if err := pw.insertBatch(casinos[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.CasinoData) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*8)

	for idx, c := range batch {
		doc, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("postgres: marshal %q: %w", c.Name, err)
		}
		base := idx * 8
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		valueArgs = append(valueArgs,
			c.Name, c.URL, c.DataCompletenessScore,
			len(c.Licenses), len(c.Providers), len(c.Reviews),
			c.CollectionDate, doc)
	}

	query := fmt.Sprintf(`
		INSERT INTO casinos (name, url, completeness, license_count, provider_count, review_count, collection_date, document)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves the stored collection — used by the report pipeline.
func (pw *PostgresWriter) FetchAll() ([]*models.CasinoData, error) {
	rows, err := pw.db.Query(`SELECT document FROM casinos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var casinos []*models.CasinoData
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		c := &models.CasinoData{}
		if err := json.Unmarshal(doc, c); err != nil {
			return nil, fmt.Errorf("postgres: decode document: %w", err)
		}
		c.Normalize()
		casinos = append(casinos, c)
	}
	return casinos, rows.Err()
}
