package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"casino-collector/models"
	"casino-collector/services"
)

// CSVWriter exports flattened casino records to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the flattened header row. Intermediate directories are created
// automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(services.FlattenHeader()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one flattened row per casino record.
func (c *CSVWriter) Write(casinos []*models.CasinoData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, casino := range casinos {
		if err := c.writer.Write(services.Flatten(casino)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
