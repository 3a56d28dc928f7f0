package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"casino-collector/models"
)

// MalformedInputError reports persisted JSON that cannot be parsed into
// the expected record shape. Index is the offending record's position in
// the array, or -1 when the document itself is unreadable.
type MalformedInputError struct {
	Index int
	Cause error
}

func (e *MalformedInputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed input: %v", e.Cause)
	}
	return fmt.Sprintf("malformed input: record %d: %v", e.Index, e.Cause)
}

func (e *MalformedInputError) Unwrap() error { return e.Cause }

// JSONStore persists casino collections as JSON arrays in an output
// directory. The on-disk shape is the snake_case record layout, with
// RFC 3339 UTC timestamps, and is shared with the dashboard upload path.
type JSONStore struct {
	outputDir string
}

// NewJSONStore creates the output directory if needed.
func NewJSONStore(outputDir string) (*JSONStore, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("json: create output dir: %w", err)
	}
	return &JSONStore{outputDir: outputDir}, nil
}

// Save writes the collection to filename inside the output directory.
// An empty filename generates a timestamped one. Returns the full path.
func (s *JSONStore) Save(casinos []*models.CasinoData, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("casino_data_%s.json", time.Now().Format("20060102_150405"))
	}
	path := filepath.Join(s.outputDir, filename)

	buf, err := json.MarshalIndent(casinos, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json: marshal: %w", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return "", fmt.Errorf("json: write %q: %w", path, err)
	}
	return path, nil
}

// Load reads a casino collection from path (tried as given, then inside
// the output directory). Records are normalized and validated; the first
// record failing either check aborts the load with its index.
func (s *JSONStore) Load(path string) ([]*models.CasinoData, error) {
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		buf, err = os.ReadFile(filepath.Join(s.outputDir, path))
	}
	if err != nil {
		return nil, fmt.Errorf("json: read %q: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, &MalformedInputError{Index: -1, Cause: err}
	}

	casinos := make([]*models.CasinoData, 0, len(raw))
	for i, doc := range raw {
		c := &models.CasinoData{}
		if err := json.Unmarshal(doc, c); err != nil {
			return nil, &MalformedInputError{Index: i, Cause: err}
		}
		c.Normalize()
		if err := c.Validate(); err != nil {
			return nil, &MalformedInputError{Index: i, Cause: err}
		}
		casinos = append(casinos, c)
	}
	return casinos, nil
}
