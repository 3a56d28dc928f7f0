package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"casino-collector/models"
	"casino-collector/services"
)

func TestCSVWriterHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "casinos.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatal(err)
	}

	casino := roundTripFixture(t)
	if err := w.Write([]*models.CasinoData{casino}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}

	header := services.FlattenHeader()
	if len(rows[0]) != len(header) {
		t.Errorf("header width: got %d, want %d", len(rows[0]), len(header))
	}
	if rows[0][0] != "name" || rows[1][0] != casino.Name {
		t.Errorf("first column: got header %q, value %q", rows[0][0], rows[1][0])
	}
}
