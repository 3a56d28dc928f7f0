package storage

import "casino-collector/models"

// CasinoWriter is the interface any storage backend must satisfy.
type CasinoWriter interface {
	Write(casinos []*models.CasinoData) error
	Close() error
}

// CasinoReader is the interface for backends that can return the stored
// collection, used by the report pipeline.
type CasinoReader interface {
	FetchAll() ([]*models.CasinoData, error)
}
