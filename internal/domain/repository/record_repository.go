package repository

import (
	"travelrecords/internal/domain/entity"
)

// RecordRepository defines durable storage for the full record
// sequence. The store owns the in-memory copy of truth; the
// repository only loads it at startup and rewrites it whole after
// each mutation, preserving sequence order.
type RecordRepository interface {
	LoadAll() ([]entity.Record, error)
	SaveAll(records []entity.Record) error
}
