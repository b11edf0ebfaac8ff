package storage

import "aerotags/internal/model"

// Storage defines a sink for contract tag records.
type Storage interface {
	PutTagBatch(tags []model.ContractTag) error
}
