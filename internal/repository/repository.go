package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

// RecordStore persists customer records. Implementations are not transactional across calls.
type RecordStore interface {
	Add(ctx context.Context, record *domain.CustomerRecord) error
	Update(ctx context.Context, record *domain.CustomerRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerRecord, error)
	List(ctx context.Context) ([]*domain.CustomerRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories groups the stores used by the services
type Repositories struct {
	Records RecordStore
}
