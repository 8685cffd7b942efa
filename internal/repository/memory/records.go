package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/internal/repository"
	"github.com/fwpboutique/crystalshop/pkg/errors"
)

// RecordStore keeps customer records in process memory. Records are deep-copied on the way
// in and out so callers never share state with the store.
type RecordStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID][]byte
	now     func() time.Time
}

// NewRecordStore creates an empty store
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[uuid.UUID][]byte),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NewRepositories wires the in-memory stores
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{Records: NewRecordStore()}
}

func (s *RecordStore) Add(ctx context.Context, record *domain.CustomerRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := s.now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	doc, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = doc
	return nil
}

func (s *RecordStore) Update(ctx context.Context, record *domain.CustomerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[record.ID]
	if !ok {
		return &errors.ErrNotFound{Resource: "record", ID: record.ID.String()}
	}
	var current domain.CustomerRecord
	if err := json.Unmarshal(existing, &current); err != nil {
		return err
	}
	if current.HasOrder() {
		return &errors.ErrOrderLocked{RecordID: record.ID.String()}
	}

	record.UpdatedAt = s.now()
	doc, err := json.Marshal(record)
	if err != nil {
		return err
	}
	s.records[record.ID] = doc
	return nil
}

func (s *RecordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerRecord, error) {
	s.mu.RLock()
	doc, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "record", ID: id.String()}
	}

	var record domain.CustomerRecord
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns records newest first
func (s *RecordStore) List(ctx context.Context) ([]*domain.CustomerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*domain.CustomerRecord, 0, len(s.records))
	for _, doc := range s.records {
		var record domain.CustomerRecord
		if err := json.Unmarshal(doc, &record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *RecordStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return &errors.ErrNotFound{Resource: "record", ID: id.String()}
	}
	delete(s.records, id)
	return nil
}
