package store

import (
	"context"
	"sync"
	"time"

	"caresure/internal/directory/models"
	id "caresure/pkg/domain"
)

// InsurerStore keeps insurer records; they are immutable after creation.
type InsurerStore struct {
	mu      sync.RWMutex
	nextID  id.InsurerID
	records map[id.InsurerID]*models.Insurer
}

func NewInsurers() *InsurerStore {
	return &InsurerStore{
		nextID:  1,
		records: make(map[id.InsurerID]*models.Insurer),
	}
}

func (s *InsurerStore) Create(_ context.Context, insurer *models.Insurer) (*models.Insurer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *insurer
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *InsurerStore) Get(_ context.Context, insurerID id.InsurerID) (*models.Insurer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[insurerID]
	if !ok {
		return nil, ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

func (s *InsurerStore) List(_ context.Context) ([]*models.Insurer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Insurer, 0, len(s.records))
	for i := id.InsurerID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
