package store

import (
	"context"
	"sync"

	"caresure/internal/endorsement/models"
	id "caresure/pkg/domain"
)

// InMemoryStore is the append-only endorsement event log.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []models.Endorsement
}

func New() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event models.Endorsement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByHospital returns endorsement events for a hospital in insertion order.
func (s *InMemoryStore) ListByHospital(_ context.Context, hospitalID id.HospitalID) ([]models.Endorsement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Endorsement
	for _, e := range s.events {
		if e.HospitalID == hospitalID {
			out = append(out, e)
		}
	}
	return out, nil
}
