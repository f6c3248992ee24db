package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"caresure/internal/stakeholder/models"
	id "caresure/pkg/domain"
)

// ErrNotFound is the storage-level absence sentinel. It is a plain sentinel on
// purpose: services translate it into a domain error at their boundary, and a
// plain value cannot be confused with another store's not-found via errors.Is.
var ErrNotFound = errors.New("stakeholder not found")

// InMemoryStore keeps stakeholder records in memory. Identifiers are
// allocated from a monotonic counter starting at 1; zero is reserved.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  id.StakeholderID
	records map[id.StakeholderID]*models.Stakeholder
}

// New constructs an empty in-memory stakeholder store.
func New() *InMemoryStore {
	return &InMemoryStore{
		nextID:  1,
		records: make(map[id.StakeholderID]*models.Stakeholder),
	}
}

// Create allocates the next identifier and stores a new unverified record.
func (s *InMemoryStore) Create(_ context.Context, role models.Role, now time.Time) (*models.Stakeholder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := &models.Stakeholder{
		ID:        s.nextID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.records[record.ID] = record
	copyRecord := *record
	return &copyRecord, nil
}

func (s *InMemoryStore) Get(_ context.Context, stakeholderID id.StakeholderID) (*models.Stakeholder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[stakeholderID]
	if !ok {
		return nil, ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

// SetVerified flips the verified flag and refreshes the update timestamp.
func (s *InMemoryStore) SetVerified(_ context.Context, stakeholderID id.StakeholderID, now time.Time) (*models.Stakeholder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[stakeholderID]
	if !ok {
		return nil, ErrNotFound
	}
	record.Verified = true
	record.UpdatedAt = now
	copyRecord := *record
	return &copyRecord, nil
}

// List returns all stakeholders in identifier order.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Stakeholder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Stakeholder, 0, len(s.records))
	for i := id.StakeholderID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
