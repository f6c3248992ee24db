package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"caresure/internal/policy/models"
	id "caresure/pkg/domain"
)

var ErrNotFound = errors.New("policy not found")

// InMemoryStore keeps policies keyed by identifier.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  id.PolicyID
	records map[id.PolicyID]*models.Policy
}

func New() *InMemoryStore {
	return &InMemoryStore{
		nextID:  1,
		records: make(map[id.PolicyID]*models.Policy),
	}
}

func (s *InMemoryStore) Create(_ context.Context, policy *models.Policy) (*models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *policy
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *InMemoryStore) Get(_ context.Context, policyID id.PolicyID) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[policyID]
	if !ok {
		return nil, ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

func (s *InMemoryStore) SetActive(_ context.Context, policyID id.PolicyID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[policyID]
	if !ok {
		return ErrNotFound
	}
	record.Active = active
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Policy, 0, len(s.records))
	for i := id.PolicyID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
