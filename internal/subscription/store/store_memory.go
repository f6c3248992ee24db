package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"caresure/internal/subscription/models"
	id "caresure/pkg/domain"
)

var ErrNotFound = errors.New("subscription not found")

// InMemoryStore keeps subscriptions keyed by identifier.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  id.SubscriptionID
	records map[id.SubscriptionID]*models.Subscription
}

func New() *InMemoryStore {
	return &InMemoryStore{
		nextID:  1,
		records: make(map[id.SubscriptionID]*models.Subscription),
	}
}

func (s *InMemoryStore) Create(_ context.Context, subscription *models.Subscription) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *subscription
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *InMemoryStore) Get(_ context.Context, subscriptionID id.SubscriptionID) (*models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[subscriptionID]
	if !ok {
		return nil, ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

func (s *InMemoryStore) SetActive(_ context.Context, subscriptionID id.SubscriptionID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[subscriptionID]
	if !ok {
		return ErrNotFound
	}
	record.Active = active
	return nil
}

// ListByPatient returns a patient's subscriptions in creation order.
func (s *InMemoryStore) ListByPatient(_ context.Context, patientID id.PatientID) ([]*models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Subscription
	for i := id.SubscriptionID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok && record.PatientID == patientID {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
