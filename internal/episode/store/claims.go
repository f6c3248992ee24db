package store

import (
	"context"
	"sync"
	"time"

	"caresure/internal/episode/models"
	id "caresure/pkg/domain"
)

// ClaimStore keeps claims keyed by identifier.
type ClaimStore struct {
	mu      sync.RWMutex
	nextID  id.ClaimID
	records map[id.ClaimID]*models.Claim
}

func NewClaims() *ClaimStore {
	return &ClaimStore{
		nextID:  1,
		records: make(map[id.ClaimID]*models.Claim),
	}
}

func (s *ClaimStore) Create(_ context.Context, claim *models.Claim) (*models.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *claim
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *ClaimStore) Get(_ context.Context, claimID id.ClaimID) (*models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[claimID]
	if !ok {
		return nil, ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

// SetApproved marks the claim approved. The flag never reverts.
func (s *ClaimStore) SetApproved(_ context.Context, claimID id.ClaimID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[claimID]
	if !ok {
		return ErrNotFound
	}
	record.Approved = true
	return nil
}

// ListByPatient returns a patient's claims in creation order.
func (s *ClaimStore) ListByPatient(_ context.Context, patientID id.PatientID) ([]*models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Claim
	for i := id.ClaimID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok && record.PatientID == patientID {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
