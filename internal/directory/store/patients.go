package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"caresure/internal/directory/models"
	id "caresure/pkg/domain"
)

// ErrNotFound keeps storage-specific 404s consistent across the directory
// stores. Plain sentinel; services mint the domain error at their boundary.
var ErrNotFound = errors.New("record not found")

// PatientStore keeps patient base records in memory.
type PatientStore struct {
	mu      sync.RWMutex
	nextID  id.PatientID
	records map[id.PatientID]*models.Patient
}

func NewPatients() *PatientStore {
	return &PatientStore{
		nextID:  1,
		records: make(map[id.PatientID]*models.Patient),
	}
}

func (s *PatientStore) Create(_ context.Context, patient *models.Patient) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *patient
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *PatientStore) Get(_ context.Context, patientID id.PatientID) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[patientID]
	if !ok {
		return nil, ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

// SetCurrentPolicy overwrites the patient's current-policy pointer. Zero
// clears the binding.
func (s *PatientStore) SetCurrentPolicy(_ context.Context, patientID id.PatientID, policyID id.PolicyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[patientID]
	if !ok {
		return ErrNotFound
	}
	record.CurrentPolicy = policyID
	return nil
}

func (s *PatientStore) List(_ context.Context) ([]*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Patient, 0, len(s.records))
	for i := id.PatientID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
