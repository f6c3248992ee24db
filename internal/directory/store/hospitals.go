package store

import (
	"context"
	"sync"
	"time"

	"caresure/internal/directory/models"
	id "caresure/pkg/domain"
)

// HospitalStore keeps hospital records, including the endorsement state
// mutated by the endorsement ledger.
type HospitalStore struct {
	mu      sync.RWMutex
	nextID  id.HospitalID
	records map[id.HospitalID]*models.Hospital
}

func NewHospitals() *HospitalStore {
	return &HospitalStore{
		nextID:  1,
		records: make(map[id.HospitalID]*models.Hospital),
	}
}

func (s *HospitalStore) Create(_ context.Context, hospital *models.Hospital) (*models.Hospital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *hospital
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	return copyHospital(&record), nil
}

func (s *HospitalStore) Get(_ context.Context, hospitalID id.HospitalID) (*models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[hospitalID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyHospital(record), nil
}

// AppendEndorser adds an insurer to the endorser set and, once the set holds
// quorum endorsements, flips the endorsed flag. The flag never flips back.
func (s *HospitalStore) AppendEndorser(_ context.Context, hospitalID id.HospitalID, insurerID id.InsurerID, quorum int) (*models.Hospital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[hospitalID]
	if !ok {
		return nil, ErrNotFound
	}
	record.Endorsers = append(record.Endorsers, insurerID)
	if len(record.Endorsers) >= quorum {
		record.Endorsed = true
	}
	return copyHospital(record), nil
}

func (s *HospitalStore) List(_ context.Context) ([]*models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Hospital, 0, len(s.records))
	for i := id.HospitalID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok {
			out = append(out, copyHospital(record))
		}
	}
	return out, nil
}

// copyHospital returns a deep copy so callers cannot mutate the stored
// endorser slice.
func copyHospital(h *models.Hospital) *models.Hospital {
	copyRecord := *h
	copyRecord.Endorsers = append([]id.InsurerID(nil), h.Endorsers...)
	return &copyRecord
}
