package store

import (
	"context"
	"sync"
	"time"

	"caresure/internal/episode/models"
	id "caresure/pkg/domain"
)

// BillStore keeps bills recorded against appointments.
type BillStore struct {
	mu      sync.RWMutex
	nextID  id.BillID
	records map[id.BillID]*models.Bill
}

func NewBills() *BillStore {
	return &BillStore{
		nextID:  1,
		records: make(map[id.BillID]*models.Bill),
	}
}

func (s *BillStore) Create(_ context.Context, bill *models.Bill) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *bill
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *BillStore) ListByAppointment(_ context.Context, appointmentID id.AppointmentID) ([]*models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Bill
	for i := id.BillID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok && record.AppointmentID == appointmentID {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}

// TreatmentStore keeps treatment records tied to appointments.
type TreatmentStore struct {
	mu      sync.RWMutex
	nextID  id.TreatmentID
	records map[id.TreatmentID]*models.TreatmentRecord
}

func NewTreatments() *TreatmentStore {
	return &TreatmentStore{
		nextID:  1,
		records: make(map[id.TreatmentID]*models.TreatmentRecord),
	}
}

func (s *TreatmentStore) Create(_ context.Context, treatment *models.TreatmentRecord) (*models.TreatmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *treatment
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *TreatmentStore) ListByAppointment(_ context.Context, appointmentID id.AppointmentID) ([]*models.TreatmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.TreatmentRecord
	for i := id.TreatmentID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok && record.AppointmentID == appointmentID {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
