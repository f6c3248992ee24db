package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"caresure/internal/episode/models"
	id "caresure/pkg/domain"
)

// ErrNotFound keeps storage-specific 404s consistent across the episode stores.
var ErrNotFound = errors.New("record not found")

// AppointmentStore keeps appointments keyed by identifier.
type AppointmentStore struct {
	mu      sync.RWMutex
	nextID  id.AppointmentID
	records map[id.AppointmentID]*models.Appointment
}

func NewAppointments() *AppointmentStore {
	return &AppointmentStore{
		nextID:  1,
		records: make(map[id.AppointmentID]*models.Appointment),
	}
}

func (s *AppointmentStore) Create(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *appointment
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *AppointmentStore) Get(_ context.Context, appointmentID id.AppointmentID) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[appointmentID]
	if !ok {
		return nil, ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

// SetVisited marks the appointment visited. The flag never reverts.
func (s *AppointmentStore) SetVisited(_ context.Context, appointmentID id.AppointmentID) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[appointmentID]
	if !ok {
		return nil, ErrNotFound
	}
	record.Visited = true
	copyRecord := *record
	return &copyRecord, nil
}

// ListByPatient returns a patient's appointments in creation order.
func (s *AppointmentStore) ListByPatient(_ context.Context, patientID id.PatientID) ([]*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Appointment
	for i := id.AppointmentID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok && record.PatientID == patientID {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
