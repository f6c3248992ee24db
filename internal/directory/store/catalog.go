package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"caresure/internal/directory/models"
	id "caresure/pkg/domain"
)

// TreatmentCatalog indexes treatment types by their code, the natural
// uniqueness key, instead of scanning all records.
type TreatmentCatalog struct {
	mu      sync.RWMutex
	records map[string]*models.TreatmentType
}

func NewTreatmentCatalog() *TreatmentCatalog {
	return &TreatmentCatalog{records: make(map[string]*models.TreatmentType)}
}

func (s *TreatmentCatalog) Put(_ context.Context, t *models.TreatmentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *t
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	s.records[record.Code] = &record
	return nil
}

func (s *TreatmentCatalog) Get(_ context.Context, code string) (*models.TreatmentType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[code]
	if !ok {
		return nil, ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

func (s *TreatmentCatalog) List(_ context.Context) ([]*models.TreatmentType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TreatmentType, 0, len(s.records))
	for _, record := range s.records {
		copyRecord := *record
		out = append(out, &copyRecord)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// DocumentStore keeps opaque patient documents.
type DocumentStore struct {
	mu      sync.RWMutex
	nextID  id.DocumentID
	records map[id.DocumentID]*models.Document
}

func NewDocuments() *DocumentStore {
	return &DocumentStore{
		nextID:  1,
		records: make(map[id.DocumentID]*models.Document),
	}
}

func (s *DocumentStore) Create(_ context.Context, doc *models.Document) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *doc
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

func (s *DocumentStore) ListByPatient(_ context.Context, patientID id.PatientID) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Document
	for i := id.DocumentID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok && record.PatientID == patientID {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
