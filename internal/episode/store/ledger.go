package store

import (
	"context"
	"sync"
	"time"

	"caresure/internal/episode/models"
	id "caresure/pkg/domain"
)

// DisbursementStore keeps payout records; one per approved-and-paid claim.
type DisbursementStore struct {
	mu      sync.RWMutex
	nextID  id.DisbursementID
	records map[id.DisbursementID]*models.Disbursement
}

func NewDisbursements() *DisbursementStore {
	return &DisbursementStore{
		nextID:  1,
		records: make(map[id.DisbursementID]*models.Disbursement),
	}
}

func (s *DisbursementStore) Create(_ context.Context, disbursement *models.Disbursement) (*models.Disbursement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *disbursement
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

// ListByClaim returns disbursements recorded for a claim.
func (s *DisbursementStore) ListByClaim(_ context.Context, claimID id.ClaimID) ([]*models.Disbursement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Disbursement
	for i := id.DisbursementID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok && record.ClaimID == claimID {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}

// TransactionStore keeps the ledger entries paired with disbursements.
type TransactionStore struct {
	mu      sync.RWMutex
	nextID  id.TransactionID
	records map[id.TransactionID]*models.Transaction
}

func NewTransactions() *TransactionStore {
	return &TransactionStore{
		nextID:  1,
		records: make(map[id.TransactionID]*models.Transaction),
	}
}

func (s *TransactionStore) Create(_ context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *transaction
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++
	s.records[record.ID] = &record
	copyRecord := record
	return &copyRecord, nil
}

// ListByPatient returns a patient's ledger entries in creation order.
func (s *TransactionStore) ListByPatient(_ context.Context, patientID id.PatientID) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Transaction
	for i := id.TransactionID(1); i < s.nextID; i++ {
		if record, ok := s.records[i]; ok && record.PatientID == patientID {
			copyRecord := *record
			out = append(out, &copyRecord)
		}
	}
	return out, nil
}
