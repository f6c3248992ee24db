package treasury

import (
	"context"
	"sync"

	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

// Ledger tracks payable balances per patient. Disbursements credit the
// patient's balance out of a caller-supplied funding envelope; settlement of
// the balance itself is external.
type Ledger struct {
	mu       sync.RWMutex
	balances map[id.PatientID]int64
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[id.PatientID]int64)}
}

// Transfer moves amount from the supplied funds into the patient's payable
// balance. Fails without mutation when funds do not cover the amount.
func (l *Ledger) Transfer(_ context.Context, patientID id.PatientID, amount, funds int64) error {
	if amount <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "transfer amount must be positive")
	}
	if funds < amount {
		return dErrors.New(dErrors.CodeInsufficientFunds, "insufficient funds for transfer")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[patientID] += amount
	return nil
}

// Balance returns the patient's payable balance. Unknown patients hold zero.
func (l *Ledger) Balance(_ context.Context, patientID id.PatientID) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[patientID]
}

// Withdraw settles part of a patient's payable balance.
func (l *Ledger) Withdraw(_ context.Context, patientID id.PatientID, amount int64) error {
	if amount <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "withdrawal amount must be positive")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[patientID] < amount {
		return dErrors.New(dErrors.CodeInsufficientFunds, "insufficient payable balance")
	}
	l.balances[patientID] -= amount
	return nil
}
