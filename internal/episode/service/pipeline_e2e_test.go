package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caresure/internal/audit"
	directoryservice "caresure/internal/directory/service"
	directorystore "caresure/internal/directory/store"
	endorsementservice "caresure/internal/endorsement/service"
	endorsementstore "caresure/internal/endorsement/store"
	"caresure/internal/episode/store"
	"caresure/internal/platform/txn"
	policyservice "caresure/internal/policy/service"
	policystore "caresure/internal/policy/store"
	stakeholdermodels "caresure/internal/stakeholder/models"
	stakeholderservice "caresure/internal/stakeholder/service"
	stakeholderstore "caresure/internal/stakeholder/store"
	subscriptionservice "caresure/internal/subscription/service"
	subscriptionstore "caresure/internal/subscription/store"
	"caresure/internal/treasury"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

// TestFullPipeline walks a complete care episode through every component:
// registration and verification, policy issuance, subscription, endorsement
// quorum, appointment, claim, approval, and disbursement with its paired
// ledger transaction.
func TestFullPipeline(t *testing.T) {
	ctx := context.Background()
	tx := txn.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditor := audit.NewPublisher(audit.NewInMemoryStore())

	stakeholders := stakeholderservice.NewService(stakeholderstore.New(), tx, auditor)
	patients := directorystore.NewPatients()
	hospitals := directorystore.NewHospitals()
	insurers := directorystore.NewInsurers()
	catalog := directorystore.NewTreatmentCatalog()
	documents := directorystore.NewDocuments()
	funds := treasury.NewLedger()

	directory := directoryservice.NewService(patients, hospitals, insurers, catalog, documents, stakeholders, tx, logger)
	endorsements := endorsementservice.NewService(hospitals, insurers, endorsementstore.New(), tx, auditor)
	policyStore := policystore.New()
	policies := policyservice.NewService(policyStore, insurers, stakeholders, tx, auditor)
	subscriptions := subscriptionservice.NewService(subscriptionstore.New(), policyStore, patients, stakeholders, tx, auditor)

	episodes := NewService(
		Stores{
			Appointments:  store.NewAppointments(),
			Bills:         store.NewBills(),
			Treatments:    store.NewTreatments(),
			Claims:        store.NewClaims(),
			Disbursements: store.NewDisbursements(),
			Transactions:  store.NewTransactions(),
		},
		Collaborators{
			Patients:     patients,
			Hospitals:    hospitals,
			Policies:     policyStore,
			Catalog:      catalog,
			Stakeholders: stakeholders,
			Payouts:      funds,
		},
		tx,
		auditor,
	)

	registerInsurer := func(name string) id.InsurerID {
		sh, err := stakeholders.Register(ctx, stakeholdermodels.RoleInsurer)
		require.NoError(t, err)
		require.NoError(t, stakeholders.Verify(ctx, sh.ID))
		insurer, err := directory.RegisterInsurer(ctx, sh.ID, name)
		require.NoError(t, err)
		return insurer.ID
	}

	// Insurer issues a policy.
	issuerID := registerInsurer("Acme Mutual")
	policy, err := policies.Create(ctx, issuerID, policyservice.Terms{
		Name:       "basic-cover",
		Coverage:   "inpatient care",
		Premium:    100,
		CoverLimit: 5000,
		TermDays:   365,
	})
	require.NoError(t, err)

	// Patient registers, verifies and subscribes.
	patientSh, err := stakeholders.Register(ctx, stakeholdermodels.RolePatient)
	require.NoError(t, err)
	require.NoError(t, stakeholders.Verify(ctx, patientSh.ID))
	patient, err := directory.RegisterPatient(ctx, patientSh.ID, "Ada", "Osei", "12 Ring Road")
	require.NoError(t, err)
	_, err = subscriptions.Subscribe(ctx, policy.ID, patient.ID)
	require.NoError(t, err)
	bound, err := directory.GetPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, policy.ID, bound.CurrentPolicy)

	// Hospital registers and earns its endorsement quorum.
	hospitalSh, err := stakeholders.Register(ctx, stakeholdermodels.RoleHospital)
	require.NoError(t, err)
	require.NoError(t, stakeholders.Verify(ctx, hospitalSh.ID))
	hospital, err := directory.RegisterHospital(ctx, hospitalSh.ID, "St. Mary", "Accra")
	require.NoError(t, err)

	for i, insurerID := range []id.InsurerID{issuerID, registerInsurer("Beta Health"), registerInsurer("Gamma Life")} {
		require.NoError(t, endorsements.Endorse(ctx, hospital.ID, insurerID))
		got, err := directory.GetHospital(ctx, hospital.ID)
		require.NoError(t, err)
		assert.Equal(t, i == 2, got.Endorsed, "endorsed flips on the third endorsement, not before")
	}

	// Appointment, visit, claim.
	appointment, err := episodes.CreateAppointment(ctx, patient.ID, hospital.ID, time.Now().Add(24*time.Hour), "surgery consult")
	require.NoError(t, err)
	require.NoError(t, episodes.MarkVisited(ctx, appointment.ID))

	claim, err := episodes.SubmitClaim(ctx, ClaimRequest{
		PolicyID:      policy.ID,
		PatientID:     patient.ID,
		HospitalID:    hospital.ID,
		AppointmentID: appointment.ID,
		Amount:        500,
	})
	require.NoError(t, err)

	// Approval succeeds once, fails on retry.
	require.NoError(t, episodes.ApproveClaim(ctx, claim.ID))
	err = episodes.ApproveClaim(ctx, claim.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyApproved))

	// Disbursement produces one payout and one paired ledger entry.
	disbursement, transaction, err := episodes.Disburse(ctx, claim.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, claim.ID, disbursement.ClaimID)
	assert.Equal(t, int64(500), disbursement.Amount)
	assert.Equal(t, policy.ID, transaction.PolicyID)
	assert.Equal(t, patient.ID, transaction.PatientID)
	assert.Equal(t, int64(500), transaction.Amount)
	assert.Equal(t, int64(500), funds.Balance(ctx, patient.ID))
}
