package service

import (
	"context"
	"errors"
	"log/slog"

	"caresure/internal/directory/models"
	"caresure/internal/directory/store"
	"caresure/internal/platform/txn"
	stakeholdermodels "caresure/internal/stakeholder/models"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

// Stakeholders is the identity-ledger surface the directory needs: base
// records may only be created for an existing stakeholder of the right role.
type Stakeholders interface {
	Get(ctx context.Context, stakeholderID id.StakeholderID) (*stakeholdermodels.Stakeholder, error)
}

// Service owns the plain keyed base records the workflow core reads:
// patients, hospitals, insurers, the treatment catalog, and documents. No
// lifecycle logic lives here beyond existence and role checks.
type Service struct {
	patients     *store.PatientStore
	hospitals    *store.HospitalStore
	insurers     *store.InsurerStore
	catalog      *store.TreatmentCatalog
	documents    *store.DocumentStore
	stakeholders Stakeholders
	tx           *txn.Serializer
	logger       *slog.Logger
}

func NewService(
	patients *store.PatientStore,
	hospitals *store.HospitalStore,
	insurers *store.InsurerStore,
	catalog *store.TreatmentCatalog,
	documents *store.DocumentStore,
	stakeholders Stakeholders,
	tx *txn.Serializer,
	logger *slog.Logger,
) *Service {
	return &Service{
		patients:     patients,
		hospitals:    hospitals,
		insurers:     insurers,
		catalog:      catalog,
		documents:    documents,
		stakeholders: stakeholders,
		tx:           tx,
		logger:       logger,
	}
}

func (s *Service) RegisterPatient(ctx context.Context, stakeholderID id.StakeholderID, firstName, lastName, address string) (*models.Patient, error) {
	if err := s.requireRole(ctx, stakeholderID, stakeholdermodels.RolePatient); err != nil {
		return nil, err
	}
	var record *models.Patient
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.patients.Create(ctx, &models.Patient{
			StakeholderID: stakeholderID,
			FirstName:     firstName,
			LastName:      lastName,
			Address:       address,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create patient")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "patient registered", "patient_id", record.ID, "stakeholder_id", stakeholderID)
	return record, nil
}

func (s *Service) RegisterHospital(ctx context.Context, stakeholderID id.StakeholderID, name, city string) (*models.Hospital, error) {
	if err := s.requireRole(ctx, stakeholderID, stakeholdermodels.RoleHospital); err != nil {
		return nil, err
	}
	var record *models.Hospital
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.hospitals.Create(ctx, &models.Hospital{
			StakeholderID: stakeholderID,
			Name:          name,
			City:          city,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create hospital")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "hospital registered", "hospital_id", record.ID, "stakeholder_id", stakeholderID)
	return record, nil
}

func (s *Service) RegisterInsurer(ctx context.Context, stakeholderID id.StakeholderID, name string) (*models.Insurer, error) {
	if err := s.requireRole(ctx, stakeholderID, stakeholdermodels.RoleInsurer); err != nil {
		return nil, err
	}
	var record *models.Insurer
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.insurers.Create(ctx, &models.Insurer{
			StakeholderID: stakeholderID,
			Name:          name,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create insurer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "insurer registered", "insurer_id", record.ID, "stakeholder_id", stakeholderID)
	return record, nil
}

func (s *Service) AddTreatmentType(ctx context.Context, code, description string, unitCost int64) (*models.TreatmentType, error) {
	if code == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "treatment code is required")
	}
	record := &models.TreatmentType{Code: code, Description: description, UnitCost: unitCost}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.catalog.Put(ctx, record)
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store treatment type")
	}
	return record, nil
}

func (s *Service) AddDocument(ctx context.Context, patientID id.PatientID, name, uri string) (*models.Document, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "document name is required")
	}
	if _, err := s.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}
	var record *models.Document
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.documents.Create(ctx, &models.Document{
			PatientID: patientID,
			Name:      name,
			URI:       uri,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) GetPatient(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	record, err := s.patients.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "patient not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read patient")
	}
	return record, nil
}

func (s *Service) GetHospital(ctx context.Context, hospitalID id.HospitalID) (*models.Hospital, error) {
	record, err := s.hospitals.Get(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "hospital not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read hospital")
	}
	return record, nil
}

func (s *Service) GetInsurer(ctx context.Context, insurerID id.InsurerID) (*models.Insurer, error) {
	record, err := s.insurers.Get(ctx, insurerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "insurer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read insurer")
	}
	return record, nil
}

func (s *Service) GetTreatmentType(ctx context.Context, code string) (*models.TreatmentType, error) {
	record, err := s.catalog.Get(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "treatment type not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read treatment type")
	}
	return record, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*models.Patient, error) {
	return s.patients.List(ctx)
}

func (s *Service) ListHospitals(ctx context.Context) ([]*models.Hospital, error) {
	return s.hospitals.List(ctx)
}

func (s *Service) ListInsurers(ctx context.Context) ([]*models.Insurer, error) {
	return s.insurers.List(ctx)
}

func (s *Service) ListTreatmentTypes(ctx context.Context) ([]*models.TreatmentType, error) {
	return s.catalog.List(ctx)
}

func (s *Service) ListDocuments(ctx context.Context, patientID id.PatientID) ([]*models.Document, error) {
	return s.documents.ListByPatient(ctx, patientID)
}

// requireRole checks the backing stakeholder exists and carries the expected
// role. Verification is not required to create a base record; it gates the
// workflow operations instead.
func (s *Service) requireRole(ctx context.Context, stakeholderID id.StakeholderID, role stakeholdermodels.Role) error {
	if stakeholderID.IsNil() {
		return dErrors.New(dErrors.CodeNotFound, "stakeholder not found")
	}
	record, err := s.stakeholders.Get(ctx, stakeholderID)
	if err != nil {
		return err
	}
	if record.Role != role {
		return dErrors.New(dErrors.CodeInvalidInput, "stakeholder role mismatch")
	}
	return nil
}
