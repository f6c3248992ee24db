package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"caresure/internal/audit"
	"caresure/internal/directory/store"
	"caresure/internal/platform/txn"
	stakeholdermodels "caresure/internal/stakeholder/models"
	stakeholderservice "caresure/internal/stakeholder/service"
	stakeholderstore "caresure/internal/stakeholder/store"
	dErrors "caresure/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	service      *Service
	stakeholders *stakeholderservice.Service
}

func (s *ServiceSuite) SetupTest() {
	tx := txn.New()
	auditor := audit.NewPublisher(audit.NewInMemoryStore())
	s.stakeholders = stakeholderservice.NewService(stakeholderstore.New(), tx, auditor)
	s.service = NewService(
		store.NewPatients(),
		store.NewHospitals(),
		store.NewInsurers(),
		store.NewTreatmentCatalog(),
		store.NewDocuments(),
		s.stakeholders,
		tx,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestRegisterPatient() {
	ctx := context.Background()
	sh, err := s.stakeholders.Register(ctx, stakeholdermodels.RolePatient)
	s.Require().NoError(err)

	patient, err := s.service.RegisterPatient(ctx, sh.ID, "Ada", "Osei", "12 Ring Road")
	s.Require().NoError(err)
	s.Equal(uint64(1), uint64(patient.ID))
	s.True(patient.CurrentPolicy.IsNil(), "new patients carry no policy binding")

	got, err := s.service.GetPatient(ctx, patient.ID)
	s.Require().NoError(err)
	s.Equal("Ada", got.FirstName)
}

func (s *ServiceSuite) TestRegisterPatient_RoleMismatch() {
	ctx := context.Background()
	sh, err := s.stakeholders.Register(ctx, stakeholdermodels.RoleInsurer)
	s.Require().NoError(err)

	_, err = s.service.RegisterPatient(ctx, sh.ID, "Ada", "Osei", "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestRegisterHospital_UnknownStakeholder() {
	_, err := s.service.RegisterHospital(context.Background(), 404, "St. Mary", "Accra")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestTreatmentCatalog_KeyedByCode() {
	ctx := context.Background()
	_, err := s.service.AddTreatmentType(ctx, "ortho-01", "knee replacement", 2500)
	s.Require().NoError(err)

	got, err := s.service.GetTreatmentType(ctx, "ortho-01")
	s.Require().NoError(err)
	s.Equal(int64(2500), got.UnitCost)

	_, err = s.service.GetTreatmentType(ctx, "missing")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.AddTreatmentType(ctx, "", "anonymous", 1)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestDocuments_ScopedToPatient() {
	ctx := context.Background()
	sh, err := s.stakeholders.Register(ctx, stakeholdermodels.RolePatient)
	s.Require().NoError(err)
	patient, err := s.service.RegisterPatient(ctx, sh.ID, "Ada", "Osei", "")
	s.Require().NoError(err)

	_, err = s.service.AddDocument(ctx, patient.ID, "referral.pdf", "s3://docs/1")
	s.Require().NoError(err)

	docs, err := s.service.ListDocuments(ctx, patient.ID)
	s.Require().NoError(err)
	s.Len(docs, 1)

	_, err = s.service.AddDocument(ctx, 99, "orphan.pdf", "")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
