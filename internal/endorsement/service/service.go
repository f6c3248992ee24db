package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"caresure/internal/audit"
	directorymodels "caresure/internal/directory/models"
	directorystore "caresure/internal/directory/store"
	"caresure/internal/endorsement/metrics"
	"caresure/internal/endorsement/models"
	"caresure/internal/platform/txn"
	id "caresure/pkg/domain"
	dErrors "caresure/pkg/domain-errors"
)

// Hospitals is the directory surface the endorsement ledger mutates.
// AppendEndorser flips the endorsed flag once the set reaches quorum.
type Hospitals interface {
	Get(ctx context.Context, hospitalID id.HospitalID) (*directorymodels.Hospital, error)
	AppendEndorser(ctx context.Context, hospitalID id.HospitalID, insurerID id.InsurerID, quorum int) (*directorymodels.Hospital, error)
}

// Insurers provides existence checks for the endorsing side.
type Insurers interface {
	Get(ctx context.Context, insurerID id.InsurerID) (*directorymodels.Insurer, error)
}

// EventStore is the append-only endorsement event log.
type EventStore interface {
	Append(ctx context.Context, event models.Endorsement) error
	ListByHospital(ctx context.Context, hospitalID id.HospitalID) ([]models.Endorsement, error)
}

type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service records insurer endorsements and promotes hospitals once quorum is
// reached. The Unendorsed -> Endorsed transition is monotonic and one-way.
type Service struct {
	hospitals Hospitals
	insurers  Insurers
	events    EventStore
	tx        *txn.Serializer
	auditor   *audit.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(hospitals Hospitals, insurers Insurers, events EventStore, tx *txn.Serializer, auditor *audit.Publisher, opts ...Option) *Service {
	svc := &Service{
		hospitals: hospitals,
		insurers:  insurers,
		events:    events,
		tx:        tx,
		auditor:   auditor,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Endorse records one insurer's endorsement of a hospital. Duplicate
// endorsements by the same insurer are rejected with no state change.
func (s *Service) Endorse(ctx context.Context, hospitalID id.HospitalID, insurerID id.InsurerID) error {
	if hospitalID.IsNil() {
		return dErrors.New(dErrors.CodeNotFound, "hospital not found")
	}
	if insurerID.IsNil() {
		return dErrors.New(dErrors.CodeNotFound, "insurer not found")
	}

	var (
		promoted bool
		setSize  int
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		hospital, err := s.hospitals.Get(ctx, hospitalID)
		if err != nil {
			return mapGetError(err, "hospital not found")
		}
		if _, err := s.insurers.Get(ctx, insurerID); err != nil {
			return mapGetError(err, "insurer not found")
		}
		if hospital.HasEndorser(insurerID) {
			if s.metrics != nil {
				s.metrics.IncrementDuplicatesRejected()
			}
			return dErrors.New(dErrors.CodeDuplicateEndorsement, "insurer already endorsed this hospital")
		}

		updated, err := s.hospitals.AppendEndorser(ctx, hospitalID, insurerID, models.Quorum)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append endorser")
		}
		if err := s.events.Append(ctx, models.Endorsement{
			HospitalID: hospitalID,
			InsurerID:  insurerID,
			Timestamp:  time.Now(),
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record endorsement event")
		}

		promoted = !hospital.Endorsed && updated.Endorsed
		setSize = len(updated.Endorsers)
		return nil
	})
	if err != nil {
		return err
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionEndorsementRecorded,
		Entity:    audit.EntityHospital,
		EntityID:  uint64(hospitalID),
		RelatedID: uint64(insurerID),
	})
	if s.metrics != nil {
		s.metrics.IncrementEndorsementsRecorded()
		s.metrics.ObserveEndorsersPerHospital(float64(setSize))
	}
	if promoted {
		s.emitAudit(ctx, audit.Event{
			Action:   audit.ActionHospitalEndorsed,
			Entity:   audit.EntityHospital,
			EntityID: uint64(hospitalID),
		})
		if s.metrics != nil {
			s.metrics.IncrementHospitalsEndorsed()
		}
		s.log(ctx, "hospital reached endorsement quorum", "hospital_id", hospitalID, "endorsers", setSize)
	}
	return nil
}

// ListEndorsers returns the hospital's endorser set in insertion order.
func (s *Service) ListEndorsers(ctx context.Context, hospitalID id.HospitalID) ([]id.InsurerID, error) {
	hospital, err := s.hospitals.Get(ctx, hospitalID)
	if err != nil {
		return nil, mapGetError(err, "hospital not found")
	}
	return hospital.Endorsers, nil
}

// ListEvents returns the endorsement event log for a hospital.
func (s *Service) ListEvents(ctx context.Context, hospitalID id.HospitalID) ([]models.Endorsement, error) {
	if _, err := s.hospitals.Get(ctx, hospitalID); err != nil {
		return nil, mapGetError(err, "hospital not found")
	}
	events, err := s.events.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list endorsement events")
	}
	return events, nil
}

func mapGetError(err error, msg string) error {
	if errors.Is(err, directorystore.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	_ = s.auditor.Emit(ctx, event)
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, msg, args...)
}
