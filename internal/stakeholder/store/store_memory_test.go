package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caresure/internal/stakeholder/models"
	dErrors "caresure/pkg/domain-errors"
)

func TestGet_AbsentRecord(t *testing.T) {
	s := New()

	_, err := s.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)

	// The sentinel matches by identity only; a not_found domain error from
	// another store must not satisfy errors.Is against it.
	assert.NotErrorIs(t, dErrors.New(dErrors.CodeNotFound, "policy not found"), ErrNotFound)
}

func TestSetVerified_AbsentRecord(t *testing.T) {
	s := New()

	record, err := s.Create(context.Background(), models.RolePatient, time.Now())
	require.NoError(t, err)

	_, err = s.SetVerified(context.Background(), record.ID+1, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}
