package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotVerified, "stakeholder is not verified")
	require.Error(t, err)
	assert.Equal(t, "stakeholder is not verified", err.Error())
	assert.True(t, HasCode(err, CodeNotVerified))
	assert.False(t, HasCode(err, CodeNotFound))
}

func TestError_MessageFallsBackToCode(t *testing.T) {
	err := &Error{Code: CodeDuplicateEndorsement}
	assert.Equal(t, "duplicate_endorsement", err.Error())
}

func TestWrap_PreservesOriginalCode(t *testing.T) {
	inner := New(CodePolicyMismatch, "policy is not bound to patient")
	wrapped := Wrap(inner, CodeInternal, "claim submission failed")

	// The original domain code survives re-wrapping so callers can still
	// branch on the precondition that actually failed.
	assert.True(t, HasCode(wrapped, CodePolicyMismatch))
	assert.False(t, HasCode(wrapped, CodeInternal))
	assert.True(t, errors.Is(wrapped, inner))
}

func TestWrap_InfrastructureError(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	wrapped := Wrap(inner, CodeInternal, "failed to append audit event")

	assert.True(t, HasCode(wrapped, CodeInternal))
	assert.ErrorContains(t, wrapped, "failed to append audit event")
	assert.True(t, errors.Is(wrapped, inner))
}

func TestIs_MatchesByCode(t *testing.T) {
	a := New(CodeAlreadyApproved, "claim already approved")
	b := New(CodeAlreadyApproved, "different message")
	c := New(CodeNotFound, "claim not found")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestHasCode_NonDomainError(t *testing.T) {
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}
