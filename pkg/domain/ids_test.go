package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "caresure/pkg/domain-errors"
)

func TestParseStakeholderID(t *testing.T) {
	id, err := ParseStakeholderID("42")
	require.NoError(t, err)
	assert.Equal(t, StakeholderID(42), id)
	assert.Equal(t, "42", id.String())
	assert.False(t, id.IsNil())
}

func TestParseID_Empty(t *testing.T) {
	_, err := ParsePolicyID("")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseID_NotANumber(t *testing.T) {
	_, err := ParseClaimID("claim-7")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseID_NegativeRejected(t *testing.T) {
	_, err := ParseAppointmentID("-1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

// Zero parses successfully but reads as nil; services reject it as a business
// rule so stores can report not_found consistently.
func TestParseID_ZeroIsNil(t *testing.T) {
	id, err := ParsePatientID("0")
	require.NoError(t, err)
	assert.True(t, id.IsNil())
}
