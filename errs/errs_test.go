package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/lifelib/errs"
)

func TestKindsUnwrapToSentinels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		sentinel error
		kind     errs.Kind
	}{
		{"data integrity", errs.DataIntegrity("op", "bad row %d", 3), errs.ErrDataIntegrity, errs.KindDataIntegrity},
		{"validation", errs.Validation("op", "x", "too big"), errs.ErrValidation, errs.KindValidation},
		{"out of range", errs.OutOfRange("op", "age", "63"), errs.ErrOutOfRange, errs.KindOutOfRange},
		{"config", errs.Config("op", "n", "required"), errs.ErrConfig, errs.KindConfig},
		{"computation", errs.Computation("op", "zero Dx"), errs.ErrComputation, errs.KindComputation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.ErrorIs(t, tc.err, tc.sentinel)
			assert.Equal(t, tc.kind, errs.KindOf(tc.err))
		})
	}
}

func TestErrorMessageCarriesOpAndField(t *testing.T) {
	t.Parallel()

	err := errs.Validation("params.ValidateSingleLife", "entry_age", "entry age %d exceeds age %d", 61, 60)
	assert.Equal(t, "validation error: params.ValidateSingleLife: entry_age: entry age 61 exceeds age 60", err.Error())
	assert.Equal(t, "entry_age", errs.FieldOf(err))
}

func TestWrapKeepsKindAndField(t *testing.T) {
	t.Parallel()

	inner := errs.OutOfRange("mortality.QxAt", "age", "age 63 outside [60, 62]")
	wrapped := fmt.Errorf("outer: %w", errs.Wrap("singlelife.Ax", inner))

	require.ErrorIs(t, wrapped, errs.ErrOutOfRange)
	assert.Equal(t, errs.KindOutOfRange, errs.KindOf(wrapped))
	assert.Equal(t, "age", errs.FieldOf(wrapped))
	assert.Contains(t, wrapped.Error(), "singlelife.Ax: mortality.QxAt")
}

func TestWrapForeignErrorBecomesComputation(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := errs.Wrap("op", cause)

	assert.ErrorIs(t, err, errs.ErrComputation)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, errs.Wrap("op", nil))
	assert.Equal(t, errs.Kind(0), errs.KindOf(cause))
}

func TestDomainMatchesOutOfRangeAndValidation(t *testing.T) {
	t.Parallel()

	err := errs.Wrap("singlelife.Ax", errs.Domain("params.ValidateSingleLife", "x", "age %d outside [60, 62]", 59))

	assert.ErrorIs(t, err, errs.ErrOutOfRange)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, errs.KindOutOfRange, errs.KindOf(err))
	assert.NotErrorIs(t, errs.OutOfRange("op", "age", "63"), errs.ErrValidation)
}
