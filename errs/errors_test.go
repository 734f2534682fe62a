package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedErrorsUnwrap(t *testing.T) {
	var err error = &DegenerateInputError{N: 1, Reason: "need at least 2 points"}
	wrapped := fmt.Errorf("round 3: %w", err)

	require.ErrorIs(t, wrapped, ErrDegenerateInput)
	require.NotErrorIs(t, wrapped, ErrEmptyInput)

	var dErr *DegenerateInputError
	require.True(t, errors.As(wrapped, &dErr))
	require.Equal(t, 1, dErr.N)
	require.Contains(t, wrapped.Error(), "degenerate input (1 points)")

	require.ErrorIs(t, &EmptyInputError{}, ErrEmptyInput)
	require.ErrorIs(t, &InsufficientDataError{Round: 2, Remaining: 1}, ErrInsufficientData)
	require.Equal(t, "insufficient data after round 2: 1 points remain",
		(&InsufficientDataError{Round: 2, Remaining: 1}).Error())
}
