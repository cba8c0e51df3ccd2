package partition

import (
	"errors"
	"fmt"

	"github.com/neatniets/number-partitioning-genetic-algorithm/ga"
	"github.com/neatniets/number-partitioning-genetic-algorithm/problem"
)

var (
	// ErrInvalidArgument is returned for empty inputs and non-positive sizes
	// or limits.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfMemory is returned when a run would need more chromosome
	// storage than allowed.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrArithmeticOverflow is returned when subset sums of the items could
	// overflow an int64.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ga.ErrInvalidArgument), errors.Is(err, problem.ErrEmpty),
		errors.Is(err, problem.ErrLengthMismatch):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	case errors.Is(err, ga.ErrOutOfMemory):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	case errors.Is(err, problem.ErrOverflow):
		return fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	}
	return err
}
