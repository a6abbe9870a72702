package where

import (
	"fmt"

	"github.com/roach88/sqlb/internal/sqlval"
)

// FromPartial derives one Comparison per present field of r, in record
// order, all using op. An empty op means OpEq. Absent fields are skipped;
// an empty or all-absent record yields an empty slice.
func FromPartial(r sqlval.Record, op Op) []Predicate {
	if op == "" {
		op = OpEq
	}
	present := r.Present()
	preds := make([]Predicate, 0, len(present))
	for _, f := range present {
		preds = append(preds, Compare(f.Name, op, f.Value))
	}
	return preds
}

// EnsureFromPartial is like FromPartial but fails with ErrEmptyInput when
// no field is present. Use it where a statement must not run unguarded,
// such as UPDATE or DELETE conditions.
func EnsureFromPartial(r sqlval.Record, op Op) ([]Predicate, error) {
	preds := FromPartial(r, op)
	if len(preds) == 0 {
		return nil, fmt.Errorf("%w: all %d field(s) absent", ErrEmptyInput, len(r))
	}
	return preds, nil
}

// NonEmpty returns xs unchanged, or ErrEmptyInput when it is empty.
func NonEmpty[T any](xs []T) ([]T, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrEmptyInput)
	}
	return xs, nil
}
