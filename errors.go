package statevector

import "fmt"

// Kind classifies the error conditions a State operation can fail with.
type Kind int

const (
	// IndexOutOfRange means a qubit index was >= N, or an amplitude index
	// was >= 2^N.
	IndexOutOfRange Kind = iota
	// DimensionMismatch means two instances were combined with different
	// N, or an operator's length was neither 2^k nor 2^(2k) for the
	// target count k.
	DimensionMismatch
	// MalformedAssignment means an incoming vector's length was not a
	// power of two.
	MalformedAssignment
	// NumericallyIllDefined means Renormalize was asked to rescale a
	// zero-norm state. The core never returns this as an error (see
	// Error's doc comment); Renormalize logs the condition as a plain
	// message that does not carry this kind.
	NumericallyIllDefined
)

func (k Kind) String() string {
	switch k {
	case IndexOutOfRange:
		return "index out of range"
	case DimensionMismatch:
		return "dimension mismatch"
	case MalformedAssignment:
		return "malformed assignment"
	case NumericallyIllDefined:
		return "numerically ill-defined"
	default:
		return "unknown error kind"
	}
}

// Error is the error type returned by every checked-mode State operation.
// It is never used for NumericallyIllDefined: renormalizing a zero-norm
// state is a logged no-op, not a failure a caller must handle.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("statevector: %s: %s", e.Kind, e.Msg)
}

func indexOutOfRangeErr(what string, got, limit uint64) *Error {
	return &Error{
		Kind: IndexOutOfRange,
		Msg:  fmt.Sprintf("%s %d >= %d", what, got, limit),
	}
}

func dimensionMismatchErr(format string, args ...any) *Error {
	return &Error{Kind: DimensionMismatch, Msg: fmt.Sprintf(format, args...)}
}

func malformedAssignmentErr(format string, args ...any) *Error {
	return &Error{Kind: MalformedAssignment, Msg: fmt.Sprintf(format, args...)}
}
