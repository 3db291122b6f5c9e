package statevector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReshapeToSortedIsIdentityWhenAlreadySorted(t *testing.T) {
	mat := []complex128{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	out := reshapeToSorted([]int{0, 1}, []int{0, 1}, mat)
	require.Equal(t, mat, out)
}

func TestReshapeToSortedDoesNotMutateInput(t *testing.T) {
	mat := []complex128{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	orig := append([]complex128(nil), mat...)
	_ = reshapeToSorted([]int{1, 0}, []int{0, 1}, mat)
	require.Equal(t, orig, mat)
}

// A CNOT with control on the high bit, target on the low bit, written in
// (control=1, target=0) user order, reshaped to sorted (target=0,
// control=1) order, should become the textbook CNOT matrix.
func TestReshapeToSortedSwapsBasisLabelsForCNOT(t *testing.T) {
	// User order [control=1, target=0]: basis index bit0=control, bit1=target.
	// This matrix is CNOT expressed with bit0 as control.
	cnotControlLow := []complex128{
		1, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
		0, 1, 0, 0,
	}
	// Sorted order [0,1] means bit0=target(0), bit1=control(1): standard CNOT
	// with control on the high bit.
	want := []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	}
	got := reshapeToSorted([]int{1, 0}, []int{0, 1}, cnotControlLow)
	require.Equal(t, want, got)
}

func TestSwapBasisLabelsIsItsOwnInverse(t *testing.T) {
	mat := []complex128{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	dim := uint64(4)
	cpy := append([]complex128(nil), mat...)
	swapBasisLabels(cpy, 0, 1, dim)
	swapBasisLabels(cpy, 0, 1, dim)
	require.Equal(t, mat, cpy)
}
