package statevector

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireAmpsClose(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		require.InDelta(t, real(want[i]), real(got[i]), tol, "index %d real part", i)
		require.InDelta(t, imag(want[i]), imag(got[i]), tol, "index %d imag part", i)
	}
}

// TestDispatchEquivalenceAcrossPaths checks that the diagonal path, the
// generic dense path, the k in {2..5} unrolled specializations, and
// ApplyMatrix's own dispatch logic all agree on the same operator, for
// every target count from a single qubit (the dedicated apply1Dense path)
// through one beyond the unrolled kernels' range (k=6, which ApplyMatrix
// must fall back to the generic path for even with OptimizedGates set).
func TestDispatchEquivalenceAcrossPaths(t *testing.T) {
	for k := 1; k <= 6; k++ {
		k := k
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			numQubits := k + 2
			qubits := make([]int, k)
			for i := range qubits {
				qubits[i] = i
			}
			rng := rand.New(rand.NewSource(int64(1000 + k)))
			dim := 1 << uint(k)

			initial := make([]complex128, uint64(1)<<uint(numQubits))
			for i := range initial {
				initial[i] = complex(rng.NormFloat64(), rng.NormFloat64())
			}
			newState := func() *State {
				s := New(numQubits)
				copy(s.amps, initial)
				return s
			}

			denseOperator := make([]complex128, dim*dim)
			for i := range denseOperator {
				denseOperator[i] = complex(rng.NormFloat64(), rng.NormFloat64())
			}

			generic := newState()
			generic.applyGenericDense(qubits, denseOperator)

			dispatchedDefault := newState()
			require.NoError(t, dispatchedDefault.ApplyMatrix(qubits, denseOperator))
			requireAmpsClose(t, generic.amps, dispatchedDefault.amps, 1e-9)

			if k >= 2 && k <= 5 {
				unrolled := newState()
				unrolled.applyUnrolled(qubits, denseOperator)
				requireAmpsClose(t, generic.amps, unrolled.amps, 1e-9)

				dispatchedOptimized := newState()
				dispatchedOptimized.EnableGateOpt()
				require.NoError(t, dispatchedOptimized.ApplyMatrix(qubits, denseOperator))
				requireAmpsClose(t, generic.amps, dispatchedOptimized.amps, 1e-9)
			}

			if k == 6 {
				// Past the unrolled range: OptimizedGates must not change
				// the result even though it's set.
				dispatchedOptimized := newState()
				dispatchedOptimized.EnableGateOpt()
				require.NoError(t, dispatchedOptimized.ApplyMatrix(qubits, denseOperator))
				requireAmpsClose(t, generic.amps, dispatchedOptimized.amps, 1e-9)
			}

			// Diagonal path vs. the same operator expressed densely (a
			// dense matrix whose only nonzero entries sit on the diagonal).
			diag := make([]complex128, dim)
			for i := range diag {
				diag[i] = complex(rng.NormFloat64(), rng.NormFloat64())
			}
			diagAsDense := make([]complex128, dim*dim)
			for i := 0; i < dim; i++ {
				diagAsDense[i+dim*i] = diag[i]
			}

			diagonalPath := newState()
			diagonalPath.applyDiagonal(qubits, diag)

			denseEquivalent := newState()
			denseEquivalent.applyGenericDense(qubits, diagAsDense)

			requireAmpsClose(t, diagonalPath.amps, denseEquivalent.amps, 1e-9)
		})
	}
}

// TestGateKernelsAreInvariantUnderThreadCount drives ApplyMatrix with a
// zero parallelism threshold so every thread count actually takes the
// errgroup fork/join branch in parallelFor, not just the sequential
// fallback, and checks the result never depends on how the work was split.
func TestGateKernelsAreInvariantUnderThreadCount(t *testing.T) {
	rng := rand.New(rand.NewSource(4242))
	numQubits := 6
	qubits := []int{1, 3, 4}
	dim := 1 << len(qubits)

	initial := make([]complex128, uint64(1)<<uint(numQubits))
	for i := range initial {
		initial[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	operator := make([]complex128, dim*dim)
	for i := range operator {
		operator[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	var results [][]complex128
	for _, threads := range []int{1, 2, 4} {
		s := New(numQubits)
		copy(s.amps, initial)
		s.Configure(Config{Threads: threads, Threshold: 0})
		require.NoError(t, s.ApplyMatrix(qubits, operator))
		results = append(results, s.amps)
	}
	for i := 1; i < len(results); i++ {
		requireAmpsClose(t, results[0], results[i], 1e-9)
	}
}

// TestReductionKernelsAreInvariantUnderThreadCount is
// TestGateKernelsAreInvariantUnderThreadCount's counterpart for the
// per-thread-accumulate-then-combine reductions.
func TestReductionKernelsAreInvariantUnderThreadCount(t *testing.T) {
	rng := rand.New(rand.NewSource(777))
	numQubits := 6
	qubits := []int{0, 2, 5}
	dim := 1 << len(qubits)

	initial := make([]complex128, uint64(1)<<uint(numQubits))
	for i := range initial {
		initial[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	operator := make([]complex128, dim*dim)
	for i := range operator {
		operator[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	var norms []float64
	var evs []complex128
	var probs [][]float64
	for _, threads := range []int{1, 2, 4} {
		s := New(numQubits)
		copy(s.amps, initial)
		s.Configure(Config{Threads: threads, Threshold: 0})

		norms = append(norms, s.Norm())

		ev, err := s.ExpectationValue(qubits, operator)
		require.NoError(t, err)
		evs = append(evs, ev)

		p, err := s.ProbabilitySubset(qubits)
		require.NoError(t, err)
		probs = append(probs, p)
	}
	for i := 1; i < len(norms); i++ {
		require.InDelta(t, norms[0], norms[i], 1e-9)
		require.InDelta(t, real(evs[0]), real(evs[i]), 1e-9)
		require.InDelta(t, imag(evs[0]), imag(evs[i]), 1e-9)
		for j := range probs[0] {
			require.InDelta(t, probs[0][j], probs[i][j], 1e-9)
		}
	}
}
