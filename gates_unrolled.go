package statevector

// applyUnrolled is the k in {2,3,4,5} specialized path gated behind
// Config.OptimizedGates. Ported from Qiskit Aer's QubitVector
// apply_matrix_col_major_opt<N>: reshape the operator to sorted target order
// once up front (rather than re-deriving the user/sorted mapping on every
// outer iteration), then walk the outer counter with fixed-size, stack-sized
// index/cache arrays instead of the generic path's heap-allocated scratch
// slices.
//
// Qiskit Aer's C++ template additionally hand-unrolls the inner 2^N x 2^N
// accumulation into N+1 nested loops with a precomputed stride per qubit; Go
// has no template instantiation to lean on for that, so the inner
// accumulation here stays a fixed-size double loop. The outer index
// derivation and the up-front reshape are the parts of the optimization that
// matter for allocation traffic, and both are preserved.
func (s *State) applyUnrolled(qs []int, mat []complex128) {
	k := len(qs)
	dim := uint64(1) << uint(k)
	sorted := sortedCopy(qs)
	reshaped := reshapeToSorted(qs, sorted, mat)
	masks := targetMasks(sorted)

	outerEnd := int64(s.Size() >> uint(k))
	threads, threshold := s.parallelCfg()
	amps := s.amps

	parallelFor(outerEnd, s.numQubits, threads, threshold, func(lo, hi int64) {
		var idx [32]uint64
		var cache [32]complex128
		idxs := idx[:dim]
		caches := cache[:dim]
		for j := lo; j < hi; j++ {
			base := spreadOuterIndex(uint64(j), sorted)
			for i, m := range masks {
				ii := base | m
				idxs[i] = ii
				caches[i] = amps[ii]
				amps[ii] = 0
			}
			for i := uint64(0); i < dim; i++ {
				for c := uint64(0); c < dim; c++ {
					amps[idxs[i]] += reshaped[i+dim*c] * caches[c]
				}
			}
		}
	})
}
