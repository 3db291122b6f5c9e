package statevector

// SampleMeasure runs one inverse-CDF sweep per random draw in rnds, each
// producing the basis state measured for that draw. Sampling is
// deterministic given rnds and independent of any argument order; only the
// parallel split over shots can differ between runs, and that never changes
// the result since each shot's sweep is self-contained.
//
// Ported from Qiskit Aer's QubitVector sample_measure: walk basis states
// accumulating probability mass until it exceeds the draw, falling through
// to the last state if rounding leaves mass short.
func (s *State) SampleMeasure(rnds []float64) []uint64 {
	out := make([]uint64, len(rnds))
	n := s.Size()
	amps := s.amps
	parallelForShots(int64(len(rnds)), s.cfg.Threads, func(lo, hi int64) {
		for shot := lo; shot < hi; shot++ {
			rnd := rnds[shot]
			var p float64
			var sample uint64
			for sample = 0; sample < n-1; sample++ {
				p += absSq(amps[sample])
				if rnd < p {
					break
				}
			}
			out[shot] = sample
		}
	})
	return out
}
