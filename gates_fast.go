package statevector

// Dedicated kernels for the gates every simulator ends up calling by name
// instead of by matrix: X, Y, Z, CNOT, CZ, SWAP. Each skips the generic
// matrix multiply entirely in favor of the specific permutation/sign-flip
// the gate performs, in the style of quantum.go's applyX/applyY/applyZ/
// applyCX/applyCZ/applySWAP, generalized to arbitrary qubit positions via
// forEachQubitPair/forEachTwoQubitQuad instead of a fixed bit mask.

// ApplyX applies the Pauli X (NOT) gate to qubit q.
func (s *State) ApplyX(q int) error {
	if err := s.checkQubit(q); err != nil {
		return err
	}
	amps := s.amps
	s.forEachQubitPair(q, func(i0, i1 uint64) {
		amps[i0], amps[i1] = amps[i1], amps[i0]
	})
	return nil
}

// ApplyY applies the Pauli Y gate to qubit q.
func (s *State) ApplyY(q int) error {
	if err := s.checkQubit(q); err != nil {
		return err
	}
	amps := s.amps
	s.forEachQubitPair(q, func(i0, i1 uint64) {
		c0, c1 := amps[i0], amps[i1]
		amps[i0] = complex(imag(c1), -real(c1))
		amps[i1] = complex(-imag(c0), real(c0))
	})
	return nil
}

// ApplyZ applies the Pauli Z (phase flip) gate to qubit q.
func (s *State) ApplyZ(q int) error {
	if err := s.checkQubit(q); err != nil {
		return err
	}
	amps := s.amps
	s.forEachQubitPair(q, func(i0, i1 uint64) {
		amps[i1] = -amps[i1]
	})
	return nil
}

// forEachTwoQubitQuad calls fn once per outer counter with the 4 full-
// register indices touched by the (control-like, target-like) pair qs, in
// the order targetMasks produces: idx[0] has both bits clear, idx[1] has
// only qs[0]'s bit set, idx[2] has only qs[1]'s bit set, idx[3] has both
// set.
func (s *State) forEachTwoQubitQuad(qs [2]int, fn func(idx [4]uint64)) {
	outerEnd := int64(s.Size() >> 2)
	threads, threshold := s.parallelCfg()
	parallelFor(outerEnd, s.numQubits, threads, threshold, func(lo, hi int64) {
		for j := lo; j < hi; j++ {
			fn(indexes2(qs, uint64(j)))
		}
	})
}

// ApplyCNOT applies a controlled-X with control and target qubits.
func (s *State) ApplyCNOT(control, target int) error {
	if err := s.checkQubits([]int{control, target}); err != nil {
		return err
	}
	amps := s.amps
	s.forEachTwoQubitQuad([2]int{control, target}, func(idx [4]uint64) {
		amps[idx[1]], amps[idx[3]] = amps[idx[3]], amps[idx[1]]
	})
	return nil
}

// ApplyCZ applies a controlled-Z with control and target qubits.
func (s *State) ApplyCZ(control, target int) error {
	if err := s.checkQubits([]int{control, target}); err != nil {
		return err
	}
	amps := s.amps
	s.forEachTwoQubitQuad([2]int{control, target}, func(idx [4]uint64) {
		amps[idx[3]] = -amps[idx[3]]
	})
	return nil
}

// ApplySwap exchanges the state of q0 and q1.
func (s *State) ApplySwap(q0, q1 int) error {
	if err := s.checkQubits([]int{q0, q1}); err != nil {
		return err
	}
	amps := s.amps
	s.forEachTwoQubitQuad([2]int{q0, q1}, func(idx [4]uint64) {
		amps[idx[1]], amps[idx[2]] = amps[idx[2]], amps[idx[1]]
	})
	return nil
}
