package statevector

// Reduction kernels: norm, dot, inner product, the probability family,
// norm-of-Uψ, and the expectation value. All of them share the traversal
// machinery from indexing.go and the classifyOperator dispatch from
// gates.go; none of them mutate s.
//
// Ported from Qiskit Aer's QubitVector: norm/dot/inner_product/
// probability*/expectation_value_matrix* family.

func absSq(c complex128) float64 {
	re, im := real(c), imag(c)
	return re*re + im*im
}

// Norm returns sum_i |amp_i|^2.
func (s *State) Norm() float64 {
	threads, threshold := s.parallelCfg()
	amps := s.amps
	return parallelReduceFloat64(int64(len(amps)), s.numQubits, threads, threshold, func(lo, hi int64) float64 {
		var acc float64
		for i := lo; i < hi; i++ {
			acc += absSq(amps[i])
		}
		return acc
	})
}

// Dot returns sum_i s_i * other_i, with no conjugation. s and other must
// have the same N.
func (s *State) Dot(other *State) (complex128, error) {
	if err := s.checkDimension(other); err != nil {
		return 0, err
	}
	threads, threshold := s.parallelCfg()
	a, b := s.amps, other.amps
	return parallelReduceComplex128(int64(len(a)), s.numQubits, threads, threshold, func(lo, hi int64) complex128 {
		var acc complex128
		for i := lo; i < hi; i++ {
			acc += a[i] * b[i]
		}
		return acc
	}), nil
}

// InnerProduct returns sum_i s_i * conj(other_i): unlike Dot, the second
// state's amplitudes are conjugated. s and other must have the same N.
func (s *State) InnerProduct(other *State) (complex128, error) {
	if err := s.checkDimension(other); err != nil {
		return 0, err
	}
	threads, threshold := s.parallelCfg()
	a, b := s.amps, other.amps
	return parallelReduceComplex128(int64(len(a)), s.numQubits, threads, threshold, func(lo, hi int64) complex128 {
		var acc complex128
		for i := lo; i < hi; i++ {
			acc += a[i] * complex(real(b[i]), -imag(b[i]))
		}
		return acc
	}), nil
}

// Probability returns |amp[outcome]|^2, the probability of measuring the
// full register in basis state outcome.
func (s *State) Probability(outcome uint64) (float64, error) {
	if err := s.checkAmplitudeIndex(outcome); err != nil {
		return 0, err
	}
	return absSq(s.amps[outcome]), nil
}

// ProbabilityQubit returns the marginal probability of qubit q being 0 or
// 1: [P(q=0), P(q=1)].
func (s *State) ProbabilityQubit(q int) ([2]float64, error) {
	if err := s.checkQubit(q); err != nil {
		return [2]float64{}, err
	}
	bit := uint64(1) << uint(q)
	step := bit << 1
	numBlocks := int64(s.Size() / step)
	threads, threshold := s.parallelCfg()
	amps := s.amps
	packed := parallelReduceComplex128(numBlocks, s.numQubits, threads, threshold, func(lo, hi int64) complex128 {
		var p0, p1 float64
		for b := lo; b < hi; b++ {
			base := uint64(b) * step
			for k2 := uint64(0); k2 < bit; k2++ {
				i0 := base | k2
				p0 += absSq(amps[i0])
				p1 += absSq(amps[i0|bit])
			}
		}
		return complex(p0, p1)
	})
	return [2]float64{real(packed), imag(packed)}, nil
}

// ProbabilitySubset returns the 2^len(qubits)-length marginal distribution
// over qubits, in the same index order targetMasks would produce (bit r of
// the outcome index controls qubits[r]).
func (s *State) ProbabilitySubset(qubits []int) ([]float64, error) {
	if err := s.checkQubits(qubits); err != nil {
		return nil, err
	}
	k := len(qubits)
	dim := 1 << uint(k)
	plan := newIndexPlan(qubits)
	outerEnd := int64(s.Size() >> uint(k))
	threads, threshold := s.parallelCfg()
	amps := s.amps
	return parallelReduceVector(outerEnd, s.numQubits, threads, threshold, dim, func(lo, hi int64, acc []float64) {
		idx := make([]uint64, dim)
		for j := lo; j < hi; j++ {
			plan.indexesInto(uint64(j), idx)
			for i, ii := range idx {
				acc[i] += absSq(amps[ii])
			}
		}
	}), nil
}

// ProbabilityOutcome returns the marginal probability of the named targets
// reading outcome, i.e. P(targets = outcome). outcome is interpreted in the
// same bit-r-controls-targets[r] order as ProbabilitySubset's result, and
// must be < 2^len(targets). It is a thin bounds-checked index into
// ProbabilitySubset's result rather than a separate traversal, since the
// two are the same quantity.
func (s *State) ProbabilityOutcome(targets []int, outcome uint64) (float64, error) {
	if err := s.checkQubits(targets); err != nil {
		return 0, err
	}
	dim := uint64(1) << uint(len(targets))
	if !s.unchecked && outcome >= dim {
		return 0, indexOutOfRangeErr("subset outcome", outcome, dim)
	}
	p, err := s.ProbabilitySubset(targets)
	if err != nil {
		return 0, err
	}
	return p[outcome], nil
}

// Probabilities returns the full 2^N probability vector.
func (s *State) Probabilities() []float64 {
	out := make([]float64, s.Size())
	threads, threshold := s.parallelCfg()
	amps := s.amps
	parallelFor(int64(len(amps)), s.numQubits, threads, threshold, func(lo, hi int64) {
		for i := lo; i < hi; i++ {
			out[i] = absSq(amps[i])
		}
	})
	return out
}

// NormMatrix returns the norm of U|psi>, i.e. Norm() after applying mat to
// the named targets, without mutating s. mat may be diagonal (len 2^k) or
// dense (len 2^(2k)), per the same classifyOperator rule ApplyMatrix uses.
func (s *State) NormMatrix(qubits []int, mat []complex128) (float64, error) {
	if err := s.checkQubits(qubits); err != nil {
		return 0, err
	}
	k := len(qubits)
	form, err := classifyOperator(k, len(mat))
	if err != nil {
		return 0, err
	}
	dim := uint64(1) << uint(k)
	plan := newIndexPlan(qubits)
	outerEnd := int64(s.Size() >> uint(k))
	threads, threshold := s.parallelCfg()
	amps := s.amps

	return parallelReduceFloat64(outerEnd, s.numQubits, threads, threshold, func(lo, hi int64) float64 {
		idx := make([]uint64, dim)
		cache := make([]complex128, dim)
		var acc float64
		for j := lo; j < hi; j++ {
			plan.indexesInto(uint64(j), idx)
			for i, ii := range idx {
				cache[i] = amps[ii]
			}
			if form == formDiagonal {
				for i := uint64(0); i < dim; i++ {
					acc += absSq(mat[i] * cache[i])
				}
				continue
			}
			for i := uint64(0); i < dim; i++ {
				var v complex128
				for c := uint64(0); c < dim; c++ {
					v += mat[i+dim*c] * cache[c]
				}
				acc += absSq(v)
			}
		}
		return acc
	}), nil
}

// ExpectationValue returns <psi|U|psi> for mat applied to the named
// targets, without mutating s. mat may be diagonal or dense, as in
// ApplyMatrix.
func (s *State) ExpectationValue(qubits []int, mat []complex128) (complex128, error) {
	if err := s.checkQubits(qubits); err != nil {
		return 0, err
	}
	k := len(qubits)
	form, err := classifyOperator(k, len(mat))
	if err != nil {
		return 0, err
	}
	dim := uint64(1) << uint(k)
	plan := newIndexPlan(qubits)
	outerEnd := int64(s.Size() >> uint(k))
	threads, threshold := s.parallelCfg()
	amps := s.amps

	return parallelReduceComplex128(outerEnd, s.numQubits, threads, threshold, func(lo, hi int64) complex128 {
		idx := make([]uint64, dim)
		cache := make([]complex128, dim)
		var acc complex128
		for j := lo; j < hi; j++ {
			plan.indexesInto(uint64(j), idx)
			for i, ii := range idx {
				cache[i] = amps[ii]
			}
			if form == formDiagonal {
				for i := uint64(0); i < dim; i++ {
					acc += complex(real(cache[i]), -imag(cache[i])) * mat[i] * cache[i]
				}
				continue
			}
			for i := uint64(0); i < dim; i++ {
				var v complex128
				for c := uint64(0); c < dim; c++ {
					v += mat[i+dim*c] * cache[c]
				}
				acc += complex(real(cache[i]), -imag(cache[i])) * v
			}
		}
		return acc
	}), nil
}
