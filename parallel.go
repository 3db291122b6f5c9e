package statevector

import "golang.org/x/sync/errgroup"

// parallelFor partitions the half-open range [0, n) into contiguous chunks
// and runs fn once per chunk, either sequentially or across worker
// goroutines joined with an errgroup.Group. It is the Go realization of
// Qiskit Aer's "#pragma omp parallel for" fork/join region: every
// outer-loop iteration touches a disjoint subset of the amplitude buffer
// (the index generator guarantees this), so chunks never need to
// synchronize with each other mid-region.
//
// A region runs on more than one goroutine only when threads > 1 and
// numQubits exceeds threshold.
func parallelFor(n int64, numQubits, threads, threshold int, fn func(lo, hi int64)) {
	if n <= 0 {
		return
	}
	if threads <= 1 || numQubits <= threshold || n == 1 {
		fn(0, n)
		return
	}
	workers := threads
	if int64(workers) > n {
		workers = int(n)
	}
	chunk := (n + int64(workers) - 1) / int64(workers)

	var g errgroup.Group
	for lo := int64(0); lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// forEachQubitPair drives the single-qubit work pattern shared by the X/Y/Z
// fast paths and the generic 2x2 dense kernel: it calls fn once per pair of indices (i0, i1) where i0 has bit q clear
// and i1 = i0 | (1<<q), partitioning the work by contiguous blocks of
// 2^(q+1) so goroutines never touch the same pair.
func (s *State) forEachQubitPair(q int, fn func(i0, i1 uint64)) {
	bit := uint64(1) << uint(q)
	step := bit << 1
	numBlocks := int64(s.Size() / step)
	threads, threshold := s.parallelCfg()
	parallelFor(numBlocks, s.numQubits, threads, threshold, func(lo, hi int64) {
		for b := lo; b < hi; b++ {
			base := uint64(b) * step
			for k2 := uint64(0); k2 < bit; k2++ {
				i0 := base | k2
				fn(i0, i0|bit)
			}
		}
	})
}

// parallelReduceFloat64 runs fn once per chunk of [0, n) exactly as
// parallelFor does, except each chunk returns a partial sum; the partials
// are combined by addition once every chunk has finished (accumulated
// per-thread, then combined by addition).
func parallelReduceFloat64(n int64, numQubits, threads, threshold int, fn func(lo, hi int64) float64) float64 {
	if n <= 0 {
		return 0
	}
	if threads <= 1 || numQubits <= threshold || n == 1 {
		return fn(0, n)
	}
	workers := threads
	if int64(workers) > n {
		workers = int(n)
	}
	chunk := (n + int64(workers) - 1) / int64(workers)

	// partials is pre-sized to workers and each chunk writes only its own
	// index, so no goroutine ever reads or writes the slice header
	// concurrently with another.
	partials := make([]float64, workers)
	var g errgroup.Group
	i := 0
	for lo := int64(0); lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi, idx := lo, hi, i
		g.Go(func() error {
			partials[idx] = fn(lo, hi)
			return nil
		})
		i++
	}
	_ = g.Wait()

	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}

// parallelReduceComplex128 is parallelReduceFloat64's complex counterpart,
// used by Dot/InnerProduct/ExpectationValue.
func parallelReduceComplex128(n int64, numQubits, threads, threshold int, fn func(lo, hi int64) complex128) complex128 {
	if n <= 0 {
		return 0
	}
	if threads <= 1 || numQubits <= threshold || n == 1 {
		return fn(0, n)
	}
	workers := threads
	if int64(workers) > n {
		workers = int(n)
	}
	chunk := (n + int64(workers) - 1) / int64(workers)

	partials := make([]complex128, workers)
	var g errgroup.Group
	i := 0
	for lo := int64(0); lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi, idx := lo, hi, i
		g.Go(func() error {
			partials[idx] = fn(lo, hi)
			return nil
		})
		i++
	}
	_ = g.Wait()

	var total complex128
	for _, p := range partials {
		total += p
	}
	return total
}

// parallelReduceVector is parallelReduceFloat64's vector-valued counterpart,
// used by the per-subset probability marginal: each chunk accumulates into
// its own dim-length partial, and partials are summed element-wise at the
// join.
func parallelReduceVector(n int64, numQubits, threads, threshold, dim int, fn func(lo, hi int64, acc []float64)) []float64 {
	if n <= 0 {
		return make([]float64, dim)
	}
	if threads <= 1 || numQubits <= threshold || n == 1 {
		acc := make([]float64, dim)
		fn(0, n, acc)
		return acc
	}
	workers := threads
	if int64(workers) > n {
		workers = int(n)
	}
	chunk := (n + int64(workers) - 1) / int64(workers)

	partials := make([][]float64, workers)
	for i := range partials {
		partials[i] = make([]float64, dim)
	}
	var g errgroup.Group
	i := 0
	for lo := int64(0); lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi, idx := lo, hi, i
		g.Go(func() error {
			fn(lo, hi, partials[idx])
			return nil
		})
		i++
	}
	_ = g.Wait()

	total := make([]float64, dim)
	for _, part := range partials {
		for i, v := range part {
			total[i] += v
		}
	}
	return total
}

// parallelForShots is the sampling kernel's variant of parallelFor: its
// parallel region is gated on thread budget alone, since its outer loop
// ranges over shots, not over 2^N basis states.
func parallelForShots(n int64, threads int, fn func(lo, hi int64)) {
	if n <= 0 {
		return
	}
	if threads <= 1 || n == 1 {
		fn(0, n)
		return
	}
	workers := threads
	if int64(workers) > n {
		workers = int(n)
	}
	chunk := (n + int64(workers) - 1) / int64(workers)

	var g errgroup.Group
	for lo := int64(0); lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
