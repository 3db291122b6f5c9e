package statevector

import (
	"io"
	"log"
	"math"
	"math/bits"
)

// Config holds the three performance-only knobs: thread budget,
// parallelism threshold, and the optimized-gate flag. None of these affect
// results, only how a kernel schedules its work.
type Config struct {
	// Threads is the parallel worker budget. A kernel's fork/join region
	// uses more than one goroutine only when Threads > 1.
	Threads int
	// Threshold is the qubit-count threshold above which parallelism
	// activates, when Threads > 1.
	Threshold int
	// OptimizedGates selects the specialized unrolled kernels for
	// k in {2,3,4,5} over the generic path, when the operator is dense
	// (not diagonal).
	OptimizedGates bool
}

// DefaultConfig returns the package defaults: single-threaded, threshold
// 16, unrolled gate kernels disabled.
func DefaultConfig() Config {
	return Config{Threads: 1, Threshold: 16, OptimizedGates: false}
}

// State is an N-qubit pure state: 2^N complex amplitudes, indexed so that
// bit q of the index holds qubit q's basis value (little-endian qubit
// ordering). Apart from the constructors and DefaultConfig, every public
// operation is a method on it.
type State struct {
	amps      []complex128
	numQubits int
	cfg       Config
	unchecked bool
	logger    *log.Logger
}

// New constructs an N-qubit instance initialized to all-zero amplitudes
// (not |0...0>; use InitializeZeroState for that canonical form). N may be
// zero, giving a single one-amplitude state.
func New(numQubits int) *State {
	n := uint64(1) << uint(numQubits)
	return &State{
		amps:      make([]complex128, n),
		numQubits: numQubits,
		cfg:       DefaultConfig(),
		logger:    log.New(io.Discard, "", 0),
	}
}

// FromComplex builds an instance by wholesale assignment from a complex
// vector whose length must be a power of two; N is inferred as
// floor(log2(len(vec))). The vector is copied, not aliased.
func FromComplex(vec []complex128) (*State, error) {
	n, err := log2PowerOfTwo(len(vec))
	if err != nil {
		return nil, err
	}
	s := New(n)
	copy(s.amps, vec)
	return s, nil
}

// FromReal is the real-vector counterpart of FromComplex: each entry
// becomes a real-valued amplitude.
func FromReal(vec []float64) (*State, error) {
	n, err := log2PowerOfTwo(len(vec))
	if err != nil {
		return nil, err
	}
	s := New(n)
	for i, v := range vec {
		s.amps[i] = complex(v, 0)
	}
	return s, nil
}

func log2PowerOfTwo(length int) (int, error) {
	if length <= 0 || bits.OnesCount(uint(length)) != 1 {
		return 0, malformedAssignmentErr("vector length %d is not a power of two", length)
	}
	return bits.TrailingZeros(uint(length)), nil
}

// UnmarshalAmplitudes reassigns s's amplitude buffer wholesale, inferring N
// from the incoming vector's length exactly as FromComplex does. This
// serializes/deserializes the amplitude vector only, with no envelope.
func (s *State) UnmarshalAmplitudes(vec []complex128) error {
	n, err := log2PowerOfTwo(len(vec))
	if err != nil {
		return err
	}
	s.numQubits = n
	s.amps = append(s.amps[:0], vec...)
	return nil
}

// MarshalAmplitudes returns a copy of the amplitude buffer in the canonical
// little-endian-qubit index order.
func (s *State) MarshalAmplitudes() []complex128 {
	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}

// Size returns 2^N, the number of amplitudes.
func (s *State) Size() uint64 { return uint64(len(s.amps)) }

// NumQubits returns N.
func (s *State) NumQubits() int { return s.numQubits }

// Vector returns a copy of the underlying amplitude slice. Mutating the
// result does not affect s; use SetAmplitude for in-place writes.
func (s *State) Vector() []complex128 { return s.MarshalAmplitudes() }

func (s *State) checkAmplitudeIndex(i uint64) error {
	if s.unchecked {
		return nil
	}
	if i >= s.Size() {
		return indexOutOfRangeErr("amplitude index", i, s.Size())
	}
	return nil
}

// Amplitude returns the amplitude at basis index i.
func (s *State) Amplitude(i uint64) (complex128, error) {
	if err := s.checkAmplitudeIndex(i); err != nil {
		return 0, err
	}
	return s.amps[i], nil
}

// SetAmplitude writes the amplitude at basis index i.
func (s *State) SetAmplitude(i uint64, v complex128) error {
	if err := s.checkAmplitudeIndex(i); err != nil {
		return err
	}
	s.amps[i] = v
	return nil
}

// SetUnchecked switches between checked mode (the default: bounds and
// dimension preconditions are validated, failures return an *Error) and
// unchecked/"release" mode (preconditions are trusted, not validated). A
// silently wrong amplitude index is worse than the bounds-check cost, so
// checked is the default.
func (s *State) SetUnchecked(unchecked bool) { s.unchecked = unchecked }

// Unchecked reports whether s is currently in unchecked mode.
func (s *State) Unchecked() bool { return s.unchecked }

// SetLogger installs the destination for Configure/Renormalize
// diagnostics. A nil logger is treated as a discard logger.
func (s *State) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
}

// Configure updates the performance configuration and logs the transition.
// Results are never affected by this call.
func (s *State) Configure(cfg Config) {
	old := s.cfg
	s.cfg = cfg
	s.logger.Printf("configure: threads %d->%d threshold %d->%d optimized-gates %v->%v",
		old.Threads, cfg.Threads, old.Threshold, cfg.Threshold, old.OptimizedGates, cfg.OptimizedGates)
}

// Config returns the current performance configuration.
func (s *State) Config() Config { return s.cfg }

// EnableGateOpt turns on the sorted-qubit unrolled gate kernels. Qiskit
// Aer's QubitVector has a bug where both its enable and disable methods
// set the flag true; this implementation gives the two methods their
// obvious, corrected meanings instead of reproducing the bug.
func (s *State) EnableGateOpt() { s.cfg.OptimizedGates = true }

// DisableGateOpt turns the unrolled gate kernels back off.
func (s *State) DisableGateOpt() { s.cfg.OptimizedGates = false }

func (s *State) parallelCfg() (threads, threshold int) {
	return s.cfg.Threads, s.cfg.Threshold
}

// checkQubit validates a qubit index against N in checked mode; it is a
// no-op in unchecked mode.
func (s *State) checkQubit(q int) error {
	if s.unchecked {
		return nil
	}
	if q < 0 || q >= s.numQubits {
		return indexOutOfRangeErr("qubit index", uint64(q), uint64(s.numQubits))
	}
	return nil
}

func (s *State) checkQubits(qs []int) error {
	if s.unchecked {
		return nil
	}
	for _, q := range qs {
		if err := s.checkQubit(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *State) checkDimension(other *State) error {
	if s.unchecked {
		return nil
	}
	if s.Size() != other.Size() {
		return dimensionMismatchErr("vectors are different size %d != %d", s.Size(), other.Size())
	}
	return nil
}

//-----------------------------------------------------------------------
// Initializers
//-----------------------------------------------------------------------

// InitializeZeroState resets s to |0...0>: amplitude 1 at index 0, zero
// everywhere else.
func (s *State) InitializeZeroState() {
	for i := range s.amps {
		s.amps[i] = 0
	}
	s.amps[0] = 1
}

// InitializePlusState resets s to |+...+>: every amplitude equal to
// 2^(-N/2).
func (s *State) InitializePlusState() {
	val := complex(math.Pow(2, -0.5*float64(s.numQubits)), 0)
	for i := range s.amps {
		s.amps[i] = val
	}
}

//-----------------------------------------------------------------------
// Scalar/vector mutation
//-----------------------------------------------------------------------

// Scale multiplies every amplitude by lambda, in place.
func (s *State) Scale(lambda complex128) {
	threads, threshold := s.parallelCfg()
	amps := s.amps
	parallelFor(int64(len(amps)), s.numQubits, threads, threshold, func(lo, hi int64) {
		for i := lo; i < hi; i++ {
			amps[i] *= lambda
		}
	})
}

// Add adds other's amplitudes into s, in place. Both instances must have
// the same N.
func (s *State) Add(other *State) error {
	if err := s.checkDimension(other); err != nil {
		return err
	}
	threads, threshold := s.parallelCfg()
	a, b := s.amps, other.amps
	parallelFor(int64(len(a)), s.numQubits, threads, threshold, func(lo, hi int64) {
		for i := lo; i < hi; i++ {
			a[i] += b[i]
		}
	})
	return nil
}

// Sub subtracts other's amplitudes from s, in place. Both instances must
// have the same N.
func (s *State) Sub(other *State) error {
	if err := s.checkDimension(other); err != nil {
		return err
	}
	threads, threshold := s.parallelCfg()
	a, b := s.amps, other.amps
	parallelFor(int64(len(a)), s.numQubits, threads, threshold, func(lo, hi int64) {
		for i := lo; i < hi; i++ {
			a[i] -= b[i]
		}
	})
	return nil
}

// Conj complex-conjugates every amplitude, in place.
func (s *State) Conj() {
	threads, threshold := s.parallelCfg()
	amps := s.amps
	parallelFor(int64(len(amps)), s.numQubits, threads, threshold, func(lo, hi int64) {
		for i := lo; i < hi; i++ {
			amps[i] = complex(real(amps[i]), -imag(amps[i]))
		}
	})
}

// Renormalize rescales s so that Norm() == 1, by dividing by sqrt(Norm()).
// If the state has zero norm it is left unchanged and logged rather than
// returning an error.
func (s *State) Renormalize() {
	nrm := s.Norm()
	if nrm <= 0 {
		s.logger.Printf("renormalize: state has zero norm, left unchanged")
		return
	}
	s.Scale(complex(1/math.Sqrt(nrm), 0))
}

// Clone returns an independent copy of s, including its configuration.
func (s *State) Clone() *State {
	out := &State{
		amps:      make([]complex128, len(s.amps)),
		numQubits: s.numQubits,
		cfg:       s.cfg,
		unchecked: s.unchecked,
		logger:    s.logger,
	}
	copy(out.amps, s.amps)
	return out
}
