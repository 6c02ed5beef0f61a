package generator

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Next() float64
}

type randSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a reproducible Source. A zero seed picks one from the clock.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *randSource) Next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() float64

func (f SourceFunc) Next() float64 { return f() }

// Constant always returns v. With v = 0.5 every variance term is zero.
func Constant(v float64) Source {
	return SourceFunc(func() float64 { return v })
}

// variance draws a value in [-amplitude, amplitude).
func variance(src Source, amplitude float64) float64 {
	return (src.Next()*2 - 1) * amplitude
}

func chance(src Source, p float64) bool {
	return src.Next() < p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
