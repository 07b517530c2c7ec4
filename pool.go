package md2docx

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps parallel conversions; each holds a full document
	// package in memory while assembling.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the XML serialization work that
	// spikes at save time.
	cpuDivisor = 2
)

// ConverterPool manages Converter instances for parallel batch processing.
// Converters share no mutable state, so each pool slot can convert a
// different file concurrently. Converters are created lazily on first
// acquire.
type ConverterPool struct {
	size    int
	opts    []Option
	sem     chan *Converter
	mu      sync.Mutex
	created int
}

// NewConverterPool creates a pool with capacity for n Converter instances,
// each built with the given options.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}

	return &ConverterPool{
		size: n,
		opts: opts,
		sem:  make(chan *Converter, n),
	}
}

// Acquire gets a converter from the pool, creating one if capacity allows.
// Blocks if all converters are in use.
func (p *ConverterPool) Acquire() (*Converter, error) {
	// Try to get an existing converter (non-blocking)
	select {
	case conv := <-p.sem:
		return conv, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		conv, err := New(p.opts...)
		if err != nil {
			// Give the slot back so a failed construction cannot shrink
			// the pool for later acquirers.
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return conv, nil
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	return <-p.sem, nil
}

// Release returns a converter to the pool.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}
	p.sem <- conv
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the worker count for batch conversion.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		if workers > MaxPoolSize {
			return MaxPoolSize
		}
		return workers
	}

	// Auto-calculate from GOMAXPROCS (adjusted by automaxprocs in
	// containers)
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
