package deckgen

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// BuilderPool manages Builder instances for parallel builds. Each Builder
// owns its browser, so print-pdf builds run truly in parallel. Builders are
// created lazily on first acquire to avoid startup delay.
type BuilderPool struct {
	size     int
	opts     []Option
	builders []*Builder
	sem      chan *Builder
	mu       sync.Mutex
	created  int
	closed   bool
	initErr  error
}

// NewBuilderPool creates a pool with capacity for n builders, each
// configured with opts.
func NewBuilderPool(n int, opts ...Option) *BuilderPool {
	if n < 1 {
		n = 1
	}

	return &BuilderPool{
		size:     n,
		opts:     opts,
		builders: make([]*Builder, 0, n),
		sem:      make(chan *Builder, n),
	}
}

// Acquire gets a builder from the pool, creating one if needed.
// Blocks if all builders are in use. Returns nil if a new builder could not
// be created; InitErr reports why.
func (p *BuilderPool) Acquire() *Builder {
	select {
	case b := <-p.sem:
		return b
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock; NewBuilder parses templates.
		b, err := NewBuilder(p.opts...)

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.created--
			p.initErr = err
			return nil
		}
		p.builders = append(p.builders, b)
		return b
	}
	p.mu.Unlock()

	return <-p.sem
}

// InitErr returns the last builder creation error, if any.
func (p *BuilderPool) InitErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initErr
}

// Release returns a builder to the pool. Releasing after Close, or more
// builders than the pool holds, is a no-op.
func (p *BuilderPool) Release(b *Builder) {
	if b == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.sem <- b:
	default:
	}
}

// Close releases all browser resources.
// Returns an aggregated error if multiple builders fail to close.
func (p *BuilderPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	builders := p.builders
	p.mu.Unlock()

	var errs []error
	for _, b := range builders {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *BuilderPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware once automaxprocs has run.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
