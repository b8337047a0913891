package main

import (
	"io"
	"os"
	"time"

	deckgen "github.com/alnah/go-deckgen"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the builder pool factory.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	NewPool func(size int, opts ...deckgen.Option) Pool
}

// DefaultEnv returns the production environment backed by deckgen.BuilderPool.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPool: func(size int, opts ...deckgen.Option) Pool {
			return &poolAdapter{pool: deckgen.NewBuilderPool(size, opts...)}
		},
	}
}
