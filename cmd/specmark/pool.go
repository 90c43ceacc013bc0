package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-specmark"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input specmark.Input) (*specmark.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*specmark.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter exposes a *specmark.ConverterPool as a Pool.
type poolAdapter struct {
	pool *specmark.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newPoolAdapter creates a ConverterPool of the given size.
func newPoolAdapter(size int, opts ...specmark.Option) Pool {
	return &poolAdapter{pool: specmark.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when given a converter this pool did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*specmark.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
