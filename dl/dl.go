// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dl implements dlopen and related functionality with a single
// designated fallback resolver for libraries the system loader cannot find.
package dl

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrNotFound    = errors.New("so lib not found")
	ErrResolverSet = errors.New("resolver already registered")
)

// Lib represents an open handle to a dynamically loaded library.
type Lib struct {
	handle uintptr
	name   string
}

// Name returns the resolved name of the library.
func (l *Lib) Name() string { return l.name }

// Error is a loader error message.
type Error string

func (e Error) Error() string { return string(e) }

// Resolver is a fallback library resolver used by Open when the system
// loader fails to find a library. Resolve is called with the library
// name as passed to Open. Errors that match ErrNotFound allow Open to
// continue with the next name, all other errors are terminal.
type Resolver interface {
	Resolve(name string) (*Lib, error)
}

var resolver atomic.Pointer[Resolver]

// SetResolver registers r as the fallback resolver for Open. Only one
// resolver may be registered for the life of the process.
func SetResolver(r Resolver) error {
	if r == nil {
		return errors.New("nil resolver")
	}
	if !resolver.CompareAndSwap(nil, &r) {
		return ErrResolverSet
	}
	return nil
}

// Open opens the dynamic library corresponding to the first found library name
// in names. If no name can be opened by the system loader and a resolver
// has been registered with SetResolver, the resolver is asked for each
// name in turn. See man 3 dlopen for details of flags.
func Open(flags int, names ...string) (*Lib, error) {
	var errs []error
	for _, n := range names {
		l, err := OpenFile(flags, n)
		if err == nil {
			return l, nil
		}
		errs = append(errs, err)
	}
	r := resolver.Load()
	if r == nil {
		return nil, notFound(names, errs)
	}
	for _, n := range names {
		l, err := (*r).Resolve(n)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		errs = append(errs, err)
	}
	return nil, notFound(names, errs)
}

func notFound(names []string, errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, names)
	}
	return fmt.Errorf("%w: %s: %w", ErrNotFound, names, errors.Join(errs...))
}
