// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin || freebsd || linux

package dl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

const (
	RTLD_LAZY   = purego.RTLD_LAZY
	RTLD_NOW    = purego.RTLD_NOW
	RTLD_GLOBAL = purego.RTLD_GLOBAL
	RTLD_LOCAL  = purego.RTLD_LOCAL
)

// OpenFile opens the dynamic library at path using the system loader
// only. The registered resolver is not consulted.
func OpenFile(flags int, path string) (*Lib, error) {
	h, err := purego.Dlopen(path, flags)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, Error(err.Error()))
	}
	return &Lib{handle: h, name: path}, nil
}

// Symbol takes a symbol name and returns the address of the symbol.
func (l *Lib) Symbol(name string) (uintptr, error) {
	s, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("could not find %s: %w", name, Error(err.Error()))
	}
	return s, nil
}

// Close closes the receiver, unloading the library. Symbols must not be used
// after Close has been called.
func (l *Lib) Close() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	if err != nil {
		return fmt.Errorf("error closing: %w", Error(err.Error()))
	}
	return nil
}
