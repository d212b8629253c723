// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package dl

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// LoadLibrary has no mode flags.
const (
	RTLD_LAZY   = 0
	RTLD_NOW    = 0
	RTLD_GLOBAL = 0
	RTLD_LOCAL  = 0
)

// OpenFile opens the dynamic library at path using the system loader
// only. The registered resolver is not consulted.
func OpenFile(_ int, path string) (*Lib, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, Error(err.Error()))
	}
	return &Lib{handle: uintptr(h), name: path}, nil
}

// Symbol takes a symbol name and returns the address of the symbol.
func (l *Lib) Symbol(name string) (uintptr, error) {
	s, err := windows.GetProcAddress(windows.Handle(l.handle), name)
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
	err := windows.FreeLibrary(windows.Handle(l.handle))
	l.handle = 0
	if err != nil {
		return fmt.Errorf("error closing: %w", Error(err.Error()))
	}
	return nil
}
