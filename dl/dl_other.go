// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !(darwin || freebsd || linux || windows)

package dl

import "errors"

const (
	RTLD_LAZY   = 0
	RTLD_NOW    = 0
	RTLD_GLOBAL = 0
	RTLD_LOCAL  = 0
)

var errNotImplemented = errors.New("not implemented")

// OpenFile is not implemented on this platform.
func OpenFile(_ int, _ string) (*Lib, error) {
	return nil, errNotImplemented
}

// Symbol is not implemented on this platform.
func (l *Lib) Symbol(name string) (uintptr, error) {
	return 0, errNotImplemented
}

// Close is not implemented on this platform.
func (l *Lib) Close() error {
	return errNotImplemented
}
