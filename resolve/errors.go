// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"errors"
	"fmt"

	"github.com/kortschak/dlsearch/dl"
)

var (
	// ErrNotFound is matched by NotFoundError. It wraps dl.ErrNotFound
	// so that dl.Open will continue to its next candidate name.
	ErrNotFound = fmt.Errorf("library not found in search path: %w", dl.ErrNotFound)
	// ErrAmbiguous is matched by AmbiguousMatchError.
	ErrAmbiguous = errors.New("ambiguous library match")
	// ErrAlreadySetup is returned by a second call to Setup.
	ErrAlreadySetup = errors.New("library resolution already set up")
)

// NotFoundError is returned when no search directory holds the
// requested library.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("requested library %q was not found in any of the search paths", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AmbiguousMatchError is returned when more than one search directory
// holds the requested library. No match is loaded.
type AmbiguousMatchError struct {
	Name string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple matches for requested library %q were found", e.Name)
}

func (e *AmbiguousMatchError) Unwrap() error { return ErrAmbiguous }
