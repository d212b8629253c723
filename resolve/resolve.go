// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve extends the dynamic library search path of the running
// process and resolves libraries that the system loader cannot find from
// an ordered list of search directories.
//
// A library is only loaded if exactly one search directory holds it.
// Finding it in more than one directory is an error; no match is
// preferred over another.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kortschak/dlsearch/dl"
	"github.com/kortschak/dlsearch/internal/libenv"
)

// Status is the outcome of a library lookup.
type Status int

const (
	NotFound Status = iota
	Unique
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case NotFound:
		return "not_found"
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the result of scanning the search path for a library.
type Result struct {
	// Name is the requested library name.
	Name string `json:"name"`
	// Path is the last matching file found in the
	// search path, or empty if there was no match.
	Path string `json:"path,omitempty"`
	// Matches is the number of search directories
	// holding the library.
	Matches int `json:"matches"`
}

// Status returns the lookup outcome for r.
func (r Result) Status() Status {
	switch r.Matches {
	case 0:
		return NotFound
	case 1:
		return Unique
	default:
		return Ambiguous
	}
}

// Err returns a *NotFoundError or *AmbiguousMatchError corresponding to
// r's status, or nil if the match is unique.
func (r Result) Err() error {
	switch r.Status() {
	case NotFound:
		return &NotFoundError{Name: r.Name}
	case Ambiguous:
		return &AmbiguousMatchError{Name: r.Name}
	default:
		return nil
	}
}

// Resolver resolves libraries from an immutable search path list.
// It is safe for concurrent use.
type Resolver struct {
	paths []string
	ext   string
	flags int
	log   *slog.Logger
}

// Option is a Resolver option.
type Option func(*Resolver)

// WithExtension sets the library file extension. The default is Ext.
func WithExtension(ext string) Option {
	return func(r *Resolver) {
		if ext != "" {
			r.ext = ext
		}
	}
}

// WithFlags sets the dlopen flags used to load resolved libraries. The
// default is dl.RTLD_NOW.
func WithFlags(flags int) Option {
	return func(r *Resolver) { r.flags = flags }
}

// SearchPath returns the search path list for the base directory and
// additional paths. The list starts with base and is followed by each
// path in order. Paths that are not absolute according to IsAbsolute are
// taken relative to base. Duplicates are retained.
func SearchPath(base string, paths ...string) []string {
	list := make([]string, 0, len(paths)+1)
	list = append(list, base)
	for _, p := range paths {
		if !IsAbsolute(p) {
			p = filepath.Join(base, p)
		}
		list = append(list, p)
	}
	return list
}

// New returns a Resolver searching the provided paths in order. It does
// not alter the process environment or register with package dl. If log
// is nil, logging is discarded.
func New(paths []string, log *slog.Logger, opts ...Option) *Resolver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := &Resolver{
		paths: append([]string(nil), paths...),
		ext:   Ext,
		flags: dl.RTLD_NOW,
		log:   log,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Paths returns a copy of the receiver's search path list.
func (r *Resolver) Paths() []string {
	return append([]string(nil), r.paths...)
}

// Ext returns the library file extension used by the receiver.
func (r *Resolver) Ext() string { return r.ext }

// filename returns the library file name for name, adding the
// extension unless it is already present.
func (r *Resolver) filename(name string) string {
	if strings.HasSuffix(name, r.ext) {
		return name
	}
	return name + r.ext
}

// Lookup scans every directory in the search path for the named library.
// All directories are scanned, and the returned path is the last match
// found.
func (r *Resolver) Lookup(name string) Result {
	res := Result{Name: name}
	if name == "" {
		return res
	}
	file := r.filename(name)
	for _, dir := range r.paths {
		path := filepath.Join(dir, file)
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		res.Matches++
		res.Path = path
	}
	return res
}

// Resolve loads the named library if it is found in exactly one search
// directory. Resolve implements dl.Resolver.
func (r *Resolver) Resolve(name string) (*dl.Lib, error) {
	ctx := context.Background()
	res := r.Lookup(name)
	err := res.Err()
	if err != nil {
		r.log.LogAttrs(ctx, slog.LevelDebug, "resolve", slog.String("name", name), slog.Any("error", err))
		return nil, err
	}
	r.log.LogAttrs(ctx, slog.LevelDebug, "loading library", slog.String("name", name), slog.String("path", res.Path))
	return dl.OpenFile(r.flags, res.Path)
}

var (
	setupMu sync.Mutex
	isSetup bool
)

// Setup extends the library search of the running process. The search
// path list is the directory holding the executable followed by paths,
// see SearchPath. Each entry is prepended to libenv.Var in list order,
// so the last path is the first searched by the system loader for
// transitive dependencies. The Resolver is then registered as the
// package dl fallback resolver.
//
// Setup may only be called successfully once; subsequent calls return
// ErrAlreadySetup and make no changes. If Setup fails, the library
// search variable is restored and Setup may be called again.
func Setup(log *slog.Logger, paths []string, opts ...Option) (*Resolver, error) {
	setupMu.Lock()
	defer setupMu.Unlock()
	if isSetup {
		return nil, ErrAlreadySetup
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("could not locate executable: %w", err)
	}
	r := New(SearchPath(filepath.Dir(exe), paths...), log, opts...)
	old, wasSet := os.LookupEnv(libenv.Var)
	for _, p := range r.paths {
		err = libenv.Prepend(libenv.Var, p)
		if err != nil {
			return nil, errors.Join(err, restoreEnv(libenv.Var, old, wasSet))
		}
	}
	err = dl.SetResolver(r)
	if err != nil {
		return nil, errors.Join(err, restoreEnv(libenv.Var, old, wasSet))
	}
	isSetup = true
	r.log.LogAttrs(context.Background(), slog.LevelDebug, "setup",
		slog.Any("paths", r.paths),
		slog.String("env", libenv.Var),
	)
	return r, nil
}

// restoreEnv returns key to its value before a failed Setup.
func restoreEnv(key, val string, set bool) error {
	if !set {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, val)
}
