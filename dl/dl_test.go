// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dl

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// missing names a library no system loader will find.
const missing = "dlsearch-no-such-library"

type fakeResolver struct {
	libs  map[string]*Lib
	fatal map[string]error
	asked []string
}

func (r *fakeResolver) Resolve(name string) (*Lib, error) {
	r.asked = append(r.asked, name)
	if err, ok := r.fatal[name]; ok {
		return nil, err
	}
	if l, ok := r.libs[name]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func setResolver(t *testing.T, r Resolver) {
	t.Helper()
	err := SetResolver(r)
	if err != nil {
		t.Fatalf("failed to set resolver: %v", err)
	}
	t.Cleanup(func() { resolver.Store(nil) })
}

func TestOpenNoResolver(t *testing.T) {
	_, err := Open(RTLD_NOW, missing)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrNotFound)
	}
	_, err = Open(RTLD_NOW)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for no names: got:%v want:%v", err, ErrNotFound)
	}
}

var openFallbackTests = []struct {
	name      string
	names     []string
	libs      map[string]*Lib
	fatal     map[string]error
	want      string
	wantAsked []string
	wantErr   error
}{
	{
		name:      "second_name",
		names:     []string{missing + "-a", missing + "-b"},
		libs:      map[string]*Lib{missing + "-b": {name: "/lib/b"}},
		want:      "/lib/b",
		wantAsked: []string{missing + "-a", missing + "-b"},
	},
	{
		name:      "none",
		names:     []string{missing + "-a", missing + "-b"},
		wantAsked: []string{missing + "-a", missing + "-b"},
		wantErr:   ErrNotFound,
	},
	{
		name:      "terminal",
		names:     []string{missing + "-a", missing + "-b"},
		libs:      map[string]*Lib{missing + "-b": {name: "/lib/b"}},
		fatal:     map[string]error{missing + "-a": Error("ambiguous")},
		wantAsked: []string{missing + "-a"},
		wantErr:   Error("ambiguous"),
	},
}

func TestOpenFallback(t *testing.T) {
	for _, test := range openFallbackTests {
		t.Run(test.name, func(t *testing.T) {
			r := &fakeResolver{libs: test.libs, fatal: test.fatal}
			setResolver(t, r)

			l, err := Open(RTLD_NOW, test.names...)
			if !errors.Is(err, test.wantErr) {
				t.Errorf("unexpected error: got:%v want:%v", err, test.wantErr)
			}
			if err == nil && l.Name() != test.want {
				t.Errorf("unexpected library: got:%s want:%s", l.Name(), test.want)
			}
			if !cmp.Equal(r.asked, test.wantAsked) {
				t.Errorf("unexpected resolver calls:\n--- want:\n+++ got:\n%s", cmp.Diff(test.wantAsked, r.asked))
			}
		})
	}
}

func TestSetResolverOnce(t *testing.T) {
	setResolver(t, &fakeResolver{})
	err := SetResolver(&fakeResolver{})
	if !errors.Is(err, ErrResolverSet) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrResolverSet)
	}
	if SetResolver(nil) == nil {
		t.Error("expected error for nil resolver")
	}
}

func TestCloseNil(t *testing.T) {
	var l *Lib
	if err := l.Close(); err != nil {
		t.Errorf("unexpected error closing nil lib: %v", err)
	}
}

// systemLib is a library and one of its symbols the system loader
// finds without a path on each platform.
var systemLib = map[string]struct {
	names  []string
	symbol string
}{
	"linux":   {names: []string{"libc.so.6", "libc.so"}, symbol: "getpid"},
	"freebsd": {names: []string{"libc.so.7"}, symbol: "getpid"},
	"darwin":  {names: []string{"/usr/lib/libSystem.B.dylib"}, symbol: "getpid"},
	"windows": {names: []string{"kernel32.dll"}, symbol: "GetCurrentProcessId"},
}

func TestSymbol(t *testing.T) {
	sys, ok := systemLib[runtime.GOOS]
	if !ok {
		t.Skipf("no system library known for %s", runtime.GOOS)
	}
	lib, err := Open(RTLD_NOW, sys.names...)
	if err != nil {
		t.Skipf("system library not available: %v", err)
	}
	defer func() {
		err := lib.Close()
		if err != nil {
			t.Errorf("unexpected error closing library: %v", err)
		}
	}()

	sym, err := lib.Symbol(sys.symbol)
	if err != nil {
		t.Errorf("unexpected error looking up %s: %v", sys.symbol, err)
	}
	if sym == 0 {
		t.Errorf("unexpected nil address for %s", sys.symbol)
	}

	_, err = lib.Symbol("dlsearch_no_such_symbol")
	if err == nil {
		t.Error("expected error looking up missing symbol")
	}
}
