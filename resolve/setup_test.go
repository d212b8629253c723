// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kortschak/dlsearch/dl"
	"github.com/kortschak/dlsearch/internal/libenv"
)

// TestSetup is the only test that may call Setup since it makes
// process-wide changes.
func TestSetup(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get executable: %v", err)
	}
	base := filepath.Dir(exe)

	root := mkfs(t, "a/dup"+Ext, "b/dup"+Ext)
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")

	t.Setenv(libenv.Var, "")

	// A failed setup restores the environment and may be retried.
	_, err = Setup(nil, []string{a, "/bad\x00path"})
	if err == nil {
		t.Fatal("expected error from setup with invalid path")
	}
	if got := os.Getenv(libenv.Var); got != "" {
		t.Errorf("failed setup altered %s: %q", libenv.Var, got)
	}

	r, err := Setup(nil, []string{a, b})
	if err != nil {
		t.Fatalf("unexpected error from setup: %v", err)
	}

	want := []string{base, a, b}
	if !cmp.Equal(r.Paths(), want) {
		t.Errorf("unexpected search path:\n--- want:\n+++ got:\n%s", cmp.Diff(want, r.Paths()))
	}
	wantEnv := []string{b, a, base}
	gotEnv := libenv.List(libenv.Var)
	if !cmp.Equal(gotEnv, wantEnv) {
		t.Errorf("unexpected %s:\n--- want:\n+++ got:\n%s", libenv.Var, cmp.Diff(wantEnv, gotEnv))
	}

	_, err = Setup(nil, nil)
	if !errors.Is(err, ErrAlreadySetup) {
		t.Errorf("unexpected error from second setup: got:%v want:%v", err, ErrAlreadySetup)
	}
	if !cmp.Equal(libenv.List(libenv.Var), wantEnv) {
		t.Errorf("second setup altered %s: %q", libenv.Var, libenv.List(libenv.Var))
	}

	// The registered resolver is consulted by dl.Open.
	_, err = dl.Open(dl.RTLD_NOW, "dlsearch-no-such-library")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for missing library: got:%v want:%v", err, ErrNotFound)
	}
	_, err = dl.Open(dl.RTLD_NOW, "dup")
	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) || ambiguous.Name != "dup" {
		t.Errorf("unexpected error for ambiguous library: got:%v want:%v", err, ErrAmbiguous)
	}
}

func TestSetupSearchPathNoPaths(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get executable: %v", err)
	}
	got := SearchPath(filepath.Dir(exe))
	want := []string{filepath.Dir(exe)}
	if !cmp.Equal(got, want) {
		t.Errorf("unexpected search path:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}
