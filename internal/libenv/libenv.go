// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package libenv provides access to the process environment variable
// searched by the platform's dynamic library loader.
//
// Changes made by Prepend are process-wide and are inherited by child
// processes started afterwards. Callers should make them once, early,
// and not concurrently.
package libenv

import (
	"fmt"
	"os"
	"path/filepath"
)

// Prepend places dir at the front of the path list held in the key
// environment variable. If the variable is unset or empty, it is set
// to dir alone.
func Prepend(key, dir string) error {
	val := dir
	if old := os.Getenv(key); old != "" {
		val = dir + string(os.PathListSeparator) + old
	}
	err := os.Setenv(key, val)
	if err != nil {
		return fmt.Errorf("prepend %s: %w", key, err)
	}
	return nil
}

// List returns the path list held in the key environment variable.
func List(key string) []string {
	return filepath.SplitList(os.Getenv(key))
}
