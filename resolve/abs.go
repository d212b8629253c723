// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"strings"
	"unicode/utf8"
)

// IsAbsolute reports whether path is absolute by prefix inspection. Drive
// letter paths (C:\dir or C:/dir), UNC paths (\\host\share or //host/share)
// and rooted paths (/dir) are absolute on all platforms. No cleaning,
// symlink resolution or home expansion is performed.
//
// The drive is the first character of path, which need not be ASCII.
// The empty path is not absolute.
func IsAbsolute(path string) bool {
	if path == "" {
		return false
	}
	_, n := utf8.DecodeRuneInString(path)
	switch {
	case strings.HasPrefix(path[n:], `:\`), strings.HasPrefix(path[n:], `:/`):
		return true
	case strings.HasPrefix(path, `\\`), strings.HasPrefix(path, `//`):
		return true
	}
	return strings.HasPrefix(path, "/")
}
