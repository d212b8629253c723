// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !darwin && !windows

package libenv

// Var is the environment variable searched by ld.so.
const Var = "LD_LIBRARY_PATH"
