// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package libenv

// Var is the environment variable searched by LoadLibrary.
const Var = "PATH"
