// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package version

import (
	"runtime/debug"
	"testing"
)

var formatTests = []struct {
	name     string
	settings []debug.BuildSetting
	want     string
}{
	{
		name: "no_vcs",
		want: "v1.0.0",
	},
	{
		name: "clean",
		settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef"},
			{Key: "vcs.modified", Value: "false"},
		},
		want: "v1.0.0 abcdef",
	},
	{
		name: "modified",
		settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
		want: "v1.0.0 abcdef (modified)",
	},
	{
		name: "odd",
		settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef"},
			{Key: "vcs.modified", Value: "maybe"},
		},
		want: "v1.0.0 abcdef maybe",
	},
}

func TestFormat(t *testing.T) {
	for _, test := range formatTests {
		t.Run(test.name, func(t *testing.T) {
			bi := &debug.BuildInfo{
				Main:     debug.Module{Version: "v1.0.0"},
				Settings: test.settings,
			}
			got := format(bi)
			if got != test.want {
				t.Errorf("unexpected version string: got:%q want:%q", got, test.want)
			}
		})
	}
}
