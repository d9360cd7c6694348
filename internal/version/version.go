// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X ownerparse/internal/version.Version=..." at release time.
var (
	Version   = "0.0.0-development"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the one-line banner printed by --version. A binary built with
// `go install` has no ldflags, so the module version and VCS revision are read
// from the embedded build info instead.
func Info() string {
	v, commit := Version, GitCommit
	if bi, ok := debug.ReadBuildInfo(); ok {
		v, commit = fromBuildInfo(bi, v, commit)
	}
	return fmt.Sprintf("ownerparse %s (commit: %s, built: %s, %s)", v, commit, BuildDate, runtime.Version())
}

func fromBuildInfo(bi *debug.BuildInfo, v, commit string) (string, string) {
	if v == "0.0.0-development" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v = bi.Main.Version
	}
	if commit == "unknown" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				commit = s.Value[:7]
			}
		}
	}
	return v, commit
}
