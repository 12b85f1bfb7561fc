package main

import "runtime/debug"

// version is stamped by release builds: -ldflags "-X main.version=v1.2.3".
var version = ""

// getVersion resolves the CLI version. The ldflags stamp wins; binaries
// installed with "go install @version" fall back to the module version
// from build info; everything else reports "dev".
func getVersion() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}

	return "dev"
}
