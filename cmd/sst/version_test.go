package main

import (
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	got := getVersion()

	// Under "go test" there is no ldflags stamp and no install version,
	// so this resolves to "dev"; a stamped binary reports a semver tag.
	if got != "dev" && !strings.HasPrefix(got, "v") {
		t.Errorf("getVersion() = %q, want \"dev\" or a vX.Y.Z tag", got)
	}
}
