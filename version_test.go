package ledger

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if v := Version(); !strings.HasPrefix(v, "v0.") {
		t.Fatalf("unexpected version %q", v)
	}

	GitCommit = "abc123"
	defer func() { GitCommit = "" }()
	if v := Version(); !strings.HasSuffix(v, " abc123") {
		t.Fatalf("commit missing from version %q", v)
	}
}
