package version

import (
	"strings"
	"testing"
)

func TestInfoUsesLinkedVersion(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "v1.4.0"
	got := Info()
	if !strings.HasPrefix(got, "v1.4.0 (commit ") {
		t.Fatalf("Info = %q, want linked version first", got)
	}
}
