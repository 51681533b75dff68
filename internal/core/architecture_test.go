package core

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestLedgerBackendsReachedThroughOpenLedgerStore ensures that packages
// outside the engine select ledger backends via OpenLedgerStore instead of
// importing the persistence implementations directly.
func TestLedgerBackendsReachedThroughOpenLedgerStore(t *testing.T) {
	infraPrefix := "wellcore/internal/infra/persistence"
	allowed := []string{
		"wellcore/internal/core",
		infraPrefix,
	}

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "wellcore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	permitted := func(path string) bool {
		// Test variants carry a " [pkg.test]" suffix.
		if i := strings.IndexByte(path, ' '); i >= 0 {
			path = path[:i]
		}
		path = strings.TrimSuffix(path, ".test")
		for _, a := range allowed {
			if path == a || strings.HasPrefix(path, a+"/") {
				return true
			}
		}
		return false
	}

	var violations []string
	for _, pkg := range pkgs {
		if permitted(pkg.PkgPath) {
			continue
		}
		for importPath := range pkg.Imports {
			if importPath == infraPrefix || strings.HasPrefix(importPath, infraPrefix+"/") {
				violations = append(violations, pkg.PkgPath+": "+importPath)
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of ledger backend package: %s", v)
		}
		t.Fatalf("found %d forbidden imports of ledger backend packages", len(violations))
	}
}
