package domain

import (
	"testing"

	"wellcore/testutil"
)

// The domain package is the contract between the engine and its callers; it
// must stay free of implementation concerns.
func TestDomainHasNoInternalImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden,
		"pkg/domain must not depend on internal packages")
}
