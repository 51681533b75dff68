package blob

import (
	infraFS "wellcore/internal/infra/blob/fs"
)

// NewFilesystem returns a filesystem-backed archive rooted at path, creating
// the directory if needed.
func NewFilesystem(root string) (Store, error) {
	return infraFS.New(root)
}
