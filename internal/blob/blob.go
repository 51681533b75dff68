// Package blob re-exports the report archive abstractions for stable imports
// from the engine and command packages.
package blob

import (
	"wellcore/internal/blob/core"
)

type (
	// Driver identifies an archive backend driver.
	Driver = core.Driver
	// PutOptions configures an archive write.
	PutOptions = core.PutOptions
	// Info describes stored report metadata.
	Info = core.Info
	// Store is the interface for archive backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
)

var (
	// ErrExists indicates a Put targeted an existing report key.
	ErrExists = core.ErrExists
	// ErrNotFound indicates a key holds no stored report.
	ErrNotFound = core.ErrNotFound
)
