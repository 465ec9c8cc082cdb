// Package errors provides error handling for the analyzer.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints on fatal conditions
//
// Usage:
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrDatabaseNotFound) {
//	    // handle missing database file
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// GetStack is an alias for GetReportableStackTrace for convenience.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors for use across the analyzer.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrDatabaseNotFound indicates the database file does not exist on disk.
	// This is a fatal condition; the run aborts.
	ErrDatabaseNotFound = New("database file not found")

	// ErrTableMissing indicates an expected table is absent from the schema.
	// Callers generally skip the dependent analysis rather than fail.
	ErrTableMissing = New("table missing")
)

// IsDatabaseNotFound checks if an error is or wraps ErrDatabaseNotFound
func IsDatabaseNotFound(err error) bool {
	return err != nil && Is(err, ErrDatabaseNotFound)
}

// IsTableMissing checks if an error is or wraps ErrTableMissing
func IsTableMissing(err error) bool {
	return err != nil && Is(err, ErrTableMissing)
}
