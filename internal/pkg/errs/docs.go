// Package errs provides standardized error types for the parcel pipeline.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel for errors.Is classification
//
// Domain-specific invariant errors (invalid stage transitions, frozen
// trackings, container membership violations) live next to their aggregates
// and follow the same sentinel + struct + Unwrap convention.
package errs
