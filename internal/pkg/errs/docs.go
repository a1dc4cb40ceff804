// Package errs provides standardized error types for the transfer workflow service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the service's failure taxonomy:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: an order, item or location does not exist
//   - StateConflictError: a workflow action was attempted from a status that forbids it
//   - TransportError: the backing store could not be reached or timed out
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf collapses any error into one of the taxonomy kinds so that batch results
// and HTTP responses can report a stable category without inspecting messages.
package errs
