// Package errs provides standardized error types for the shipping service.
// Every error type pairs a sentinel (for errors.Is classification at the HTTP edge)
// with a struct carrying the offending parameter and an optional cause:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value is outside of its allowed bounds
//   - ObjectNotFoundError: a shipment or status entry does not exist
//   - AccessDeniedError: an authenticated caller acts outside of its role or ownership
package errs
