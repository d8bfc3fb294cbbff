// Package gateway describes the hosted backend the blog client talks to.
//
// # Overview
//
// The backend is consumed, never implemented, by the pipeline. It offers:
//  1. Table-style CRUD (see Tables): select with equality/membership filters,
//     ordering, an inclusive row range and an optional row count; insert,
//     update and delete by filter.
//  2. Password authentication (see Auth): sign-up, sign-in, current session
//     lookup and sign-out.
//
// Images travel as inline data-URL strings inside rows; there is no separate
// upload endpoint.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers match with
// errors.Is: ErrNotFound, ErrNotSingle, ErrUnauthorized, ErrInvalidCredentials,
// ErrUserExists, ErrNoSession, ErrUnknownTable. Their messages are meant to
// be shown to users verbatim.
//
// # Rows
//
// Rows are untyped column maps. Decode converts a Row into a tagged struct;
// Single and MaybeSingle enforce cardinality the way a "single" select does.
//
// See Also
//
//   - Postgres implementation: package gateway/postgres
package gateway
