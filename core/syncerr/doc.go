// Package syncerr defines the closed error taxonomy used by the sync core.
//
// Every failure is classified with a Kind that drives the propagation
// policy: field-level kinds (FieldMapping, FieldTransform, MediaFetch) are
// logged and swallowed, record-level kinds (NotFound, Validation) abort a
// single record, and Setup aborts the whole operation.
//
// # Usage
//
//	err := syncerr.Newf(syncerr.KindNotFound, "organization %q is not in the store", id)
//	if syncerr.IsKind(err, syncerr.KindNotFound) { ... }
package syncerr
