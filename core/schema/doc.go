// Package schema declares the typed field schema for synced content.
//
// Each internal field declares its kind up front (Text, List, Bool,
// RichText, Date); the clear and transform logic dispatches on the declared
// kind instead of inspecting values at runtime. Unknown field names are
// rejected instead of silently accepted.
//
// A Record holds the normalized values for one entity and implements the
// clear-before-write pass via ClearAll: every non-sticky field is reset to
// the empty value of its kind before new values are applied.
package schema
