// Package utils provides small value coercion and normalization helpers
// shared across the sync core: safe string/bool/list coercion of raw source
// values and URL-safe slug derivation for new entity identifiers.
package utils
