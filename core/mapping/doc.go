// Package mapping implements the static field mapper: a declarative table
// translating source field names to internal field names.
//
// An empty target string is the explicit ignore marker. Ignored fields are
// dropped intentionally and recorded as a warning observation; fields
// absent from the table entirely are recorded as an error observation and
// never silently swallowed, since they signal source/schema drift.
//
// Tables are validated against the content schema at construction so a
// typo in a target field name fails at startup, not mid-sync.
package mapping
