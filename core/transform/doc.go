// Package transform converts raw source values into typed field values.
//
// The default path coerces by the field's declared kind. Special handlers
// registered per internal field cover the richer conversions: date parsing,
// tag merging with pinned tags, price and arrangement HTML rendering, and
// remote image fetch with content sniffing.
package transform
