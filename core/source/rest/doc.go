// Package rest implements the record source contract on top of the
// organization REST API, with test and prod environments selected at
// runtime and a closed response status vocabulary.
package rest
