// Package source defines the contract record sources fulfil: full-list
// fetch, single-record fetch by stable ID, and media download. The sheets
// and rest subpackages implement it for spreadsheet and REST backends.
package source
