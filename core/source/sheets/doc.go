// Package sheets implements the record source contract on top of a
// spreadsheet worksheet, with media pulled from the drive download
// endpoint.
package sheets
