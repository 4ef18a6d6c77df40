// Package store persists synced entities in MySQL and their preview image
// blobs in object storage. Every save is its own unit of work so a crash
// mid-batch leaves a consistent prefix of committed records.
package store
