// Package storage wraps the Minio client behind a narrow interface so the
// content store can attach and clear preview image blobs, and tests can
// substitute a mock.
package storage
