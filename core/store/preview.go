package store

import (
	"bytes"
	"context"
	"errors"
	"io"

	"contentsync/core/storage"
	"contentsync/core/syncerr"

	"github.com/minio/minio-go/v7"
)

// PreviewStore keeps preview image blobs in object storage, one object per
// external ID. It backs the image transform handler.
type PreviewStore struct {
	client storage.Client
	bucket string
}

// NewPreviewStore ensures the bucket exists and returns the store.
func NewPreviewStore(ctx context.Context, client storage.Client, bucket string) (*PreviewStore, error) {
	if client == nil {
		return nil, syncerr.New(syncerr.KindSetup, "a storage client is required")
	}
	if bucket == "" {
		return nil, syncerr.New(syncerr.KindSetup, "a bucket name is required")
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, syncerr.Wrap(syncerr.KindSetup, "unable to check the preview bucket", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, syncerr.Wrap(syncerr.KindSetup, "unable to create the preview bucket", err)
		}
	}
	return &PreviewStore{client: client, bucket: bucket}, nil
}

// AttachPreview stores the image blob under the external ID and returns
// the object name.
func (p *PreviewStore) AttachPreview(ctx context.Context, recordID string, data []byte, contentType string) (string, error) {
	if recordID == "" {
		return "", syncerr.New(syncerr.KindMediaFetch, "a record id is required to attach a preview")
	}
	_, err := p.client.PutObject(ctx, p.bucket, recordID,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", syncerr.Wrap(syncerr.KindMediaFetch, "unable to store the preview blob", err).
			WithRecord(recordID)
	}
	return recordID, nil
}

// GetPreview streams the stored blob for the external ID. The caller owns
// the returned reader.
func (p *PreviewStore) GetPreview(ctx context.Context, recordID string) (io.ReadCloser, error) {
	if recordID == "" {
		return nil, syncerr.New(syncerr.KindNotFound, "a record id is required to fetch a preview")
	}
	blob, err := p.client.GetObject(ctx, p.bucket, recordID, minio.GetObjectOptions{})
	if err != nil {
		var minioErr minio.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return nil, syncerr.New(syncerr.KindNotFound, "no preview is stored for the record").
				WithRecord(recordID)
		}
		return nil, syncerr.Wrap(syncerr.KindMediaFetch, "unable to fetch the preview blob", err).
			WithRecord(recordID)
	}
	return blob, nil
}

// ClearPreview removes the blob for the external ID. A missing object is
// not an error, clearing is idempotent.
func (p *PreviewStore) ClearPreview(ctx context.Context, recordID string) error {
	if recordID == "" {
		return nil
	}
	err := p.client.RemoveObject(ctx, p.bucket, recordID, minio.RemoveObjectOptions{})
	if err != nil {
		var minioErr minio.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return nil
		}
		return syncerr.Wrap(syncerr.KindMediaFetch, "unable to remove the preview blob", err).
			WithRecord(recordID)
	}
	return nil
}
