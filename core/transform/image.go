package transform

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"contentsync/core/schema"
	"contentsync/core/syncerr"
	"contentsync/core/utils"
)

// MediaFetcher downloads the binary behind a media reference.
type MediaFetcher interface {
	DownloadMedia(ctx context.Context, ref string) ([]byte, error)
}

// MediaSink stores a validated image blob for a record and returns the
// stored object reference.
type MediaSink interface {
	AttachPreview(ctx context.Context, recordID string, data []byte, contentType string) (string, error)
	ClearPreview(ctx context.Context, recordID string) error
}

// SniffImage validates that data is a genuine image by sniffing its header
// bytes. Remote stores happily serve HTML or XML error pages with a 200, so
// content type claims are never trusted.
func SniffImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", syncerr.New(syncerr.KindMediaFetch, "empty media body")
	}
	contentType := http.DetectContentType(data)
	if strings.HasPrefix(contentType, "text/html") || strings.HasPrefix(contentType, "text/xml") {
		return "", syncerr.Newf(syncerr.KindMediaFetch, "media body is %s, not an image", contentType)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", syncerr.Newf(syncerr.KindMediaFetch, "unrecognized media type %s", contentType)
	}
	return contentType, nil
}

// Image fetches a remote image, validates it and attaches it as the
// record's preview blob, writing the stored object reference into the
// field. Any failure clears the preview so stale binary data never
// outlives its source, and fails only the field.
func Image(fetch MediaFetcher, sink MediaSink) Handler {
	return func(ctx context.Context, t Target) error {
		clearField := func(cause error) error {
			if err := sink.ClearPreview(ctx, t.RecordID); err != nil {
				return syncerr.Wrap(syncerr.KindMediaFetch, "failed to clear preview", err).
					WithField(t.Field.Name).WithRecord(t.RecordID)
			}
			if err := t.Record.Set(t.Field.Name, schema.Text("")); err != nil {
				return err
			}
			return cause
		}

		ref := strings.TrimSpace(utils.SafeString(t.Raw))
		if ref == "" {
			return clearField(nil)
		}

		data, err := fetch.DownloadMedia(ctx, ref)
		if err != nil {
			return clearField(syncerr.Wrap(syncerr.KindMediaFetch, "media download failed", err).
				WithField(t.Field.Name).WithRecord(t.RecordID))
		}

		contentType, err := SniffImage(data)
		if err != nil {
			var se *syncerr.Error
			if errors.As(err, &se) {
				return clearField(se.WithField(t.Field.Name).WithRecord(t.RecordID))
			}
			return clearField(err)
		}

		object, err := sink.AttachPreview(ctx, t.RecordID, data, contentType)
		if err != nil {
			return clearField(syncerr.Wrap(syncerr.KindMediaFetch, "failed to store preview", err).
				WithField(t.Field.Name).WithRecord(t.RecordID))
		}
		return t.Record.Set(t.Field.Name, schema.Text(object))
	}
}
