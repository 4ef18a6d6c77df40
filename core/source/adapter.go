package source

import "context"

// IDField is the key under which adapters store the derived stable ID in a
// raw record. It is the join key between the source and the content store.
const IDField = "_id"

// RawRecord is a source-native record: field names to raw values as the
// source delivers them.
type RawRecord map[string]any

// ID returns the derived stable ID of the record.
func (r RawRecord) ID() string {
	id, _ := r[IDField].(string)
	return id
}

// Adapter is the contract a record source fulfils. Implementations fetch
// full lists or single records by stable ID and download media binaries.
type Adapter interface {
	// GetAllRecords returns the full external record set keyed by stable ID.
	GetAllRecords(ctx context.Context) (map[string]RawRecord, error)
	// GetRecordByID returns one record, or a not found error.
	GetRecordByID(ctx context.Context, id string) (RawRecord, error)
	// DownloadMedia fetches the binary behind a media reference.
	DownloadMedia(ctx context.Context, ref string) ([]byte, error)
}
