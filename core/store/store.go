package store

import (
	"context"
	"encoding/json"
	"time"

	"contentsync/core/schema"
	"contentsync/core/syncerr"
)

// Workflow states of a stored entity. Entities are never hard-deleted;
// records that drop out of the external set go private.
const (
	StatePublished = "published"
	StatePrivate   = "private"
)

// Entity is a stored content object. Its ID is a URL-safe slug derived
// from the title; ExternalID is the stable join key with the source.
type Entity struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ExternalID    string    `gorm:"column:external_id;uniqueIndex"`
	ContentType   string    `gorm:"column:content_type"`
	Container     string    `gorm:"column:container"`
	Title         string    `gorm:"column:title"`
	State         string    `gorm:"column:state"`
	Language      string    `gorm:"column:language"`
	PreviewObject string    `gorm:"column:preview_object"`
	FieldsJSON    string    `gorm:"column:fields"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`

	// Fields is the decoded field set, populated on load and encoded on
	// save. Not a database column.
	Fields *schema.Record `gorm:"-"`
}

// TableName sets the backing table.
func (Entity) TableName() string {
	return "entities"
}

// DecodeFields unpacks the persisted field JSON into a typed record bound
// to the schema.
func (e *Entity) DecodeFields(s *schema.Schema) error {
	e.Fields = schema.NewRecord(s)
	if e.FieldsJSON == "" {
		return nil
	}

	var values map[string]schema.Value
	if err := json.Unmarshal([]byte(e.FieldsJSON), &values); err != nil {
		return syncerr.Wrap(syncerr.KindValidation, "stored fields are not decodable", err).
			WithRecord(e.ExternalID)
	}
	for name, v := range values {
		if err := e.Fields.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// EncodeFields packs the typed record back into the persisted JSON column.
func (e *Entity) EncodeFields() error {
	if e.Fields == nil {
		e.FieldsJSON = ""
		return nil
	}
	data, err := json.Marshal(e.Fields.Values())
	if err != nil {
		return syncerr.Wrap(syncerr.KindValidation, "fields are not encodable", err).
			WithRecord(e.ExternalID)
	}
	e.FieldsJSON = string(data)
	return nil
}

// Store is the content store contract the reconciler drives. Each Save is
// its own unit of work, a crash mid-batch leaves a consistent prefix of
// committed records.
type Store interface {
	// FindByExternalID returns the entity joined to the external ID, or
	// nil when none exists.
	FindByExternalID(ctx context.Context, externalID string) (*Entity, error)
	// ListAll returns every entity of the store's content type.
	ListAll(ctx context.Context) ([]*Entity, error)
	// Create inserts a new entity with a slug derived from the title.
	Create(ctx context.Context, container, contentType, externalID, title string) (*Entity, error)
	// Save commits the entity's current state, fields included.
	Save(ctx context.Context, e *Entity) error
	// Transition moves the entity to the given workflow state and commits.
	Transition(ctx context.Context, e *Entity, state string) error
}
