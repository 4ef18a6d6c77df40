package store

import (
	"context"
	"errors"
	"fmt"

	"contentsync/core/schema"
	"contentsync/core/syncerr"
	"contentsync/core/utils"

	"gorm.io/gorm"
)

// maxSlugAttempts bounds the collision suffix search on create.
const maxSlugAttempts = 50

// DBStore implements Store on MySQL. One instance serves one content type,
// bound to its schema, container and language.
type DBStore struct {
	db          *gorm.DB
	schema      *schema.Schema
	contentType string
	container   string
	language    string
}

// NewDBStore creates a store bound to a content type.
func NewDBStore(db *gorm.DB, s *schema.Schema, contentType, container, language string) (*DBStore, error) {
	if db == nil {
		return nil, syncerr.New(syncerr.KindSetup, "a database connection is required")
	}
	if s == nil {
		return nil, syncerr.New(syncerr.KindSetup, "a schema is required")
	}
	if contentType == "" {
		return nil, syncerr.New(syncerr.KindSetup, "a content type is required")
	}
	if container == "" {
		return nil, syncerr.New(syncerr.KindSetup, "a container is required")
	}
	if language == "" {
		language = "en"
	}
	return &DBStore{
		db:          db,
		schema:      s,
		contentType: contentType,
		container:   container,
		language:    language,
	}, nil
}

// Migrate creates or updates the entities table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entity{})
}

// FindByExternalID returns the entity joined to the external ID, or nil
// when none exists.
func (s *DBStore) FindByExternalID(ctx context.Context, externalID string) (*Entity, error) {
	var e Entity
	err := s.db.WithContext(ctx).
		Where("external_id = ? AND content_type = ?", externalID, s.contentType).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := e.DecodeFields(s.schema); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListAll returns every entity of the store's content type.
func (s *DBStore) ListAll(ctx context.Context) ([]*Entity, error) {
	var rows []Entity
	err := s.db.WithContext(ctx).
		Where("content_type = ?", s.contentType).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*Entity, 0, len(rows))
	for i := range rows {
		if err := rows[i].DecodeFields(s.schema); err != nil {
			return nil, err
		}
		entities = append(entities, &rows[i])
	}
	return entities, nil
}

// Create inserts a new private entity. The slug is derived from the title;
// collisions get a numeric suffix.
func (s *DBStore) Create(ctx context.Context, container, contentType, externalID, title string) (*Entity, error) {
	if externalID == "" {
		return nil, syncerr.New(syncerr.KindValidation, "an external id is required to create an entity")
	}
	if container == "" {
		container = s.container
	}
	if contentType == "" {
		contentType = s.contentType
	}

	slug, err := s.deriveSlug(ctx, title, externalID)
	if err != nil {
		return nil, err
	}

	e := &Entity{
		ID:          slug,
		ExternalID:  externalID,
		ContentType: contentType,
		Container:   container,
		Title:       title,
		State:       StatePrivate,
		Language:    s.language,
		Fields:      schema.NewRecord(s.schema),
	}
	if err := e.EncodeFields(); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// deriveSlug normalizes the title to a URL-safe ID, falling back to the
// external ID for untitled records, and probes for a free slug.
func (s *DBStore) deriveSlug(ctx context.Context, title, externalID string) (string, error) {
	base := utils.NormalizeID(title)
	if base == "" {
		base = utils.NormalizeID(externalID)
	}
	if base == "" {
		return "", syncerr.New(syncerr.KindValidation, "cannot derive a slug from an empty title").
			WithRecord(externalID)
	}

	slug := base
	for attempt := 2; attempt <= maxSlugAttempts; attempt++ {
		var count int64
		err := s.db.WithContext(ctx).Model(&Entity{}).
			Where("id = ?", slug).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, attempt)
	}
	return "", syncerr.Newf(syncerr.KindValidation, "no free slug for %q", base).WithRecord(externalID)
}

// Save commits the entity in its own transaction.
func (s *DBStore) Save(ctx context.Context, e *Entity) error {
	if err := e.EncodeFields(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(e).Error
	})
}

// Transition moves the entity to the given workflow state and commits.
func (s *DBStore) Transition(ctx context.Context, e *Entity, state string) error {
	if state != StatePublished && state != StatePrivate {
		return syncerr.Newf(syncerr.KindValidation, "state %q is not valid", state).
			WithRecord(e.ExternalID)
	}
	if e.State == state {
		return nil
	}
	e.State = state
	return s.Save(ctx, e)
}
