package persons

import (
	"context"
	"io"
	"strings"

	"contentsync/core/config"
	"contentsync/core/mapping"
	"contentsync/core/reconcile"
	"contentsync/core/schema"
	"contentsync/core/source"
	"contentsync/core/source/sheets"
	"contentsync/core/storage"
	"contentsync/core/store"
	"contentsync/core/syncerr"
	"contentsync/core/transform"
	"contentsync/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service wires the person worksheet, the field pipeline and the content
// store into a reconciliation engine.
type Service struct {
	client   *sheets.Client
	engine   *reconcile.Engine
	previews *store.PreviewStore
	logger   *zap.Logger
}

// deriveID builds the stable record ID from the phone column. The
// worksheet has no dedicated ID column and names get reshuffled, phone
// numbers are the one value that stays with a person.
func deriveID(rec source.RawRecord) string {
	return utils.CleanWhitespace(utils.SafeString(rec["phone"]))
}

// NewService builds the full person sync pipeline.
func NewService(cfg config.PersonsConfig, db *gorm.DB, storageClient storage.Client, bucket string, logger *zap.Logger) (*Service, error) {
	client, err := sheets.NewClient(cfg.Source, worksheetColumns, deriveID, logger)
	if err != nil {
		return nil, err
	}

	s := Schema()
	table, err := mapping.NewTable(MappingEntries(), s)
	if err != nil {
		return nil, err
	}

	dbStore, err := store.NewDBStore(db, s, ContentType, cfg.Container, cfg.Language)
	if err != nil {
		return nil, err
	}
	previews, err := store.NewPreviewStore(context.Background(), storageClient, bucket)
	if err != nil {
		return nil, err
	}

	tr := transform.New(s).
		Register("title", transform.Title()).
		Register("fullname", transform.Title()).
		Register("subjects", transform.SplitMerge(",", pinnedTags...)).
		Register("preview", transform.Image(client, previews))

	engine, err := reconcile.New(reconcile.Options{
		Schema:      s,
		Table:       table,
		Transformer: tr,
		Source:      client,
		Store:       dbStore,
		TitleOf: func(rec source.RawRecord) string {
			return utils.SafeString(rec["name"])
		},
		Validate: validateTitle,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return &Service{client: client, engine: engine, previews: previews, logger: logger}, nil
}

// validateTitle rejects rows without a display name. A nameless person
// entity would render as an empty card.
func validateTitle(rec *schema.Record) error {
	title, _ := rec.Get("title")
	if strings.TrimSpace(title.Text) == "" {
		return syncerr.New(syncerr.KindValidation, "the record carries no name")
	}
	return nil
}

// UpdateAll runs a full reconciliation of the worksheet.
func (s *Service) UpdateAll(ctx context.Context) (*reconcile.Report, error) {
	return s.engine.SyncAll(ctx)
}

// UpdateByID refreshes a single person on demand.
func (s *Service) UpdateByID(ctx context.Context, id string) (*reconcile.Report, error) {
	return s.engine.SyncOne(ctx, id)
}

// Preview streams the stored preview blob for an external id.
func (s *Service) Preview(ctx context.Context, id string) (io.ReadCloser, error) {
	return s.previews.GetPreview(ctx, id)
}
