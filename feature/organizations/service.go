package organizations

import (
	"context"
	"io"
	"sync"
	"time"

	"contentsync/core/config"
	"contentsync/core/mapping"
	"contentsync/core/reconcile"
	"contentsync/core/schema"
	"contentsync/core/source/rest"
	"contentsync/core/storage"
	"contentsync/core/store"
	"contentsync/core/syncerr"
	"contentsync/core/transform"
	"contentsync/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// windowLayout is the date format of the API list window.
const windowLayout = "2006-01-02"

// Service wires the organization API, the field pipeline and the content
// store into a reconciliation engine.
type Service struct {
	client      *rest.Client
	engine      *reconcile.Engine
	transformer *transform.Transformer
	previews    *store.PreviewStore
	logger      *zap.Logger

	windowDays int

	mu           sync.RWMutex
	arrangements map[string]string
}

// NewService builds the full organization sync pipeline. The preview
// bucket is created when it does not exist yet.
func NewService(cfg config.OrganizationsConfig, db *gorm.DB, storageClient storage.Client, bucket string, logger *zap.Logger) (*Service, error) {
	client, err := rest.NewClient(cfg.Source, logger)
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

	svc := &Service{
		client:       client,
		previews:     previews,
		logger:       logger,
		windowDays:   cfg.Source.WindowDays,
		arrangements: make(map[string]string),
	}

	tr := transform.New(s).
		Register("title", transform.Title()).
		Register("start", transform.Date()).
		Register("end", transform.Date()).
		Register("start_online_sales", transform.Date()).
		Register("end_online_sales", transform.Date()).
		Register("subjects", transform.TagMerge(pinnedTags...)).
		Register("country", transform.SplitFirst(",", "subjects", pinnedTags...)).
		Register("price", transform.Prices()).
		Register("arrangements", transform.Arrangements(svc.arrangementDescription)).
		Register("preview", transform.Image(client, previews))
	svc.transformer = tr

	engine, err := reconcile.New(reconcile.Options{
		Schema:      s,
		Table:       table,
		Transformer: tr,
		Source:      client,
		Store:       dbStore,
		Normalize:   normalizeDates,
		Validate:    validateDates,
		Availability: &reconcile.AvailabilityOptions{
			Source: client,
			Field:  "availability",
			Tracked: map[string]string{
				"organizationStatus": "organization_status",
				"statusMessage":      "status_message",
				"onsale":             "onsale",
				"percentageTaken":    "percentage_taken",
			},
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	svc.engine = engine
	return svc, nil
}

// window returns the list fetch range, from today onward.
func (s *Service) window() (string, string) {
	days := s.windowDays
	if days <= 0 {
		days = 365
	}
	now := time.Now()
	return now.Format(windowLayout), now.AddDate(0, 0, days).Format(windowLayout)
}

// UpdateAll runs a full reconciliation. The arrangement cache is refreshed
// first so that arrangement rendering sees current descriptions; a cache
// refresh failure degrades the rendering but never blocks the run.
func (s *Service) UpdateAll(ctx context.Context) (*reconcile.Report, error) {
	if err := s.refreshArrangements(ctx); err != nil {
		s.logger.Warn("Arrangement cache refresh failed", zap.Error(err))
	}
	return s.engine.SyncAll(ctx)
}

// UpdateByID refreshes a single organization on demand.
func (s *Service) UpdateByID(ctx context.Context, id string) (*reconcile.Report, error) {
	if err := s.refreshArrangements(ctx); err != nil {
		s.logger.Warn("Arrangement cache refresh failed", zap.Error(err))
	}
	return s.engine.SyncOne(ctx, id)
}

// Preview streams the stored preview blob for an external id.
func (s *Service) Preview(ctx context.Context, id string) (io.ReadCloser, error) {
	return s.previews.GetPreview(ctx, id)
}

// UpdateAvailability refreshes only the availability controls.
func (s *Service) UpdateAvailability(ctx context.Context) (*reconcile.Report, error) {
	return s.engine.SyncAvailability(ctx)
}

// refreshArrangements rebuilds the arrangement description cache from the
// arrangement list endpoint.
func (s *Service) refreshArrangements(ctx context.Context) error {
	from, until := s.window()
	products, err := s.client.ArrangementList(ctx, from, until)
	if err != nil {
		return syncerr.Wrap(syncerr.KindRequest, "unable to fetch the arrangement list", err)
	}

	cache := make(map[string]string)
	for _, product := range products {
		arrangements, _ := product["arrangements"].([]any)
		for _, raw := range arrangements {
			arrangement, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			id := utils.SafeString(arrangement["id"])
			if id == "" {
				continue
			}
			if description := utils.SafeString(arrangement["description"]); description != "" {
				cache[id] = description
			}
		}
	}

	s.mu.Lock()
	s.arrangements = cache
	s.mu.Unlock()
	return nil
}

// arrangementDescription backs the arrangement render handler.
func (s *Service) arrangementDescription(ctx context.Context, id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	description, ok := s.arrangements[id]
	return description, ok
}

// normalizeDates defaults a missing end date to the start date, so single
// day organizations need only one date in the source.
func normalizeDates(rec *schema.Record) error {
	start, _ := rec.Get("start")
	end, _ := rec.Get("end")
	if end.IsZero() && !start.IsZero() {
		return rec.Set("end", schema.Date(start.Date))
	}
	return nil
}

// validateDates rejects records without any usable date. Such records
// cannot be placed in a season and would pollute listings.
func validateDates(rec *schema.Record) error {
	start, _ := rec.Get("start")
	end, _ := rec.Get("end")
	if start.IsZero() && end.IsZero() {
		return syncerr.New(syncerr.KindValidation, "the record carries no usable date")
	}
	return nil
}
