package cmd

import (
	"context"
	"fmt"

	"contentsync/core/config"
	"contentsync/core/database"
	"contentsync/core/logger"
	"contentsync/core/reconcile"
	"contentsync/core/storage"
	"contentsync/core/store"

	"contentsync/feature/organizations"
	"contentsync/feature/persons"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var syncRecordID string

// syncDeps bundles the shared wiring of the one-shot commands.
type syncDeps struct {
	cfg     *config.Config
	db      *gorm.DB
	storage storage.Client
	logger  *zap.Logger
}

// syncCmd is the parent command for one-shot sync runs.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a sync once and exit",
	Long: `Run a full or single-record sync outside the server schedule.
Useful after editing the mapping or to backfill a fresh database.`,
}

var syncOrganizationsCmd = &cobra.Command{
	Use:   "organizations",
	Short: "Sync organization records from the ticketing API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(func(ctx context.Context, deps *syncDeps) (*reconcile.Report, error) {
			feature, err := organizations.NewFeature(deps.cfg.Organizations, deps.db, deps.storage, deps.cfg.Storage.Bucket, deps.logger)
			if err != nil {
				return nil, err
			}
			if !feature.IsEnabled() {
				return nil, fmt.Errorf("the organizations feature is disabled")
			}
			if syncRecordID != "" {
				return feature.Service().UpdateByID(ctx, syncRecordID)
			}
			return feature.Service().UpdateAll(ctx)
		})
	},
}

var syncPersonsCmd = &cobra.Command{
	Use:   "persons",
	Short: "Sync team member records from the spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(func(ctx context.Context, deps *syncDeps) (*reconcile.Report, error) {
			feature, err := persons.NewFeature(deps.cfg.Persons, deps.db, deps.storage, deps.cfg.Storage.Bucket, deps.logger)
			if err != nil {
				return nil, err
			}
			if !feature.IsEnabled() {
				return nil, fmt.Errorf("the persons feature is disabled")
			}
			if syncRecordID != "" {
				return feature.Service().UpdateByID(ctx, syncRecordID)
			}
			return feature.Service().UpdateAll(ctx)
		})
	},
}

var syncAvailabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Refresh only the organization availability controls",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(func(ctx context.Context, deps *syncDeps) (*reconcile.Report, error) {
			feature, err := organizations.NewFeature(deps.cfg.Organizations, deps.db, deps.storage, deps.cfg.Storage.Bucket, deps.logger)
			if err != nil {
				return nil, err
			}
			if !feature.IsEnabled() {
				return nil, fmt.Errorf("the organizations feature is disabled")
			}
			return feature.Service().UpdateAvailability(ctx)
		})
	},
}

// runSync loads the shared dependencies, runs the sync and reports the
// outcome.
func runSync(fn func(ctx context.Context, deps *syncDeps) (*reconcile.Report, error)) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate the entity table: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	report, err := fn(ctx, &syncDeps{cfg: cfg, db: db, storage: client, logger: l})
	if err != nil {
		return err
	}

	l.Info("Sync finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("retired", report.Retired),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return nil
}

func init() {
	syncCmd.AddCommand(syncOrganizationsCmd)
	syncCmd.AddCommand(syncPersonsCmd)
	syncCmd.AddCommand(syncAvailabilityCmd)

	syncOrganizationsCmd.Flags().StringVar(&syncRecordID, "id", "", "Sync a single record by its external id")
	syncPersonsCmd.Flags().StringVar(&syncRecordID, "id", "", "Sync a single record by its external id")

	RootCmd.AddCommand(syncCmd)
}
