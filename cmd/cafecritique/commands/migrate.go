package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/cafecritique/review-api/internal/infrastructure/db/mongo"
	"github.com/cafecritique/review-api/pkg/logger"
)

// migrateCmd creates the indexes the repositories rely on
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create MongoDB indexes",
	Long: `Create every index the API relies on, including the unique indexes on
usernames, e-mails, (blog, username) reactions and (restaurant, blogger) ratings.

The command is idempotent and is also run by "serve" at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func runMigrate(ctx context.Context) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	log := logger.Component("migrate")

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	db, err := mongo.Open(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().
		Str("database", db.Name()).
		Strs("collections", mongo.IndexedCollections()).
		Msg("indexes ensured")
	return nil
}
