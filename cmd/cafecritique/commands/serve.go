package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cafecritique/review-api/internal/api"
	"github.com/cafecritique/review-api/internal/api/handler"
	"github.com/cafecritique/review-api/internal/api/metrics"
	"github.com/cafecritique/review-api/internal/core/ports"
	"github.com/cafecritique/review-api/internal/core/service"
	"github.com/cafecritique/review-api/internal/core/validation"
	"github.com/cafecritique/review-api/internal/infrastructure/db/mongo"
	"github.com/cafecritique/review-api/internal/infrastructure/db/redis"
	"github.com/cafecritique/review-api/internal/infrastructure/queue"
	"github.com/cafecritique/review-api/internal/infrastructure/secrets"
	"github.com/cafecritique/review-api/internal/infrastructure/storage"
	"github.com/cafecritique/review-api/internal/pkg/config"
	"github.com/cafecritique/review-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Connect to MongoDB and Redis, ensure indexes, start the blog purge workers
and serve the API until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	db, err := mongo.Open(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	locker, redisCheck, closeRedis := openLocker(ctx, cfg.Redis, log)
	defer closeRedis()

	images, uploadDir, err := newImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	jwtSecret, err := resolveJWTSecret(ctx, cfg, log)
	if err != nil {
		return err
	}

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	restaurants := mongo.NewRestaurantRepository(db)
	blogs := mongo.NewBlogRepository(db)
	comments := mongo.NewCommentRepository(db)
	reactions := mongo.NewReactionRepository(db)
	ratings := mongo.NewRatingRepository(db)

	// --- Services ---
	validate := validation.New()
	refs := validation.NewReferences(users, restaurants, blogs)

	purge := metrics.InstrumentPurge(service.NewPurgeService(comments, reactions, logger.Component("purge")))
	dispatcher := queue.NewDispatcher(cfg.PurgeWorkers, purge, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	svc := api.Services{
		Auth:       service.NewAuthService(users, validate, jwtSecret, cfg.TokenTTL, logger.Component("auth")),
		User:       service.NewUserService(users),
		Restaurant: service.NewRestaurantService(restaurants, images, refs, validate, cfg.Upload.MaxBytes, logger.Component("restaurant")),
		Blog:       service.NewBlogService(blogs, restaurants, images, dispatcher, refs, validate, cfg.Upload.MaxBytes, logger.Component("blog")),
		Comment:    service.NewCommentService(comments, refs, validate, logger.Component("comment")),
		Reaction:   service.NewReactionService(reactions, locker, refs, validate, logger.Component("reaction")),
		Rating:     service.NewRatingService(ratings, locker, refs, validate, logger.Component("rating")),
	}

	opts := api.Options{
		JWTSecret:     jwtSecret,
		AuthRequired:  cfg.AuthRequired,
		MaxImageBytes: cfg.Upload.MaxBytes,
		UploadDir:     uploadDir,
		Checks:        map[string]handler.Check{"mongodb": handler.MongoCheck(db)},
		Log:           logger.Component("http"),
	}
	if redisCheck != nil {
		opts.Checks["redis"] = redisCheck
	}
	if cfg.RateLimit.Enabled {
		opts.AuthRateLimit = api.RateLimit{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst}
	}
	e := api.NewRouter(svc, opts)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Bool("auth_required", cfg.AuthRequired).Msg("starting server")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	dispatcher.Wait()
	log.Info().Msg("server stopped")
	return nil
}

// newImageStore returns the configured cover-image store and, for the local
// backend, the directory to serve under /uploads.
// openLocker connects the upsert lock store. Redis is optional: when it cannot
// be reached the API starts without the lock and without its readiness check.
func openLocker(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (ports.KeyLocker, handler.Check, func()) {
	rdb, err := redis.Open(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, upserts run without the lock")
		return nil, nil, func() {}
	}
	return redis.NewKeyLocker(rdb), handler.RedisCheck(rdb), func() { _ = rdb.Close() }
}

func newImageStore(ctx context.Context, cfg *config.Config) (ports.ImageStore, string, error) {
	if cfg.Upload.Backend == config.UploadS3 {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket: cfg.Upload.S3Bucket,
			Region: cfg.Upload.S3Region,
			Prefix: cfg.Upload.S3Prefix,
		})
		return store, "", err
	}
	store, err := storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}

// resolveJWTSecret prefers the SSM parameter, then JWT_SECRET. Without either
// a random per-process secret is generated, so tokens do not survive a restart.
func resolveJWTSecret(ctx context.Context, cfg *config.Config, log zerolog.Logger) (string, error) {
	if cfg.JWTSecretParam != "" {
		store, err := secrets.NewParameterStore(ctx)
		if err != nil {
			return "", err
		}
		return store.Get(ctx, cfg.JWTSecretParam)
	}
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	log.Warn().Msg("JWT_SECRET is not set, using a random secret for this process")
	return hex.EncodeToString(buf), nil
}
