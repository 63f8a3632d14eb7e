// Package server wires the DocuSage server together: database and
// migrations, the blob store, the auth core and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/docusage/internal/logging"
	pb "github.com/dmitrijs2005/docusage/internal/proto"
	"github.com/dmitrijs2005/docusage/internal/server/auth"
	"github.com/dmitrijs2005/docusage/internal/server/config"
	"github.com/dmitrijs2005/docusage/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docusage/internal/server/services"
	"github.com/dmitrijs2005/docusage/internal/server/storage"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/docusage/internal/server/grpc"
)

// seams for tests
var (
	openDatabase = repomanager.Open
	newS3Store   = func(ctx context.Context, cfg storage.S3Config) (storage.BlobStore, error) {
		return storage.NewS3Store(ctx, cfg)
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	if len(c.SecretKey) < auth.MinSecretLength {
		logger.Warn(ctx, "secret key is shorter than recommended", "min_length", auth.MinSecretLength)
	}

	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:     []byte(c.SecretKey),
		Algorithm:  c.SigningAlgorithm,
		DefaultTTL: c.TokenTTL,
		Issuer:     c.TokenIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("token manager init error: %w", err)
	}

	hasher := auth.NewArgon2Hasher(auth.HasherParams{
		Time:    c.ArgonTime,
		Memory:  c.ArgonMemory,
		Threads: c.ArgonThreads,
	})

	db, rm, err := openDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := newBlobStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	us := services.NewUserService(db, rm, hasher, tokens, logger)
	fs := services.NewFileService(db, rm, store, c.MaxUploadBytes, logger)

	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, fs, gs.Options{
		AuthRateLimit:  c.AuthRateLimit,
		AuthRateBurst:  c.AuthRateBurst,
		MaxRecvMsgSize: pb.MaxMessageSize(c.MaxUploadBytes),
	})

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func newBlobStore(ctx context.Context, c *config.Config) (storage.BlobStore, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		return newS3Store(ctx, storage.S3Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3BaseEndpoint,
			AccessKey: c.S3RootUser,
			SecretKey: c.S3RootPassword,
		})
	case config.StorageLocal:
		return storage.NewLocalStore(c.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives,
// then closes the database.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.server.Run(gctx)
	})

	err := g.Wait()

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(context.Background(), "closing database failed", "error", cerr)
	}

	if err != nil {
		app.logger.Error(context.Background(), "server stopped with error", "error", err)
		return err
	}

	app.logger.Info(context.Background(), "App stopped")
	return nil
}

// Main loads configuration, builds the app and runs it. It returns the
// process exit code.
func Main() int {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		return 1
	}
	return 0
}
