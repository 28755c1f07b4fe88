package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	restctx "github.com/fileshelf/fileshelf-server/internal/api/rest/context"
	"github.com/fileshelf/fileshelf-server/internal/api/rest/router"
	"github.com/fileshelf/fileshelf-server/internal/config"
	"github.com/fileshelf/fileshelf-server/internal/logger"
	"github.com/fileshelf/fileshelf-server/internal/model"
	"github.com/fileshelf/fileshelf-server/internal/queue/memory"
	badgerstore "github.com/fileshelf/fileshelf-server/internal/repository/badger"
	"github.com/fileshelf/fileshelf-server/internal/repository/postgres"
	"github.com/fileshelf/fileshelf-server/internal/security"
	"github.com/fileshelf/fileshelf-server/internal/server"
	"github.com/fileshelf/fileshelf-server/internal/service"
	"github.com/fileshelf/fileshelf-server/internal/storage/disk"
	miniostorage "github.com/fileshelf/fileshelf-server/internal/storage/minio"
	"github.com/fileshelf/fileshelf-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("database is not reachable", "error", err)
	}

	sessions, err := badgerstore.Open(cfg.Sessions.Path)
	if err != nil {
		logger.Fatal("failed to open session store", "error", err)
	}
	defer sessions.Close()

	if err := sessions.Ping(); err != nil {
		logger.Fatal("session store is not reachable", "error", err)
	}

	contentStore, err := makeContentStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize content storage", "error", err)
	}

	userRepo := postgres.NewUserRepository(db)
	nodeRepo := postgres.NewFileNodeRepository(db)

	jobQueue := memory.New(cfg.Worker.QueueSize)

	authService := service.NewAuth(userRepo, sessions, security.NewBcrypt(), token.NewOpaque(), logger)
	filesService := service.NewFiles(nodeRepo, contentStore, jobQueue, logger)
	thumbnailer := service.NewThumbnailer(jobQueue, nodeRepo, contentStore, logger)

	var workers sync.WaitGroup
	for i := 0; i < cfg.Worker.Count; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			thumbnailer.Run(ctx)
		}()
	}

	r := router.New(authService, filesService, authService, restctx.NewManager(), logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	jobQueue.Close()
	workers.Wait()
	wg.Wait()
	logger.Info("shutdown complete")
}

func makeContentStore(ctx context.Context, cfg *config.Config) (model.ContentStore, error) {
	switch cfg.Storage.Backend {
	case "minio":
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return miniostorage.NewClient(ctx, minioClient, cfg.Minio.Bucket)
	case "disk":
		return disk.NewClient(cfg.Storage.Root)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
