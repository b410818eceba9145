package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"blog-relay/api/router"
	"blog-relay/config"
	"blog-relay/db"
	"blog-relay/feeder"
	"blog-relay/internal/logger"
	"blog-relay/metrics"
	"blog-relay/parser"
	"blog-relay/repositories"
	"blog-relay/scheduler"
	"blog-relay/services"
)

// @title        blog-relay API
// @version      1.0
// @description  Read API for posts relayed from the VG247 feed.
// @BasePath     /
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	if err := run(cfg, logger.Log); err != nil {
		logger.Log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg config.AppConfig, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Server.Port, err)
	}
	return serve(ctx, cfg, log, ln)
}

// openStore never blocks on the server. A nil *db.Mongo means no client could
// be created and the returned store fails every call.
func openStore(cfg config.MongoConfig, log logger.Logger) (*db.Mongo, services.BlogPostStore, func(context.Context) error) {
	m, err := db.Open(cfg)
	if err != nil {
		log.Errorf("failed to create MongoDB client: %v", err)
		u := repositories.Unavailable{Cause: err}
		return nil, u, func(context.Context) error { return u.Err() }
	}
	return m, repositories.NewBlogPostRepository(m.Collection()), m.Ping
}

// serve answers HTTP on ln until ctx is done. The store is bootstrapped in the
// background, so the listener is up even while Mongo is unreachable.
func serve(ctx context.Context, cfg config.AppConfig, log logger.Logger, ln net.Listener) error {
	m, store, ping := openStore(cfg.Mongo, log)

	ingestion := services.NewIngestionService(
		store,
		feeder.NewFetcher(feeder.FeedURL, nil),
		parser.NewImageExtractor(cfg.ImageExtraction),
		log,
	)
	publication := services.NewPublicationService(store, log)

	sched := scheduler.New(ctx, log)
	if err := sched.Register(scheduler.IngestSchedule, ingestion); err != nil {
		ln.Close()
		return err
	}
	if err := sched.Register(scheduler.PublishSchedule, publication); err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler: router.Handler(router.Deps{
			Blogs: services.NewBlogService(store),
			Ping:  ping,
			Log:   log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("server is running on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	sched.Start()
	g.Go(func() error {
		<-gCtx.Done()
		<-sched.Stop().Done()
		log.Info("scheduler stopped")
		return nil
	})

	if m != nil {
		// a failed bootstrap is logged, not fatal: the driver keeps reconnecting
		g.Go(func() error {
			if err := m.Bootstrap(gCtx); err != nil {
				metrics.SetStoreReachable(false)
				log.Errorf("MongoDB bootstrap failed: %v", err)
				return nil
			}
			metrics.SetStoreReachable(true)
			log.Infof("connected to MongoDB database %s", cfg.Mongo.Database)
			return nil
		})
	}

	err := g.Wait()

	if m != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if derr := m.Disconnect(disconnectCtx); derr != nil {
			log.Warnf("failed to disconnect from MongoDB: %v", derr)
		}
	}
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("server exited properly")
	return nil
}
