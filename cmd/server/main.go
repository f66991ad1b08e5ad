package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedbackportal/auth"
	"feedbackportal/config"
	"feedbackportal/db"
	"feedbackportal/db/mongo"
	"feedbackportal/db/postgres"
	"feedbackportal/db/sqlite"
	"feedbackportal/handlers"
	"feedbackportal/repository"
	"feedbackportal/routes"
	"feedbackportal/seed"
	"feedbackportal/utils"
	"feedbackportal/web"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ConfigureLogging(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancelConnect := context.WithTimeout(ctx, 10*time.Second)
	defer cancelConnect()

	var userRepo repository.UserRepository
	var feedbackRepo repository.FeedbackRepository
	var store db.DB

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(connectCtx); err != nil {
			return err
		}
		if err := db.RunMigrations(pg.Conn); err != nil {
			return err
		}
		store = pg
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		feedbackRepo = repository.NewPostgresFeedbackRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase)
		if err := mg.Connect(connectCtx); err != nil {
			return err
		}
		if err := repository.EnsureMongoIndexes(connectCtx, mg.DB()); err != nil {
			return err
		}
		store = mg
		userRepo = repository.NewMongoUserRepo(mg.DB())
		feedbackRepo = repository.NewMongoFeedbackRepo(mg.DB())

	case db.SQLite:
		sq := sqlite.NewSQLiteDB(cfg.SQLitePath)
		if err := sq.Connect(connectCtx); err != nil {
			return err
		}
		store = sq
		userRepo = repository.NewGormUserRepo(sq.Conn)
		feedbackRepo = repository.NewGormFeedbackRepo(sq.Conn)
	}
	defer func() {
		if err := store.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("disconnect store")
		}
	}()
	log.WithField("db_type", cfg.DBType).Info("store connected")

	seeder := &seed.Seeder{Users: userRepo, Feedback: feedbackRepo, Password: cfg.SeedPassword}
	if _, err := seeder.Run(ctx); err != nil {
		return err
	}

	var sessionStore auth.Store = auth.NewMemoryStore()
	if cfg.RedisURL != "" {
		client, err := auth.NewRedisClient(connectCtx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		sessionStore = auth.NewRedisStore(client)
		log.Info("sessions stored in redis")
	}
	sessions := auth.NewSessionManager(sessionStore, userRepo)
	sessions.CookieName = cfg.SessionCookie
	sessions.TTL = cfg.SessionTTL
	sessions.Secure = cfg.SessionSecure

	views, err := web.NewTemplateRenderer()
	if err != nil {
		return err
	}

	var archiver handlers.ReportArchiver
	if cfg.R2().Enabled() {
		r2, err := utils.NewR2Archiver(connectCtx, cfg.R2())
		if err != nil {
			return err
		}
		archiver = r2
	}

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo, Sessions: sessions, Views: views}
	feedbackHandler := &handlers.FeedbackHandler{Repo: feedbackRepo, Views: views}
	dashboardHandler := &handlers.DashboardHandler{
		Repo:    repository.NewDashboardRepository(feedbackRepo),
		Views:   views,
		PDF:     utils.NewChromePDFGenerator(cfg.ChromePath),
		Archive: archiver,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(sessions, userHandler, feedbackHandler, dashboardHandler, web.Static()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
