package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"socialhub/pkg/config"
	"socialhub/pkg/handlers"
	"socialhub/pkg/middleware"
	"socialhub/pkg/posts"
	"socialhub/pkg/session"
	"socialhub/pkg/storage"
	"socialhub/pkg/user"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type Application struct {
	Config *config.Config
	Logger *zap.SugaredLogger

	Handler    http.Handler
	HTTPServer *http.Server

	closers []func() error
}

// NewApplication opens the configured backend, loads the post collection
// and builds the routed handler.
func NewApplication(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Application, error) {
	a := &Application{Config: cfg, Logger: logger}

	backend, err := a.openBackend(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	store := storage.NewStore(backend, logger)
	users := user.NewDirectory(store, logger)
	sm := session.NewManager(store, users, logger)
	themes := session.NewThemeStore(store, logger)
	postsRepo := posts.NewRepo(store, logger)

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout)
	defer cancel()
	if err := postsRepo.Load(loadCtx, cfg.SeedDemo); err != nil {
		a.Close()
		return nil, fmt.Errorf("load posts: %w", err)
	}

	userHandler := &handlers.UserHandler{Users: users, Sessions: sm, Logger: logger}
	postsHandler := &handlers.PostHandler{Repo: postsRepo, Logger: logger}
	themeHandler := &handlers.ThemeHandler{Themes: themes, Logger: logger}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/").Subrouter()

	api.HandleFunc("/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", userHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/session", userHandler.Current).Methods(http.MethodGet)

	api.HandleFunc("/posts", postsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/posts", postsHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/post/{id}", postsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/post/{id}", postsHandler.Edit).Methods(http.MethodPut)
	api.HandleFunc("/post/{id}", postsHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/post/{id}/like", postsHandler.Like).Methods(http.MethodPost)
	api.HandleFunc("/post/{id}/react/{kind}", postsHandler.React).Methods(http.MethodPost)

	api.HandleFunc("/theme", themeHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/theme", themeHandler.Set).Methods(http.MethodPut)
	api.HandleFunc("/theme/toggle", themeHandler.Toggle).Methods(http.MethodPost)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteResponse(w, "not found", http.StatusNotFound)
	})

	h := middleware.Auth(logger, sm, r)
	h = middleware.Log(logger, h)
	h = middleware.Recover(logger, h)
	a.Handler = h

	a.HTTPServer = &http.Server{
		Handler:      h,
		Addr:         cfg.Addr,
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
	}

	return a, nil
}

func (a *Application) openBackend(ctx context.Context) (storage.Backend, error) {
	cfg := a.Config.Storage
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	switch cfg.Driver {
	case config.DriverMemory:
		return storage.NewMemoryBackend(), nil

	case config.DriverSQLite:
		return a.openSQL(ctx, "sqlite3", cfg.SQLitePath, storage.SQLite)

	case config.DriverMySQL:
		return a.openSQL(ctx, "mysql", cfg.MySQLDSN, storage.MySQL)

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return storage.NewRedisBackend(rdb, cfg.Redis.Prefix), nil

	case config.DriverMongo:
		client, err := storage.NewMongoClient(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		a.closers = append(a.closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		})
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return nil, fmt.Errorf("mongo ping: %w", err)
		}
		return storage.NewMongoBackend(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func (a *Application) openSQL(ctx context.Context, driverName, dsn string, dialect storage.Dialect) (storage.Backend, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%s ping: %w", driverName, err)
	}

	backend := storage.NewSQLBackend(db, dialect)
	if err := backend.Init(ctx); err != nil {
		return nil, fmt.Errorf("%s schema: %w", driverName, err)
	}

	return backend, nil
}

// Run serves until ctx is done, then shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		a.Logger.Infof("Started server at %s", a.HTTPServer.Addr)
		errc <- a.HTTPServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Errorw("close failed", "error", err)
		}
	}
	a.closers = nil
}
