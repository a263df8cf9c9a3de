package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listkeep/listkeep-api/internal/config"
	"github.com/listkeep/listkeep-api/internal/platform/logger"
	"github.com/listkeep/listkeep-api/internal/platform/mongodb"
	"github.com/listkeep/listkeep-api/internal/service"
	"github.com/listkeep/listkeep-api/internal/service/auth"
	"github.com/listkeep/listkeep-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	mongo  *mongodb.Client

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	listStore store.ListStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService     auth.JWTService
	googleVerifier auth.GoogleVerifier
	userService    service.UserService
	listService    service.ListService
	taskService    service.TaskService
}

// newApplication wires every dependency, from the MongoDB connection up to
// the services the handlers consume.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	log := logger.Setup(cfg.Server.LogLevel)

	mongoClient, err := mongodb.Connect(ctx, cfg.Database.URI, cfg.Database.Name, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	closeMongo := func() {
		if cerr := mongoClient.Close(ctx); cerr != nil {
			log.Error("failed to close mongodb client", "error", cerr)
		}
	}

	if err := mongodb.EnsureUserIndexes(ctx, mongoClient.Collection(mongodb.UserCollection)); err != nil {
		closeMongo()
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	app := &application{
		config: cfg,
		logger: log,
		mongo:  mongoClient,
	}

	app.userStore = mongodb.NewMongoUserStore(mongoClient.Collection(mongodb.UserCollection), log)
	app.listStore = mongodb.NewMongoListStore(mongoClient.Collection(mongodb.ListCollection), log)
	app.taskStore = mongodb.NewMongoTaskStore(mongoClient.Collection(mongodb.TaskCollection), log)

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeMongo()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	if cfg.Auth.GoogleClientID != "" {
		app.googleVerifier = auth.NewGoogleIDTokenVerifier(cfg.Auth.GoogleClientID)
	}

	hasher := auth.NewBcryptHasher()
	app.userService = service.NewUserService(app.userStore, app.listStore, app.taskStore, hasher, hasher, log)
	app.listService = service.NewListService(app.listStore, app.userStore, app.taskStore, log)
	app.taskService = service.NewTaskService(app.taskStore, app.listService, log)

	return app, nil
}

// cleanup releases held resources. Called once during shutdown.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), mongodb.DisconnectTimeout)
	defer cancel()

	if err := app.mongo.Close(ctx); err != nil {
		app.logger.Error("failed to close mongodb client", "error", err)
	}
}
