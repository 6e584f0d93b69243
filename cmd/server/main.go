package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/irondev/iron-dev-agent/internal/cloud"
	"github.com/irondev/iron-dev-agent/internal/config"
	"github.com/irondev/iron-dev-agent/internal/database"
	"github.com/irondev/iron-dev-agent/internal/handlers"
	"github.com/irondev/iron-dev-agent/internal/legacy"
	"github.com/irondev/iron-dev-agent/internal/logger"
	"github.com/irondev/iron-dev-agent/internal/repository"
	"github.com/irondev/iron-dev-agent/internal/server"
	"github.com/irondev/iron-dev-agent/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, !cfg.IsRelease())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Connect to database
	if err := database.Connect(cfg, zl); err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(zl); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	jwtSecret, err := resolveJWTSecret(ctx, cfg)
	if err != nil {
		zl.Fatal("failed to resolve JWT secret", zap.Error(err))
	}
	tokenService, err := services.NewTokenService(jwtSecret, cfg.JWTTTL)
	if err != nil {
		zl.Fatal("failed to create token service", zap.Error(err))
	}

	// A missing provider leaves the rest of the API usable; generation answers 503.
	generator, err := services.NewGeneratorFromConfig(ctx, cfg)
	if err != nil {
		if !errors.Is(err, services.ErrGeneratorNotConfigured) {
			zl.Fatal("failed to create generator", zap.Error(err))
		}
		zl.Warn("text generation is disabled", zap.String("provider", cfg.GenerationProvider))
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		zl.Fatal("failed to create session store", zap.Error(err))
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	legacyStore := legacy.NewStore(cfg.ProjectsDir)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, legacyStore, zl)
	artifactService := services.NewArtifactService(projectService, projectRepo, legacyStore, zl)
	generationService := services.NewGenerationService(projectService, artifactService, generator, zl)
	legacyService := services.NewLegacyService(legacyStore, generator, zl)

	r := server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Log:          zl,
		SessionStore: sessionStore,

		Tokens:   tokenService,
		Users:    authService,
		Projects: projectService,

		AuthHandler:     handlers.NewAuthHandler(authService, tokenService),
		ProjectHandler:  handlers.NewProjectHandler(projectService),
		ArtifactHandler: handlers.NewArtifactHandler(artifactService),
		AIHandler:       handlers.NewAIHandler(generationService),
		LegacyHandler:   handlers.NewLegacyHandler(legacyService, zl),
	})

	// Start server
	zl.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

func resolveJWTSecret(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.JWTSecretID == "" {
		return cfg.JWTSecret, nil
	}

	awsCfg, err := cloud.LoadConfig(ctx, cfg)
	if err != nil {
		return "", err
	}
	return cloud.GetSecretString(ctx, cloud.NewSecretsClient(awsCfg), cfg.JWTSecretID)
}

// newSessionStore keeps legacy sessions in Redis when REDIS_HOST is set and
// in a signed cookie otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisHost != "" {
		rs, err := redisStore.NewStore(
			10,                              // Redis pool size
			"tcp",                           // network type
			cfg.RedisHost+":"+cfg.RedisPort, // Redis address from config
			"",                              // username (empty for default user)
			"",                              // password (empty = no password)
			[]byte(cfg.SessionSecret),       // authentication key
		)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsRelease(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
