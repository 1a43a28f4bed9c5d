package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/yatube/yatube/docs" // swag-generated OpenAPI docs
	appAuth "github.com/yatube/yatube/internal/app/auth"
	appControllers "github.com/yatube/yatube/internal/app/controllers"
	appMigrations "github.com/yatube/yatube/internal/app/migrations"
	appRepos "github.com/yatube/yatube/internal/app/repositories"
	appRoutes "github.com/yatube/yatube/internal/app/routes"
	appServices "github.com/yatube/yatube/internal/app/services"
	"github.com/yatube/yatube/internal/config"
	"github.com/yatube/yatube/internal/db"
	appMiddleware "github.com/yatube/yatube/internal/middleware"
	pkgAuth "github.com/yatube/yatube/internal/pkg/auth"
	"github.com/yatube/yatube/internal/pkg/email"
	"github.com/yatube/yatube/internal/pkg/filestorage"
	"github.com/yatube/yatube/internal/pkg/helpers"
	"github.com/yatube/yatube/internal/pkg/logger"
	"github.com/yatube/yatube/internal/pkg/pagecache"
	"github.com/yatube/yatube/internal/seed"
)

// Dependencies is the fully wired object graph the server runs on.
type Dependencies struct {
	AuthService       appServices.AuthService
	PostService       appServices.PostService
	GroupService      appServices.GroupService
	CommentService    appServices.CommentService
	FollowService     appServices.FollowService
	AuthController    *appControllers.AuthController
	PostController    *appControllers.PostController
	GroupController   *appControllers.GroupController
	CommentController *appControllers.CommentController
	FollowController  *appControllers.FollowController
	AboutController   *appControllers.AboutController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	PageCache         *appMiddleware.PageCache
	CacheStore        pagecache.Store
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	AuthzService      *appAuth.AuthorizationService
	EmailService      email.EmailService
	Logger            zerolog.Logger
	FileStorage       *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger reads the configuration, then reconfigures
// the global logger from it. The config path comes from CONFIG_PATH,
// falling back to configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to Postgres, applies any pending migrations
// and seeds the default data when seeding is enabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed failures never abort startup, the app runs fine without the
	// demo content
	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies constructs the object graph bottom-up, from the
// repositories through the services to the controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The baseURL must match the static file serving URL path, so stored
	// image URLs come out as /media/posts/<name> and resolve directly.
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.MediaRoot, "/media")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.CacheStore = newCacheStore(cfg, lgr)
	indexTTL := helpers.ParseDuration(cfg.Cache.IndexTTL, 20*time.Second)
	deps.PageCache = appMiddleware.NewPageCache(deps.CacheStore, indexTTL)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.PostRepository)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)

	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.UserRepository,
		deps.Repos.GroupRepository,
		deps.Repos.CommentRepository,
		deps.Repos.FollowRepository,
		deps.AuthzService,
		deps.FileStorage,
		cfg.Pagination.PostsPerPage,
		lgr,
	)
	deps.GroupService = appServices.NewGroupService(
		deps.Repos.GroupRepository,
		deps.Repos.PostRepository,
		cfg.Pagination.PostsPerPage,
		lgr,
	)
	deps.CommentService = appServices.NewCommentService(
		deps.Repos.CommentRepository,
		deps.Repos.PostRepository,
		lgr,
	)
	deps.FollowService = appServices.NewFollowService(
		deps.Repos.FollowRepository,
		deps.Repos.UserRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.PostController = appControllers.NewPostController(deps.PostService, deps.Logger)
	deps.GroupController = appControllers.NewGroupController(deps.GroupService, deps.Logger)
	deps.CommentController = appControllers.NewCommentController(deps.CommentService, deps.Logger)
	deps.FollowController = appControllers.NewFollowController(deps.FollowService, deps.Logger)
	deps.AboutController = appControllers.NewAboutController()

	return deps, nil
}

// newCacheStore picks the page cache backend. A Redis that cannot be
// reached at startup falls back to the in-process store rather than
// taking the index page down with it.
func newCacheStore(cfg *config.Config, lgr zerolog.Logger) pagecache.Store {
	if !cfg.Cache.Enabled {
		lgr.Info().Msg("Page cache disabled")
		return nil
	}

	if strings.ToLower(cfg.Cache.Backend) == "redis" {
		store := pagecache.NewRedisStore(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			lgr.Warn().Err(err).Str("addr", cfg.Cache.Redis.Addr).Msg("Redis unreachable, using in-memory page cache")
			_ = store.Close()
			return pagecache.NewMemoryStore()
		}
		lgr.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("Page cache backed by Redis")
		return store
	}

	lgr.Info().Msg("Page cache backed by in-process memory store")
	return pagecache.NewMemoryStore()
}

// SetupRouter builds the Gin engine: recovery and request logging
// first, then the swagger UI, static media and the application routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Serve uploaded post images
	router.Static("/media", cfg.Server.MediaRoot)

	appRoutes.SetupRouter(router,
		deps.PostController,
		deps.GroupController,
		deps.CommentController,
		deps.FollowController,
		deps.AuthController,
		deps.AboutController,
		deps.AuthMiddleware,
		deps.PageCache,
	)

	return router
}
