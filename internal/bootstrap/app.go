// Package bootstrap wires configuration into repositories, services,
// handlers, and the router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/activity"
	"github.com/azim128/jobify/internal/ai"
	openai "github.com/azim128/jobify/internal/ai/openai"
	"github.com/azim128/jobify/internal/companies"
	"github.com/azim128/jobify/internal/jobs"
	"github.com/azim128/jobify/internal/shared/auth"
	"github.com/azim128/jobify/internal/shared/config"
	"github.com/azim128/jobify/internal/shared/mailer"
	"github.com/azim128/jobify/internal/shared/server"
	"github.com/azim128/jobify/internal/shared/storage/db"
	"github.com/azim128/jobify/internal/shared/storage/object"
	localstore "github.com/azim128/jobify/internal/shared/storage/object/local"
	s3store "github.com/azim128/jobify/internal/shared/storage/object/s3"
	"github.com/azim128/jobify/internal/shared/telemetry"
	"github.com/azim128/jobify/internal/uploads"
	"github.com/azim128/jobify/internal/users"
)

// App holds shared dependencies after Build.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersRepo    users.Repo
	CompanyRepo  companies.Repo
	JobRepo      jobs.Repo
	UploadRepo   uploads.Repo
	ActivityRepo activity.Repo

	Tokens          *auth.TokenIssuer
	UsersService    *users.Service
	AuthService     *users.AuthService
	UploadService   *uploads.Service
	CompanyService  *companies.Service
	JobService      *jobs.Service
	AIService       *ai.Service
	ActivityService *activity.Service
}

// Build prepares dependencies and the router. Dev-like environments fall
// back to in-memory repositories when the database is absent.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Tokens: auth.NewTokenIssuer(cfg.JWTSecret),
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.CompanyRepo = &companies.PGRepo{DB: sqlDB}
		app.JobRepo = &jobs.PGRepo{DB: sqlDB}
		app.UploadRepo = &uploads.PGRepo{DB: sqlDB}
		app.ActivityRepo = &activity.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.CompanyRepo = companies.NewMemoryRepo()
		app.JobRepo = jobs.NewMemoryRepo()
		app.UploadRepo = uploads.NewMemoryRepo()
		app.ActivityRepo = activity.NewMemoryRepo()
	}

	var mail mailer.Mailer
	if smtp := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFromEmail, cfg.SMTPFromName); smtp != nil {
		mail = smtp
	}

	var aiClient ai.Client
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITimeout)
		if err != nil {
			return nil, err
		}
		aiClient = client
	} else {
		telemetry.Warn("bootstrap.ai_disabled", map[string]any{"reason": "OPENAI_API_KEY not set"})
	}

	app.ActivityService = &activity.Service{Repo: app.ActivityRepo, Users: app.UsersRepo}
	app.UsersService = &users.Service{Repo: app.UsersRepo, Tokens: app.Tokens}
	app.AuthService = users.NewAuthService(app.UsersRepo, app.Tokens, mail, app.ActivityService, cfg.FrontendURL)
	app.UploadService = &uploads.Service{Repo: app.UploadRepo, Store: store}
	app.CompanyService = &companies.Service{
		Repo:        app.CompanyRepo,
		Users:       app.UsersRepo,
		Files:       app.UploadService,
		FileRecords: app.UploadRepo,
	}
	app.JobService = &jobs.Service{
		Repo:        app.JobRepo,
		Companies:   app.CompanyRepo,
		Users:       app.UsersRepo,
		Files:       app.UploadService,
		FileRecords: app.UploadRepo,
	}
	app.AIService = ai.NewService(aiClient)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		UsersRepo:       app.UsersRepo,
		Tokens:          app.Tokens,
		ActivityService: app.ActivityService,
		UsersHandler:    users.NewHandler(app.UsersService),
		AuthHandler:     users.NewAuthHandler(app.AuthService),
		CompanyHandler:  companies.NewHandler(app.CompanyService),
		JobHandler:      jobs.NewHandler(app.JobService),
		UploadHandler:   uploads.NewHandler(app.UploadService),
		AIHandler:       ai.NewHandler(app.AIService),
		ActivityHandler: activity.NewHandler(app.ActivityService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}
