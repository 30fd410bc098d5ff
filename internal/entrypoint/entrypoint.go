package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordgroups/internal/auth"
	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/database/languages"
	"github.com/mrlokans/wordgroups/internal/database/tags"
	"github.com/mrlokans/wordgroups/internal/database/users"
	"github.com/mrlokans/wordgroups/internal/database/wordgroups"
	http_controllers "github.com/mrlokans/wordgroups/internal/http"
	"github.com/mrlokans/wordgroups/internal/scheduler"
	"github.com/mrlokans/wordgroups/internal/seed"
	"github.com/mrlokans/wordgroups/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL cannot be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Background workers stop after the server so in-flight requests can still enqueue
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Word Groups v%s", version)

	// Without a schema nothing can be served
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if cfg.Database.Path == config.DefaultDatabasePath && cfg.Database.Type == "sqlite" {
		log.Printf("WARNING: using an in-memory database; all data is lost on restart. Set DATABASE_PATH to persist.")
	}

	groupRepo := wordgroups.NewRepository(db)
	tagRepo := tags.NewRepository(db)
	languageRepo := languages.NewRepository(db)

	if cfg.Seed.StarterContent {
		if _, err := seed.SeedStarterContent(context.Background(), groupRepo); err != nil {
			log.Fatalf("Failed to seed starter content: %v", err)
		}
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewImportWordGroupsQueue(groupRepo),
			tasks.NewCleanupOrphanTagsQueue(tagRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Periodic orphan tag cleanup
	var tagCleanup *scheduler.TagCleanupScheduler
	if cfg.TagCleanup.Enabled {
		var queue scheduler.TaskEnqueuer
		if taskClient != nil {
			queue = taskClient
		}
		tagCleanup = scheduler.NewTagCleanupScheduler(cfg.TagCleanup.Schedule, queue, tagRepo)
		if err := tagCleanup.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start tag cleanup scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		WordGroupStore: groupRepo,
		TagStore:       tagRepo,
		LanguageStore:  languageRepo,
		AuthConfig:     cfg.Auth,
		Version:        version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	// Initialize authentication if enabled
	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		authService := auth.NewService(users.NewRepository(db), cfg.Auth)

		var sessionManager *auth.SessionManager
		if db.Dialect() == "sqlite" {
			sqlDB, err := db.DB.DB()
			if err != nil {
				log.Fatalf("Failed to get SQL DB for sessions: %v", err)
			}
			sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
			if err != nil {
				log.Fatalf("Failed to initialize session manager: %v", err)
			}
		} else {
			log.Printf("Sessions are kept in memory for %s; tokens do not survive a restart", db.Dialect())
			sessionManager = auth.NewMemorySessionManager(cfg.Auth)
		}
		defer sessionManager.Stop()

		authController := auth.NewAuthController(authService, sessionManager, cfg.Auth)
		defer authController.Stop()

		routerCfg.AuthService = authService
		routerCfg.SessionManager = sessionManager
		routerCfg.AuthMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)
		routerCfg.AuthController = authController
	} else {
		log.Printf("Authentication mode: none (every caller is anonymous)")
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if tagCleanup != nil {
			tagCleanup.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
