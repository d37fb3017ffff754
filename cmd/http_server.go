package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/article"
	articleRepo "github.com/SenszZ00/cybersafelara1-sub000/internal/article/postgres"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/auth"
	authRepo "github.com/SenszZ00/cybersafelara1-sub000/internal/auth/postgres"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/category"
	categoryRepo "github.com/SenszZ00/cybersafelara1-sub000/internal/category/postgres"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/events"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/feedback"
	feedbackRepo "github.com/SenszZ00/cybersafelara1-sub000/internal/feedback/postgres"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/report"
	reportRepo "github.com/SenszZ00/cybersafelara1-sub000/internal/report/postgres"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/reportlog"
	reportlogRepo "github.com/SenszZ00/cybersafelara1-sub000/internal/reportlog/postgres"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/storage/minio"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/transport"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/transport/rest"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/user"
	userRepo "github.com/SenszZ00/cybersafelara1-sub000/internal/user/postgres"
	"github.com/SenszZ00/cybersafelara1-sub000/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	lg := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	blobs, err := minio.NewStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := blobs.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure attachment bucket: %w", err)
	}

	bus := events.NewEventBus(lg)
	registerEventLogging(bus, lg)

	baseHandler := transport.NewBaseHandler(lg)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo.NewAuthRepository(gormDB), tokens, cfg.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(baseHandler, authService)

	users := userRepo.NewUserRepository(gormDB)
	userHandler := user.NewHandler(user.NewService(users, lg))

	reportService := report.NewService(reportRepo.NewReportRepository(gormDB), users, blobs, bus, lg)
	reportHandler := report.NewHandler(reportService)

	reportlogService := reportlog.NewService(reportlogRepo.NewReportLogRepository(gormDB), lg)
	reportlogHandler := reportlog.NewHandler(reportlogService)

	articleService := article.NewService(articleRepo.NewArticleRepository(gormDB), bus, lg)
	articleHandler := article.NewHandler(articleService)

	categoryHandler := category.NewHandler(category.NewService(categoryRepo.NewCategoryRepository(gormDB), lg))
	feedbackHandler := feedback.NewHandler(feedback.NewService(feedbackRepo.NewFeedbackRepository(gormDB), lg))

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:      authHandler,
		User:      userHandler,
		Report:    reportHandler,
		ReportLog: reportlogHandler,
		Article:   articleHandler,
		Category:  categoryHandler,
		Feedback:  feedbackHandler,
	}, cfg.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// registerEventLogging attaches the default observability subscribers: every
// workflow event ends up in the structured log.
func registerEventLogging(bus *events.EventBus, lg *slog.Logger) {
	eventTypes := []string{
		events.ReportSubmitted,
		events.ReportAssigned,
		events.ReportStatusChanged,
		events.ReportDeleted,
		events.ArticleModerated,
	}
	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			lg.InfoContext(ctx, "workflow event",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"payload", event.Payload(),
			)
			return nil
		})
	}
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
