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
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/workforce-management/internal/attendance/postgres"
	"github.com/frahmantamala/workforce-management/internal/auth"
	authPostgres "github.com/frahmantamala/workforce-management/internal/auth/postgres"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/employee"
	employeePostgres "github.com/frahmantamala/workforce-management/internal/employee/postgres"
	"github.com/frahmantamala/workforce-management/internal/transport/rest"
	"github.com/frahmantamala/workforce-management/internal/transport/swagger"
	"github.com/frahmantamala/workforce-management/internal/upload"
	"github.com/frahmantamala/workforce-management/pkg/logger"
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
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler       *auth.Handler
	RBAC              *auth.RBACAuthorization
	AttendanceHandler *attendance.Handler
	EmployeeHandler   *employee.Handler
	UploadHandler     *upload.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.RBAC,
		deps.AttendanceHandler,
		deps.EmployeeHandler,
		deps.UploadHandler,
		deps.Config.Upload.Dir,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	appLogger := logger.LoggerWrapper()

	// Fail fast when the published API document is broken.
	if _, err := swagger.LoadSpec("./api/openapi.yml"); err != nil {
		appLogger.Warn("openapi spec unavailable, swagger UI disabled", "error", err)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGormDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(appLogger)
	events.RegisterAuditSubscribers(bus, appLogger)

	tokenGen := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)

	authRepo := authPostgres.NewAuthRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, appLogger)
	authHandler := auth.NewHandler(authService)
	rbac := auth.NewRBACAuthorization(appLogger)

	attendanceRepo := attendancePostgres.NewAttendanceRepository(gormDB)
	attendanceService := attendance.NewService(attendanceRepo, bus, appLogger)
	attendanceHandler := attendance.NewHandler(attendanceService)

	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, cfg.Security.BCryptCost, appLogger)
	employeeHandler := employee.NewHandler(employeeService)

	uploadService := upload.NewService(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes, appLogger)
	uploadHandler := upload.NewHandler(uploadService, cfg.Upload.MaxSizeBytes)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Logger: appLogger,

		AuthHandler:       authHandler,
		RBAC:              rbac,
		AttendanceHandler: attendanceHandler,
		EmployeeHandler:   employeeHandler,
		UploadHandler:     uploadHandler,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGormDB layers GORM over the already open pgx connection pool.
// TranslateError is required so repositories can detect duplicate keys
// through gorm.ErrDuplicatedKey.
func initGormDB(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
	})
}
