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

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/attendance"
	attendancepg "github.com/frahmantamala/hr-management/internal/attendance/postgres"
	"github.com/frahmantamala/hr-management/internal/auth"
	authpg "github.com/frahmantamala/hr-management/internal/auth/postgres"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/notification"
	"github.com/frahmantamala/hr-management/internal/profile"
	profilepg "github.com/frahmantamala/hr-management/internal/profile/postgres"
	"github.com/frahmantamala/hr-management/internal/timeoff"
	timeoffpg "github.com/frahmantamala/hr-management/internal/timeoff/postgres"
	"github.com/frahmantamala/hr-management/internal/transport/rest"
	"github.com/frahmantamala/hr-management/internal/user"
	userpg "github.com/frahmantamala/hr-management/internal/user/postgres"
	"github.com/frahmantamala/hr-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
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

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger

	eventBus := events.NewEventBus(lg)
	mailer := notification.NewMailer(cfg.Mail, lg)
	notification.RegisterEventHandlers(eventBus, mailer)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(authpg.NewAuthRepository(deps.Gorm), tokenGen)
	userService := user.NewService(userpg.NewUserRepository(deps.Gorm), eventBus, cfg.Security.BCryptCost, lg)
	attendanceService := attendance.NewService(attendancepg.NewAttendanceRepository(deps.Gorm), lg)
	timeoffService := timeoff.NewService(timeoffpg.NewTimeOffRepository(deps.Gorm), eventBus, lg)
	profileService := profile.NewService(profilepg.NewProfileRepository(deps.Gorm), lg)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Attendance: attendance.NewHandler(attendanceService),
		TimeOff:    timeoff.NewHandler(timeoffService),
		Profile:    profile.NewHandler(profileService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, cfg.Server.AllowedOrigins, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the already-open *sql.DB so the pool is shared between
// the repositories and the health check.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpg.New(gormpg.Config{Conn: db.DB}), &gorm.Config{})
}
