package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/studytracker/core/internal/adapters/repository"
	"github.com/studytracker/core/internal/application/services"
	"github.com/studytracker/core/internal/infrastructure/config"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/infrastructure/server"
	"github.com/studytracker/core/internal/infrastructure/storage"
	"github.com/studytracker/core/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the StudyTracker API server",
		Long:  "Start the StudyTracker API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage migrations for the postgres storage backend (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up", 0)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down", 0)
		},
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	}
	migrateCmd.AddCommand(versionCmd)

	return migrateCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create accounts in the configured storage backend",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			if username == "" || password == "" {
				log.Fatal("Username and password are required")
			}

			createUser(username, password)
		},
	}

	createUserCmd.Flags().String("username", "", "Account username (required)")
	createUserCmd.Flags().String("password", "", "Account password (required)")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print StudyTracker version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("StudyTracker Core v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		appLogger.Fatal("Failed to open storage", "error", err)
	}
	defer store.Close()

	srv, err := server.New(cfg, store, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting StudyTracker API server",
		"port", cfg.Server.Port,
		"backend", store.Backend(),
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Error("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
}

func runMigration(direction string, steps int) {
	m := newMigrator()

	var err error
	switch direction {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m := newMigrator()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func newMigrator() *migrate.Migrate {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Storage.Backend != "postgres" {
		log.Fatalf("Migrations only apply to the postgres backend (configured: %s)", cfg.Storage.Backend)
	}

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	driver, err := postgres.WithInstance(store.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	return m
}

func createUser(username, password string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	userRepo := repository.NewUserRepository(store.Storage)
	onboardingRepo := repository.NewOnboardingRepository(store.Storage)
	authService := services.NewAuthService(userRepo, onboardingRepo, cfg.JWT, appLogger)

	resp, err := authService.Signup(ctx, ports.SignupRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("  ID: %d\n", resp.User.ID)
	fmt.Printf("  Username: %s\n", resp.User.Username)
}
