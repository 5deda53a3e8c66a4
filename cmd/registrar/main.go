// Package main registers the demo customer and enrolls the demo student.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/campuskit/registrar/internal/config"
	"github.com/campuskit/registrar/internal/database"
	"github.com/campuskit/registrar/internal/models"
	"github.com/campuskit/registrar/internal/registry"
	"github.com/campuskit/registrar/internal/repository"
	"github.com/campuskit/registrar/internal/services"
	"github.com/campuskit/registrar/migrations"
	"github.com/campuskit/registrar/pkg/logger"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(out, cfg.App.LogLevel).With("env", cfg.App.Env)
	if envErr != nil {
		log.Debug("no .env file found, relying on OS environment variables")
	}

	manager := registry.NewCustomerManager(log)
	customer := manager.AddCustomer("c100", "Ahmed", "Bharat", "+911234567")
	log.Info("customer registry ready",
		"organization", manager.OrganizationName(),
		"customer_id", customer.ID,
		"customers", manager.Len(),
	)

	if !cfg.DatabaseEnabled() {
		log.Warn("database not configured, skipping enrollment")
		return nil
	}

	dialer := database.NewDialer(&cfg.Database, log)
	if cfg.Database.AutoMigrate {
		migrate(ctx, dialer, log)
	}

	svc := services.NewStudentService(repository.NewPostgresStudentRepository(dialer, log), log)
	student := &models.Student{
		ID:              1,
		FirstName:       "Ragheb",
		LastName:        "Ali",
		Email:           "ragheb@gmail.com",
		AttendanceRatio: 0.9,
	}

	if cfg.Enrollment.CompatMode {
		fmt.Fprintf(out, "Recorded added: %d\n", svc.AddStudent(ctx, student))
		return nil
	}

	result := svc.Enroll(ctx, student)
	fmt.Fprintf(out, "Enrollment %s: status=%s rows=%d\n", result.AttemptID, result.Status, result.RowsAffected)
	if result.Err != nil {
		fmt.Fprintf(out, "Cause: %v\n", result.Err)
	}
	return nil
}

// migrate applies pending migrations over a dedicated connection. Failures
// are logged; enrollment will report them again at insert time.
func migrate(ctx context.Context, connector database.Connector, log *logger.Logger) {
	conn, err := connector.Connect(ctx)
	if err != nil {
		log.Error("migrations skipped", "error", err)
		return
	}
	defer func() { _ = conn.Close(ctx) }()

	migrator, err := database.NewMigrator(conn, migrations.FS, migrations.Dir)
	if err != nil {
		log.Error("failed to load migrations", "error", err)
		return
	}

	applied, err := migrator.Up(ctx)
	if err != nil {
		log.Error("failed to apply migrations", "error", err)
		return
	}
	log.Info("migrations applied", "count", applied)
}
