// Package repository handles data persistence.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/campuskit/registrar/internal/database"
	"github.com/campuskit/registrar/internal/metrics"
	"github.com/campuskit/registrar/internal/models"
	"github.com/campuskit/registrar/pkg/logger"
)

// insertStudentSQL writes the four persisted columns positionally.
const insertStudentSQL = `INSERT INTO student VALUES ($1, $2, $3, $4)`

// StudentRepository defines the interface for student persistence operations.
type StudentRepository interface {
	// AddStudent inserts one student row and returns the number of rows affected.
	AddStudent(ctx context.Context, student *models.Student) (int64, error)
}

// PostgresStudentRepository implements StudentRepository using PostgreSQL.
// Every call opens its own connection and closes it before returning.
type PostgresStudentRepository struct {
	connector database.Connector
	log       *logger.Logger
}

// Ensure PostgresStudentRepository implements StudentRepository
var _ StudentRepository = (*PostgresStudentRepository)(nil)

// NewPostgresStudentRepository creates a new PostgreSQL-backed student repository.
func NewPostgresStudentRepository(connector database.Connector, log *logger.Logger) *PostgresStudentRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &PostgresStudentRepository{
		connector: connector,
		log:       log.WithComponent("student_repository"),
	}
}

// AddStudent inserts the student's id, first name, last name and email.
// The attendance ratio is not stored.
func (r *PostgresStudentRepository) AddStudent(ctx context.Context, student *models.Student) (int64, error) {
	if student == nil {
		return 0, models.ErrNilStudent
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_student", time.Since(start)) }()

	conn, err := r.connector.Connect(ctx)
	if err != nil {
		r.log.Error("failed to open connection", "student_id", student.ID, "error", err)
		return 0, fmt.Errorf("failed to add student: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(ctx); closeErr != nil {
			r.log.Warn("failed to close connection", "student_id", student.ID, "error", closeErr)
		}
	}()

	tag, err := conn.Exec(ctx, insertStudentSQL, student.Row()...)
	if err != nil {
		r.log.Error("failed to insert student", "student_id", student.ID, "error", err)
		return 0, fmt.Errorf("failed to add student: %w", err)
	}

	added := tag.RowsAffected()
	r.log.Info("record added", "student_id", student.ID, "rows_affected", added)
	return added, nil
}

// StudentDAO exposes a StudentRepository with a count-only contract: any
// failure is logged and reported as zero rows.
type StudentDAO struct {
	repo StudentRepository
	log  *logger.Logger
}

// NewStudentDAO wraps repo.
func NewStudentDAO(repo StudentRepository, log *logger.Logger) *StudentDAO {
	if log == nil {
		log = logger.Nop()
	}
	return &StudentDAO{repo: repo, log: log.WithComponent("student_dao")}
}

// AddStudent returns the number of rows inserted, or 0 on failure.
func (d *StudentDAO) AddStudent(ctx context.Context, student *models.Student) int {
	added, err := d.repo.AddStudent(ctx, student)
	if err != nil {
		d.log.Error("student not added", "error", err)
		return 0
	}
	return int(added)
}
