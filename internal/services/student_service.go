// Package services contains business logic.
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuskit/registrar/internal/metrics"
	"github.com/campuskit/registrar/internal/models"
	"github.com/campuskit/registrar/internal/repository"
	"github.com/campuskit/registrar/pkg/logger"
)

// EnrollStatus is the outcome of an enrollment attempt.
type EnrollStatus int

const (
	// StatusInserted means the repository accepted the row.
	StatusInserted EnrollStatus = iota
	// StatusIneligible means the attendance gate rejected the student
	// and no persistence was attempted.
	StatusIneligible
	// StatusFailed means the repository reported an error.
	StatusFailed
)

// String returns the status label used in logs and metrics.
func (s EnrollStatus) String() string {
	switch s {
	case StatusInserted:
		return "inserted"
	case StatusIneligible:
		return "ineligible"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EnrollResult describes what happened to one student.
type EnrollResult struct {
	AttemptID    string
	Status       EnrollStatus
	RowsAffected int64
	Err          error
}

// Count collapses the result to the number of rows written. Ineligible and
// failed attempts both report zero.
func (r EnrollResult) Count() int {
	if r.Status != StatusInserted {
		return 0
	}
	return int(r.RowsAffected)
}

// StudentService gates student persistence on attendance.
type StudentService struct {
	repo repository.StudentRepository
	log  *logger.Logger
}

// NewStudentService creates a new StudentService instance.
func NewStudentService(repo repository.StudentRepository, log *logger.Logger) *StudentService {
	if log == nil {
		log = logger.Nop()
	}
	return &StudentService{
		repo: repo,
		log:  log.WithComponent("student_service"),
	}
}

// Enroll persists the student when its attendance ratio exceeds
// models.AttendanceThreshold. The student is passed to the repository
// unmodified.
func (s *StudentService) Enroll(ctx context.Context, student *models.Student) EnrollResult {
	result := EnrollResult{AttemptID: uuid.NewString()}
	log := s.log.With("attempt_id", result.AttemptID)

	switch {
	case student == nil:
		log.Warn("no student given")
		result.Status = StatusIneligible
	case !student.IsEligible():
		log.Info("student below attendance threshold",
			"student_id", student.ID,
			"attendance_ratio", student.AttendanceRatio,
			"threshold", models.AttendanceThreshold,
		)
		result.Status = StatusIneligible
	default:
		rows, err := s.repo.AddStudent(ctx, student)
		result.RowsAffected = rows
		if err != nil {
			log.Error("enrollment failed", "student_id", student.ID, "error", err)
			result.Status = StatusFailed
			result.Err = err
			result.RowsAffected = 0
			break
		}
		log.Info("student enrolled", "student_id", student.ID, "rows_affected", rows)
		result.Status = StatusInserted
	}

	metrics.RecordEnrollment(result.Status.String())
	return result
}

// AddStudent returns the number of rows inserted for student. Zero covers
// both an ineligible student and a failed insert; use Enroll to tell them apart.
func (s *StudentService) AddStudent(ctx context.Context, student *models.Student) int {
	return s.Enroll(ctx, student).Count()
}
