package models

import "errors"

// AttendanceThreshold is the attendance ratio a student must exceed to be
// persisted. Ratios equal to the threshold are not eligible.
const AttendanceThreshold = 0.6

// Enrollment errors
var (
	ErrNilStudent = errors.New("student cannot be nil")
)

// Student is the enrollment candidate. AttendanceRatio is only used for the
// eligibility check and is never stored.
type Student struct {
	ID              int64   `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	AttendanceRatio float64 `json:"attendance_ratio"`
}

// IsEligible reports whether the student's attendance ratio is strictly
// above AttendanceThreshold.
func (s *Student) IsEligible() bool {
	if s == nil {
		return false
	}
	return s.AttendanceRatio > AttendanceThreshold
}

// Row returns the persisted columns in table order: id, first name, last
// name, email.
func (s *Student) Row() []any {
	return []any{s.ID, s.FirstName, s.LastName, s.Email}
}
