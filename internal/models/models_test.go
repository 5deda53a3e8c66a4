package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomer(t *testing.T) {
	c := NewCustomer("c100", "Ahmed", "Bharat", "+911234567")

	assert.Equal(t, "c100", c.ID)
	assert.Equal(t, "Ahmed", c.FirstName)
	assert.Equal(t, "Bharat", c.LastName)
	assert.Equal(t, "+911234567", c.PhoneNumber)
}

func TestCustomer_FullName(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		expected string
	}{
		{"both names", Customer{FirstName: "Ahmed", LastName: "Bharat"}, "Ahmed Bharat"},
		{"first only", Customer{FirstName: "Ahmed"}, "Ahmed"},
		{"last only", Customer{LastName: "Bharat"}, "Bharat"},
		{"neither", Customer{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.customer.FullName())
		})
	}
}

func TestStudent_IsEligible(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected bool
	}{
		{"well below threshold", 0.1, false},
		{"half attendance", 0.5, false},
		{"exactly at threshold", 0.6, false},
		{"just above threshold", 0.61, true},
		{"full attendance", 1.0, true},
		{"out of range ratio", 6, true},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Student{AttendanceRatio: tt.ratio}
			assert.Equal(t, tt.expected, s.IsEligible())
		})
	}
}

func TestStudent_IsEligible_Nil(t *testing.T) {
	var s *Student
	assert.False(t, s.IsEligible())
}

func TestStudent_RowExcludesAttendance(t *testing.T) {
	s := &Student{
		ID:              1,
		FirstName:       "Ragheb",
		LastName:        "Ali",
		Email:           "ragheb@gmail.com",
		AttendanceRatio: 0.9,
	}

	row := s.Row()
	assert.Equal(t, []any{int64(1), "Ragheb", "Ali", "ragheb@gmail.com"}, row)
	assert.NotContains(t, row, 0.9)
}
