package models

import (
	"testing"
	"time"
)

func TestCourseAvailableSeats(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		enrolled int
		want     int
	}{
		{name: "empty course", capacity: 30, enrolled: 0, want: 30},
		{name: "partially full", capacity: 30, enrolled: 12, want: 18},
		{name: "full", capacity: 30, enrolled: 30, want: 0},
		{name: "overbooked clamps to zero", capacity: 30, enrolled: 31, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Course{MaxCapacity: tt.capacity, EnrolledCount: tt.enrolled}
			if got := c.AvailableSeats(); got != tt.want {
				t.Errorf("AvailableSeats() = %d, want %d", got, tt.want)
			}
			if got := c.HasAvailableSeats(); got != (tt.want > 0) {
				t.Errorf("HasAvailableSeats() = %v, want %v", got, tt.want > 0)
			}
		})
	}
}

func TestEnrollmentTakesSeat(t *testing.T) {
	tests := []struct {
		status EnrollmentStatus
		want   bool
	}{
		{StatusEnrolled, true},
		{StatusRegular, false},
		{StatusPassed, false},
		{StatusFailed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e := &Enrollment{Status: tt.status}
			if got := e.TakesSeat(); got != tt.want {
				t.Errorf("TakesSeat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnrollmentStatusIsValid(t *testing.T) {
	for _, s := range []EnrollmentStatus{StatusEnrolled, StatusRegular, StatusPassed, StatusFailed} {
		if !s.IsValid() {
			t.Errorf("IsValid() = false for %q", s)
		}
	}
	for _, s := range []EnrollmentStatus{"", "enrolled", "DROPPED"} {
		if s.IsValid() {
			t.Errorf("IsValid() = true for %q", s)
		}
	}
}

func TestIsValidSemester(t *testing.T) {
	for _, sem := range []int{SemesterAnnual, SemesterFirst, SemesterSecond} {
		if !IsValidSemester(sem) {
			t.Errorf("IsValidSemester(%d) = false", sem)
		}
	}
	for _, sem := range []int{-1, 3, 10} {
		if IsValidSemester(sem) {
			t.Errorf("IsValidSemester(%d) = true", sem)
		}
	}
}

func TestUserIsLocked(t *testing.T) {
	now := time.Now()
	future := now.Add(10 * time.Minute)
	past := now.Add(-10 * time.Minute)

	tests := []struct {
		name        string
		lockedUntil *time.Time
		want        bool
	}{
		{name: "never locked", lockedUntil: nil, want: false},
		{name: "deadline in future", lockedUntil: &future, want: true},
		{name: "deadline expired", lockedUntil: &past, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{LockedUntil: tt.lockedUntil}
			if got := u.IsLocked(now); got != tt.want {
				t.Errorf("IsLocked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Ana", LastName: "Garcia", Email: "ana@escuela.edu.ar"}
	if got := u.FullName(); got != "Ana Garcia" {
		t.Errorf("FullName() = %q, want %q", got, "Ana Garcia")
	}
	u = &User{Email: "admin@escuela.local"}
	if got := u.FullName(); got != "admin@escuela.local" {
		t.Errorf("FullName() = %q, want the email fallback", got)
	}
}
