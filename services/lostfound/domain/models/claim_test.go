package models

import (
	"errors"
	"testing"
	"time"

	"github.com/campusfound/campusfound/services/lostfound/domain"
)

func TestNewClaim(t *testing.T) {
	claimedAt := time.Date(2024, time.March, 20, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		studentName   string
		rollNumber    string
		studyYear     string
		contactNumber string
		wantErr       bool
	}{
		{"valid claim", "Asha Kulkarni", "12345", "Second Year", "9876543210", false},
		{"missing student name", "", "12345", "Second Year", "9876543210", true},
		{"whitespace student name", "   ", "12345", "Second Year", "9876543210", true},
		{"roll number too short", "Asha", "1234", "Second Year", "9876543210", true},
		{"roll number too long", "Asha", "123456", "Second Year", "9876543210", true},
		{"roll number non-numeric", "Asha", "12a45", "Second Year", "9876543210", true},
		{"contact 9 digits", "Asha", "12345", "Second Year", "987654321", true},
		{"contact 11 digits", "Asha", "12345", "Second Year", "98765432100", true},
		{"contact non-numeric", "Asha", "12345", "Second Year", "98765abc10", true},
		{"unknown study year", "Asha", "12345", "Fifth Year", "9876543210", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClaim(tt.studentName, tt.rollNumber, tt.studyYear, tt.contactNumber, claimedAt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClaim error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if !c.ClaimedDate.Equal(claimedAt) {
				t.Fatalf("ClaimedDate = %v, want %v", c.ClaimedDate, claimedAt)
			}
		})
	}
}

func TestClaim_WithContactDetails_PreservesClaimedDate(t *testing.T) {
	claimedAt := time.Date(2024, time.March, 20, 10, 30, 0, 0, time.UTC)
	original, err := NewClaim("Asha Kulkarni", "12345", "Second Year", "9876543210", claimedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := original.WithContactDetails("Asha K", "54321", "Third Year", "9123456780")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.ClaimedDate.Equal(claimedAt) {
		t.Fatalf("ClaimedDate changed on edit: %v, want %v", updated.ClaimedDate, claimedAt)
	}
	if updated.StudentName != "Asha K" || updated.RollNumber != "54321" {
		t.Fatalf("contact details not applied: %+v", updated)
	}
}

func TestClaim_WithContactDetails_RejectsInvalid(t *testing.T) {
	original, _ := NewClaim("Asha", "12345", "Second Year", "9876543210", time.Now())
	if _, err := original.WithContactDetails("Asha", "99", "Second Year", "9876543210"); err == nil {
		t.Fatal("expected error for invalid roll number")
	}
}
