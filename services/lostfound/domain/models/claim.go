package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/campusfound/campusfound/services/lostfound/domain"
)

// StudyYear is the fixed set of study years a claiming student can declare.
type StudyYear string

// StudyYears lists all accepted study years in order.
var StudyYears = []StudyYear{"First Year", "Second Year", "Third Year", "Fourth Year"}

// ParseStudyYear converts s into a StudyYear or fails for unknown values.
func ParseStudyYear(s string) (StudyYear, error) {
	for _, y := range StudyYears {
		if StudyYear(s) == y {
			return y, nil
		}
	}
	return "", fmt.Errorf("unknown study year %q", s)
}

// String returns the wire value of the study year.
func (y StudyYear) String() string {
	return string(y)
}

var (
	rollNumberPattern    = regexp.MustCompile(`^\d{5}$`)
	contactNumberPattern = regexp.MustCompile(`^\d{10}$`)
)

// Claim is the embedded sub-record identifying the student who claimed an
// item. A Claim is present on an Item iff the item's status is not available.
// ClaimedDate is stamped exactly once, at the transition into claimed, and
// never changes afterwards.
type Claim struct {
	StudentName   string
	RollNumber    string
	StudyYear     StudyYear
	ContactNumber string
	ClaimedDate   time.Time
}

// NewClaim validates the student fields and stamps claimedAt as the claim
// instant. All failures wrap ErrValidation with the offending field name.
func NewClaim(studentName, rollNumber, studyYear, contactNumber string, claimedAt time.Time) (Claim, error) {
	studentName = strings.TrimSpace(studentName)
	if studentName == "" {
		return Claim{}, fmt.Errorf("%w: studentName is required", domain.ErrValidation)
	}
	if !rollNumberPattern.MatchString(rollNumber) {
		return Claim{}, fmt.Errorf("%w: rollNumber must be exactly 5 digits", domain.ErrValidation)
	}
	year, err := ParseStudyYear(studyYear)
	if err != nil {
		return Claim{}, fmt.Errorf("%w: studyYear: %s", domain.ErrValidation, err)
	}
	if !contactNumberPattern.MatchString(contactNumber) {
		return Claim{}, fmt.Errorf("%w: contactNumber must be exactly 10 digits", domain.ErrValidation)
	}

	return Claim{
		StudentName:   studentName,
		RollNumber:    rollNumber,
		StudyYear:     year,
		ContactNumber: contactNumber,
		ClaimedDate:   claimedAt.UTC(),
	}, nil
}

// WithContactDetails returns a copy of c with the mutable student fields
// replaced. ClaimedDate is carried over untouched — the original claim
// instant survives edits to a claimed item.
func (c Claim) WithContactDetails(studentName, rollNumber, studyYear, contactNumber string) (Claim, error) {
	updated, err := NewClaim(studentName, rollNumber, studyYear, contactNumber, c.ClaimedDate)
	if err != nil {
		return Claim{}, err
	}
	updated.ClaimedDate = c.ClaimedDate
	return updated, nil
}
