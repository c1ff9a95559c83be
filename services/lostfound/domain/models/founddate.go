package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/campusfound/campusfound/services/lostfound/domain"
)

// Found dates carry calendar-date semantics only. They are stored pinned to
// noon UTC so that reading the instant back under any timezone within
// UTC±12 reconstructs the same calendar date.
const referenceHourUTC = 12

var (
	dayFirstPattern  = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`)
	yearFirstPattern = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
)

// fallbackLayouts are tried, in order, for inputs that match neither
// dash-separated calendar form. Full timestamps are reduced to their
// calendar date.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02/01/2006",
}

// ParseFoundDate converts a client-supplied date string into the canonical
// stored instant: the named calendar date at 12:00:00 UTC.
//
// Accepted forms: DD-MM-YYYY, YYYY-MM-DD (day and month may be 1 or 2
// digits), or a full timestamp. Returns ErrInvalidDateFormat when the input
// matches no recognized pattern, and a wrapped ErrValidation when the
// components name an impossible calendar date (e.g. 31-02-2024).
func ParseFoundDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	switch {
	case dayFirstPattern.MatchString(s):
		parts := strings.Split(s, "-")
		return calendarDate(parts[2], parts[1], parts[0])
	case yearFirstPattern.MatchString(s):
		parts := strings.Split(s, "-")
		return calendarDate(parts[0], parts[1], parts[2])
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeDate(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, s)
}

// calendarDate builds the noon-UTC instant for the given components and
// verifies they round-trip: time.Date normalizes overflow (Feb 31 → Mar 3),
// so re-deriving different components means the input date never existed.
func calendarDate(year, month, day string) (time.Time, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	t := time.Date(y, time.Month(m), d, referenceHourUTC, 0, 0, 0, time.UTC)
	gotY, gotM, gotD := t.Date()
	if gotY != y || gotM != time.Month(m) || gotD != d {
		return time.Time{}, fmt.Errorf("%w: foundDate: no such calendar date %02d-%02d-%04d", domain.ErrValidation, d, m, y)
	}
	return t, nil
}

// NormalizeDate returns t's UTC calendar date pinned to noon UTC.
// Idempotent: normalizing an already-normalized instant is a no-op.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, referenceHourUTC, 0, 0, 0, time.UTC)
}

// DateAfterToday reports whether the stored calendar date of foundDate is
// strictly later than now's calendar date, evaluated in now's location.
func DateAfterToday(foundDate, now time.Time) bool {
	fy, fm, fd := foundDate.UTC().Date()
	ny, nm, nd := now.Date()
	if fy != ny {
		return fy > ny
	}
	if fm != nm {
		return fm > nm
	}
	return fd > nd
}
