/*
Package jholiday computes Japanese national holidays for arbitrary date spans.

PURPOSE:
  This package contains the rule-resolution engine for the National Holidays
  Act (国民の祝日に関する法律, effective 1948-07-23) and all of its amendments.
  Given a span of civil dates it produces the complete date → holiday-name
  mapping, including legally mandated substitute holidays (振替休日) and
  citizen's holidays (国民の休日).

KEY CONCEPTS:
  - Date:      A comparable civil calendar date, the shared key type
  - Span:      An inclusive [Min, Max] date range
  - Rule:      One validity-scoped version of one holiday's definition
  - Catalog:   The full amendment history of the Act as immutable rule rows
  - JHoliday:  The facade that builds a HolidayTable for a requested span

DESIGN PRINCIPLES:
  1. Immutability: rule rows are never mutated; amendments are new rows
  2. Auditability: the Act's legal history is legible from the data itself
  3. Determinism:  resolution is a pure, bounded computation per span

USAGE:
  jh, err := jholiday.NewYears(2018, 2020)
  if err != nil { ... }
  table, err := jh.BuildTable()
  name := table[jholiday.NewDate(2020, time.July, 24)] // "スポーツの日"

SEE ALSO:
  - rule.go:    Rule versions and validity intervals
  - catalog.go: The hard-coded amendment table
  - derived.go: Substitute and citizen's holiday layering
*/
package jholiday

import "time"

// =============================================================================
// DATE - Civil calendar date (proleptic Gregorian)
// =============================================================================

// Date is a civil calendar date without time-of-day or timezone.
// It is comparable and usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date. Out-of-range components are normalized the
// same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateOf extracts the civil date from a time.Time, ignoring time-of-day
// and location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Comparison
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d == other }

// Compare returns -1, 0, or +1 ordering d against other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether d is the zero Date. The zero value is used as
// the open end of a validity interval.
func (d Date) IsZero() bool { return d == Date{} }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// IsSunday reports whether the date falls on a Sunday. Sunday is the
// Act's original "free day" for the substitute-holiday provision.
func (d Date) IsSunday() bool { return d.Weekday() == time.Sunday }

func (d Date) String() string { return d.Time().Format("2006-01-02") }

// =============================================================================
// SPAN - Inclusive date range
// =============================================================================

// Span is an inclusive [Min, Max] range of dates.
type Span struct {
	Min Date
	Max Date
}

// Contains reports whether d lies within the span.
func (s Span) Contains(d Date) bool {
	return !d.Before(s.Min) && !d.After(s.Max)
}

// Years returns every calendar year the span touches, in order.
func (s Span) Years() []int {
	years := make([]int, 0, s.Max.Year-s.Min.Year+1)
	for y := s.Min.Year; y <= s.Max.Year; y++ {
		years = append(years, y)
	}
	return years
}

// Extend widens the span by the given number of days on each side.
func (s Span) Extend(before, after int) Span {
	return Span{Min: s.Min.AddDays(-before), Max: s.Max.AddDays(after)}
}

func (s Span) String() string {
	return "[" + s.Min.String() + ", " + s.Max.String() + "]"
}
