/*
jholiday.go - The JHoliday facade

PURPOSE:
  Orchestrates catalog, base resolver, and derived resolver across a
  requested span and exposes the public table-construction entry points.

WORKING WINDOW:
  Derived holidays just inside the span can depend on primary holidays
  just outside it: a substitute's Sunday source can sit up to a Golden
  Week run before the span start, and a citizen's-holiday sandwich needs
  the neighbor one day past the span end. The facade therefore resolves
  over a window extended 7 days back and 2 days forward, then clips the
  result to the exact request. The forward margin is clamped at the
  default maximum (2150-12-31) so a full-domain request never pushes the
  equinox estimator past its last regime.

CONCURRENCY:
  The catalog is immutable shared data; BuildTable is a pure bounded
  computation with no shared mutable state, so concurrent calls need no
  locking.
*/
package jholiday

import (
	"sort"
	"time"
)

// =============================================================================
// PUBLIC CONSTANTS
// =============================================================================

var (
	// ActEffectiveDate is the day the National Holidays Act took effect.
	// No holiday predates it and no span may start before it.
	ActEffectiveDate = actEffective

	// DefaultMaxDate bounds the default span. The Act's provisions (via
	// the last documented equinox regime) reach the end of 2150.
	DefaultMaxDate = NewDate(2150, time.December, 31)
)

// Working-window margins; see the file comment.
const (
	windowBackDays    = 7
	windowForwardDays = 2
)

// =============================================================================
// HOLIDAY TABLE - The final artifact
// =============================================================================

// Holiday is one dated table entry.
type Holiday struct {
	Date Date
	Name string
}

// HolidayTable maps each holiday date in the requested span to its
// display name. Built fresh per request; callers own the returned map.
type HolidayTable map[Date]string

// Sorted returns the table entries in date order.
func (t HolidayTable) Sorted() []Holiday {
	out := make([]Holiday, 0, len(t))
	for d, name := range t {
		out = append(out, Holiday{Date: d, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// =============================================================================
// JHOLIDAY FACADE
// =============================================================================

// JHoliday computes the holiday table for one fixed span. Instances are
// immutable and safe for concurrent use.
type JHoliday struct {
	span    Span
	catalog *Catalog
}

// New constructs a JHoliday over [min, max], both inclusive. A zero min
// defaults to ActEffectiveDate, a zero max to DefaultMaxDate. Fails with
// a RangeError when min > max or either bound predates the Act.
func New(min, max Date) (*JHoliday, error) {
	if min.IsZero() {
		min = ActEffectiveDate
	}
	if max.IsZero() {
		max = DefaultMaxDate
	}
	switch {
	case max.Before(min):
		return nil, &RangeError{Min: min, Max: max, Reason: "min after max"}
	case min.Before(ActEffectiveDate):
		return nil, &RangeError{Min: min, Max: max, Reason: "starts before the Act's effective date " + ActEffectiveDate.String()}
	}
	return &JHoliday{span: Span{Min: min, Max: max}, catalog: NewCatalog()}, nil
}

// NewYears constructs a JHoliday covering whole calendar years, from
// January 1 of minYear through December 31 of maxYear. Note minYear 1948
// is invalid: the Act took effect mid-year, so the 1948 tail is only
// reachable through New(ActEffectiveDate, ...).
func NewYears(minYear, maxYear int) (*JHoliday, error) {
	return New(
		NewDate(minYear, time.January, 1),
		NewDate(maxYear, time.December, 31),
	)
}

// Span returns the requested span.
func (j *JHoliday) Span() Span { return j.span }

// Catalog returns the rule catalog the table is built from.
func (j *JHoliday) Catalog() *Catalog { return j.catalog }

// BuildTable computes the full date → name mapping for the span:
// primary holidays from the catalog, then substitute and citizen's
// holidays, clipped to the exact request. Idempotent; either the whole
// table is produced or an error is returned, never a partial result.
func (j *JHoliday) BuildTable() (HolidayTable, error) {
	window := j.span.Extend(windowBackDays, windowForwardDays)
	if window.Max.After(DefaultMaxDate) && !j.span.Max.After(DefaultMaxDate) {
		window.Max = DefaultMaxDate
	}

	primary, err := baseResolver{catalog: j.catalog}.resolve(window)
	if err != nil {
		return nil, err
	}
	derived := newDerivedResolver().resolve(primary)

	table := make(HolidayTable)
	for d, name := range primary {
		if j.span.Contains(d) {
			table[d] = name
		}
	}
	for d, name := range derived {
		if j.span.Contains(d) {
			table[d] = name
		}
	}
	return table, nil
}
