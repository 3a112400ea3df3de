/*
rule.go - Validity-scoped holiday rule versions

PURPOSE:
  A Rule is ONE version of ONE holiday's legal definition. Every amendment
  to the Act is modeled as a new Rule row with its own validity interval,
  never as a mutation of an existing row. A holiday's entire history is the
  ordered sequence of its rows sharing the same Identity.

RULE KINDS:
  Fixed:      constant (month, day), e.g. 憲法記念日 on 05-03
  NthWeekday: (month, weekday, ordinal), e.g. 成人の日 on the 2nd Monday of
              January under the Happy Monday reform
  Equinox:    astronomically derived via an Estimator

VALIDITY:
  [From, Until) - From inclusive, Until exclusive. A zero Until means the
  rule is still in force. A row only produces a holiday when the RESOLVED
  date lies inside the interval; this is what keeps 建国記念の日 (effective
  1966-12-09) from appearing on 1966-02-11, and one-off relocations are
  simply rows with a one-year interval.

SEE ALSO:
  - catalog.go: The full hard-coded rule table
  - derived.go: DerivedRule, the same scoping for substitute/citizen's rules
*/
package jholiday

import "time"

// =============================================================================
// RULE KINDS
// =============================================================================

// RuleKind discriminates how a rule version resolves to a concrete date.
type RuleKind int

const (
	KindFixed RuleKind = iota
	KindNthWeekday
	KindEquinox
)

func (k RuleKind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindNthWeekday:
		return "nth_weekday"
	case KindEquinox:
		return "equinox"
	default:
		return "unknown"
	}
}

// =============================================================================
// RULE - One version of one holiday's definition
// =============================================================================

// Rule is a single immutable version of a holiday definition.
// Exactly one of the kind-specific field groups is meaningful, selected
// by Kind.
type Rule struct {
	// Identity is the stable internal key for the holiday across renames.
	// Display names change (体育の日 → スポーツの日 is a separate identity by
	// the Act's own numbering; 天皇誕生日 keeps its identity across date
	// moves); Identity is what the contiguity invariant is checked against.
	Identity string

	// Name is the display name in force during this version.
	Name string

	Kind RuleKind

	// Fixed
	Month time.Month
	Day   int

	// NthWeekday (Month shared with Fixed)
	Weekday time.Weekday
	Ordinal int

	// Equinox
	Season Season

	// Validity interval [From, Until). Zero Until = still in force.
	From  Date
	Until Date
}

// InEffect reports whether the rule version is legally in force on d.
func (r Rule) InEffect(d Date) bool {
	if d.Before(r.From) {
		return false
	}
	return r.Until.IsZero() || d.Before(r.Until)
}

// Overlaps reports whether the validity interval intersects the span.
func (r Rule) Overlaps(s Span) bool {
	if !r.Until.IsZero() && !s.Min.Before(r.Until) {
		return false
	}
	return !s.Max.Before(r.From)
}

// Resolve computes the concrete date this rule designates in the given
// year. ok is false when the pattern has no occurrence that year (an
// ordinal past the end of the month). Equinox rows delegate to est.
func (r Rule) Resolve(year int, est Estimator) (d Date, ok bool, err error) {
	switch r.Kind {
	case KindFixed:
		return NewDate(year, r.Month, r.Day), true, nil

	case KindNthWeekday:
		first := NewDate(year, r.Month, 1)
		offset := (int(r.Weekday) - int(first.Weekday()) + 7) % 7
		day := 1 + offset + 7*(r.Ordinal-1)
		d := NewDate(year, r.Month, day)
		if d.Month != r.Month {
			return Date{}, false, nil
		}
		return d, true, nil

	case KindEquinox:
		d, err := est.Estimate(year, r.Season)
		if err != nil {
			return Date{}, false, err
		}
		return d, true, nil

	default:
		return Date{}, false, nil
	}
}

// ActiveOn reports whether this rule version designates d as a holiday:
// the resolved date for d's year must equal d AND d must fall inside the
// validity interval. The two-sided check guards against patterns that
// would match before the provision took effect or after it lapsed.
func (r Rule) ActiveOn(d Date, est Estimator) (bool, error) {
	if !r.InEffect(d) {
		return false, nil
	}
	resolved, ok, err := r.Resolve(d.Year, est)
	if err != nil {
		return false, err
	}
	return ok && resolved == d, nil
}

// =============================================================================
// RULE CONSTRUCTORS - Keep the catalog table terse
// =============================================================================

func fixed(identity, name string, month time.Month, day int, from, until Date) Rule {
	return Rule{Identity: identity, Name: name, Kind: KindFixed,
		Month: month, Day: day, From: from, Until: until}
}

func nthMonday(identity, name string, month time.Month, ordinal int, from, until Date) Rule {
	return Rule{Identity: identity, Name: name, Kind: KindNthWeekday,
		Month: month, Weekday: time.Monday, Ordinal: ordinal, From: from, Until: until}
}

func equinox(identity, name string, season Season, from, until Date) Rule {
	return Rule{Identity: identity, Name: name, Kind: KindEquinox,
		Season: season, From: from, Until: until}
}

// oneOff is a holiday observed in a single named year: a Fixed row whose
// validity covers exactly that calendar year.
func oneOff(identity, name string, year int, month time.Month, day int) Rule {
	return fixed(identity, name, month, day,
		NewDate(year, time.January, 1), NewDate(year+1, time.January, 1))
}
