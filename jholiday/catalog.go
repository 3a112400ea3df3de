/*
catalog.go - The hard-coded amendment history of the Act

PURPOSE:
  Encodes every amendment to the National Holidays Act since 1948 as
  immutable, validity-scoped rule rows. The table IS the legal history:
  a renamed, moved, or retired holiday appears as adjacent rows whose
  intervals meet end-to-start, so the full audit trail is readable from
  the data without consulting prose.

AMENDMENT TIMELINE (row From/Until bounds below):
  1948-07-23  Act effective; initial nine holidays
  1966-06-25  敬老の日, 体育の日 added
  1966-12-09  建国記念の日 date fixed at 02-11
  1989-02-17  天皇誕生日 04-29 → 12-23; みどりの日 keeps 04-29
  1996-01-01  海の日 added at 07-20
  2000-01-01  Happy Monday I: 成人の日, 体育の日 → nth Monday
  2003-01-01  Happy Monday II: 海の日, 敬老の日 → nth Monday
  2007-01-01  みどりの日 → 05-04; 昭和の日 keeps 04-29
  2016-01-01  山の日 added at 08-11
  2019-05-01  天皇誕生日 12-23 → 02-23 (imperial succession)
  2020-01-01  体育の日 renamed スポーツの日
  2020 / 2021 Olympic special measures: one-year relocations of 海の日,
              スポーツの日, 山の日
  plus six one-time imperial ceremony holidays (1959-2019)

  The 1973 substitute-holiday and 1985 citizen's-holiday provisions are
  derived rules, not base rows; see derived.go.

SEE ALSO:
  - rule.go:    Row semantics (InEffect, Resolve, ActiveOn)
  - base.go:    Applies the table to a span
*/
package jholiday

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// AMENDMENT EFFECTIVE DATES
// =============================================================================

var (
	actEffective    = NewDate(1948, time.July, 23)
	foundationFixed = NewDate(1966, time.December, 9)
	amend1966       = NewDate(1966, time.June, 25)
	amend1989       = NewDate(1989, time.February, 17)
	amend1996       = NewDate(1996, time.January, 1)
	happyMonday1    = NewDate(2000, time.January, 1)
	happyMonday2    = NewDate(2003, time.January, 1)
	amend2007       = NewDate(2007, time.January, 1)
	amend2016       = NewDate(2016, time.January, 1)
	succession2019  = NewDate(2019, time.May, 1)
	rename2020      = NewDate(2020, time.January, 1)
	olympics2021    = NewDate(2021, time.January, 1)
	olympicsEnd     = NewDate(2022, time.January, 1)
)

// open marks a rule version still in force.
var open = Date{}

// catalogRows is the full amendment table, ordered by effective-from date.
// Rows are never mutated; amendments append new rows.
var catalogRows = []Rule{
	// 1948: the initial nine holidays.
	fixed("new-years-day", "元日", time.January, 1, actEffective, open),
	fixed("coming-of-age-day", "成人の日", time.January, 15, actEffective, happyMonday1),
	equinox("vernal-equinox-day", "春分の日", Vernal, actEffective, open),
	fixed("emperors-birthday", "天皇誕生日", time.April, 29, actEffective, amend1989),
	fixed("constitution-memorial-day", "憲法記念日", time.May, 3, actEffective, open),
	fixed("childrens-day", "こどもの日", time.May, 5, actEffective, open),
	equinox("autumnal-equinox-day", "秋分の日", Autumnal, actEffective, open),
	fixed("culture-day", "文化の日", time.November, 3, actEffective, open),
	fixed("labor-thanksgiving-day", "勤労感謝の日", time.November, 23, actEffective, open),

	// One-time imperial ceremony holidays, each its own single-year law.
	oneOff("akihito-wedding-1959", "皇太子明仁親王の結婚の儀", 1959, time.April, 10),
	oneOff("showa-emperor-funeral-1989", "昭和天皇の大喪の礼", 1989, time.February, 24),
	oneOff("enthronement-ceremony-1990", "即位礼正殿の儀", 1990, time.November, 12),
	oneOff("naruhito-wedding-1993", "皇太子徳仁親王の結婚の儀", 1993, time.June, 9),
	oneOff("accession-day-2019", "即位の日", 2019, time.May, 1),
	oneOff("enthronement-ceremony-2019", "即位礼正殿の儀", 2019, time.October, 22),

	// 1966: two additions, plus 建国記念の日 whose date was fixed by a
	// separate order later that year (its 1967 debut falls out of the
	// validity check, not a special case).
	fixed("respect-for-the-aged-day", "敬老の日", time.September, 15, amend1966, happyMonday2),
	fixed("health-sports-day", "体育の日", time.October, 10, amend1966, happyMonday1),
	fixed("national-foundation-day", "建国記念の日", time.February, 11, foundationFixed, open),

	// 1989: imperial succession. The vacated 04-29 stays a holiday.
	fixed("emperors-birthday", "天皇誕生日", time.December, 23, amend1989, succession2019),
	fixed("greenery-day", "みどりの日", time.April, 29, amend1989, amend2007),

	// 1996: 海の日.
	fixed("marine-day", "海の日", time.July, 20, amend1996, happyMonday2),

	// 2000/2003: the Happy Monday reforms.
	nthMonday("coming-of-age-day", "成人の日", time.January, 2, happyMonday1, open),
	nthMonday("health-sports-day", "体育の日", time.October, 2, happyMonday1, rename2020),
	nthMonday("marine-day", "海の日", time.July, 3, happyMonday2, rename2020),
	nthMonday("respect-for-the-aged-day", "敬老の日", time.September, 3, happyMonday2, open),

	// 2007: みどりの日 moves onto 05-04; the vacated 04-29 stays a holiday.
	fixed("greenery-day", "みどりの日", time.May, 4, amend2007, open),
	fixed("showa-day", "昭和の日", time.April, 29, amend2007, open),

	// 2016: 山の日.
	fixed("mountain-day", "山の日", time.August, 11, amend2016, rename2020),

	// 2019: 天皇誕生日 moves to 02-23. No birthday holiday fell in 2019 at
	// all: 02-23 passed before the succession, 12-23 after it.
	fixed("emperors-birthday", "天皇誕生日", time.February, 23, succession2019, open),

	// 2020/2021: Olympic special measures. Each relocation is a one-year
	// Fixed row; the regular patterns resume in 2022.
	fixed("sports-day", "スポーツの日", time.July, 24, rename2020, olympics2021),
	fixed("marine-day", "海の日", time.July, 23, rename2020, olympics2021),
	fixed("mountain-day", "山の日", time.August, 10, rename2020, olympics2021),
	fixed("sports-day", "スポーツの日", time.July, 23, olympics2021, olympicsEnd),
	fixed("marine-day", "海の日", time.July, 22, olympics2021, olympicsEnd),
	fixed("mountain-day", "山の日", time.August, 8, olympics2021, olympicsEnd),
	nthMonday("sports-day", "スポーツの日", time.October, 2, olympicsEnd, open),
	nthMonday("marine-day", "海の日", time.July, 3, olympicsEnd, open),
	fixed("mountain-day", "山の日", time.August, 11, olympicsEnd, open),
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is the ordered collection of holiday rule versions. It is
// immutable after construction and safe for unsynchronized concurrent
// reads.
type Catalog struct {
	rules []Rule
	est   Estimator
}

// NewCatalog returns the built-in catalog with the default equinox
// estimator.
func NewCatalog() *Catalog {
	return NewCatalogWithEstimator(NewEstimator())
}

// NewCatalogWithEstimator returns the built-in catalog resolving equinox
// rows through est.
func NewCatalogWithEstimator(est Estimator) *Catalog {
	return &Catalog{rules: catalogRows, est: est}
}

// Estimator returns the equinox estimator the catalog resolves with.
func (c *Catalog) Estimator() Estimator { return c.est }

// Rules returns a copy of every rule version, in amendment order.
// This is the reviewable audit surface of the Act's history.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// ActiveRules returns the rule versions that designate d as a holiday.
// At most one version per identity can be active on any date.
func (c *Catalog) ActiveRules(d Date) ([]Rule, error) {
	var active []Rule
	for _, r := range c.rules {
		ok, err := r.ActiveOn(d, c.est)
		if err != nil {
			return nil, err
		}
		if ok {
			active = append(active, r)
		}
	}
	return active, nil
}

// RulesOverlapping returns the rule versions whose validity interval
// intersects the span.
func (c *Catalog) RulesOverlapping(s Span) []Rule {
	var out []Rule
	for _, r := range c.rules {
		if r.Overlaps(s) {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks the catalog invariant: for each identity, validity
// intervals must be contiguous and non-overlapping in chronological
// order. The built-in table is checked by tests; custom tables built for
// experiments can be checked the same way.
func (c *Catalog) Validate() error {
	byIdentity := make(map[string][]Rule)
	for _, r := range c.rules {
		byIdentity[r.Identity] = append(byIdentity[r.Identity], r)
	}
	for identity, versions := range byIdentity {
		sort.Slice(versions, func(i, j int) bool {
			return versions[i].From.Before(versions[j].From)
		})
		for i := 0; i < len(versions)-1; i++ {
			cur, next := versions[i], versions[i+1]
			if cur.Until.IsZero() {
				return fmt.Errorf("catalog: %s version from %s is open-ended but followed by a version from %s",
					identity, cur.From, next.From)
			}
			if cur.Until != next.From {
				return fmt.Errorf("catalog: %s versions not contiguous: [%s, %s) then [%s, ...)",
					identity, cur.From, cur.Until, next.From)
			}
		}
	}
	return nil
}
