/*
derived.go - Substitute and citizen's holiday layering

PURPOSE:
  The Act grants two kinds of derived holidays ("休日" in the law's own
  wording, as opposed to "祝日") on top of the primary set:

  振替休日 (substitute holiday), since 1973-04-12:
    A holiday falling on Sunday moves a day of rest to the next day.
    The 2007 reform generalized the target to the nearest following day
    that is not itself a holiday, which is what lets Golden Week push a
    substitute as far as 05-06.

  国民の休日 (citizen's holiday), since 1985-12-27:
    A lone non-holiday weekday squeezed between two holidays becomes a
    holiday itself. Never a Sunday (Sundays are the substitute rule's
    business) and never a day the substitute pass already claimed.

  Both provisions are validity-scoped exactly like base rules: each pass
  consults the version in force AT THE DATE BEING EVALUATED, never the
  present-day law. This is what makes historical reconstruction correct:
  a Sunday holiday in 1970 produces nothing, one in 1990 produces a
  single-step substitute, one in 2010 produces a walking substitute.

ALGORITHM:
  Two ordered passes over the extended working window, substitute first,
  then citizen's. The fixed pass order (instead of recursive
  re-evaluation) guarantees termination and determinism when derived
  holidays interact inside the same short window.

SEE ALSO:
  - base.go:     Produces the primary set this layers onto
  - jholiday.go: Sizes the working window and clips the result
*/
package jholiday

import (
	"sort"
	"time"
)

// Display names for derived holidays. The law itself only says 休日;
// these are the universally used common names.
const (
	SubstituteHolidayName = "振替休日"
	CitizensHolidayName   = "国民の休日"
)

// =============================================================================
// DERIVED RULES - Validity-scoped provisions
// =============================================================================

// DerivedKind discriminates the two derived-holiday provisions.
type DerivedKind int

const (
	KindSubstitute DerivedKind = iota
	KindCitizens
)

// DerivedRule is one version of a derived-holiday provision.
type DerivedRule struct {
	Kind DerivedKind

	// WalkForward selects the 2007 substitute semantics: walk day by day
	// past any holiday instead of checking only the immediate next day.
	WalkForward bool

	// Validity interval [From, Until). Zero Until = still in force.
	From  Date
	Until Date
}

// InEffect reports whether the provision version is in force on d.
func (r DerivedRule) InEffect(d Date) bool {
	if d.Before(r.From) {
		return false
	}
	return r.Until.IsZero() || d.Before(r.Until)
}

var (
	substitute1973 = NewDate(1973, time.April, 12)
	citizens1985   = NewDate(1985, time.December, 27)
)

// derivedRules models the amendment history of the derived provisions,
// same row discipline as the base catalog.
var derivedRules = []DerivedRule{
	{Kind: KindSubstitute, WalkForward: false, From: substitute1973, Until: amend2007},
	{Kind: KindSubstitute, WalkForward: true, From: amend2007, Until: open},
	{Kind: KindCitizens, From: citizens1985, Until: open},
}

// DerivedRules returns a copy of the derived-provision table, for the
// same audit purposes as Catalog.Rules.
func DerivedRules() []DerivedRule {
	out := make([]DerivedRule, len(derivedRules))
	copy(out, derivedRules)
	return out
}

// =============================================================================
// DERIVED RESOLVER
// =============================================================================

// derivedResolver layers substitute and citizen's holidays onto a
// primary set. Additive only: it never removes or renames a primary
// entry.
type derivedResolver struct {
	rules []DerivedRule
}

func newDerivedResolver() derivedResolver {
	return derivedResolver{rules: derivedRules}
}

// substituteRuleAt returns the substitute provision in force when the
// source holiday falls, or ok=false before 1973.
func (dr derivedResolver) substituteRuleAt(d Date) (DerivedRule, bool) {
	for _, r := range dr.rules {
		if r.Kind == KindSubstitute && r.InEffect(d) {
			return r, true
		}
	}
	return DerivedRule{}, false
}

func (dr derivedResolver) citizensRuleAt(d Date) (DerivedRule, bool) {
	for _, r := range dr.rules {
		if r.Kind == KindCitizens && r.InEffect(d) {
			return r, true
		}
	}
	return DerivedRule{}, false
}

// resolve returns the derived holidays for the primary set. Iteration is
// over the sorted primary dates, so consecutive holiday runs are handled
// in calendar order and the result is deterministic.
func (dr derivedResolver) resolve(primary map[Date]string) map[Date]string {
	dates := make([]Date, 0, len(primary))
	for d := range primary {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	derived := make(map[Date]string)

	// Pass 1: substitute holidays. The free-day condition and the target
	// semantics both come from the version in force at the SOURCE date.
	for _, h := range dates {
		if !h.IsSunday() {
			continue
		}
		rule, ok := dr.substituteRuleAt(h)
		if !ok {
			continue
		}

		target := h.AddDays(1)
		if rule.WalkForward {
			for dr.isMarked(target, primary, derived) {
				target = target.AddDays(1)
			}
		} else if dr.isMarked(target, primary, derived) {
			// Pre-2007 law moved the rest day to the next day only; a
			// next day already occupied means no substitute at all.
			continue
		}
		derived[target] = SubstituteHolidayName
	}

	// Pass 2: citizen's holidays. Both neighbors must be PRIMARY
	// holidays; substitutes do not qualify as sandwich sides under the
	// law. A gap day the substitute pass already claimed stays a
	// substitute holiday.
	for _, h := range dates {
		gap := h.AddDays(1)
		if _, sandwich := primary[h.AddDays(2)]; !sandwich {
			continue
		}
		if dr.isMarked(gap, primary, derived) || gap.IsSunday() {
			continue
		}
		if _, ok := dr.citizensRuleAt(gap); !ok {
			continue
		}
		derived[gap] = CitizensHolidayName
	}

	return derived
}

func (dr derivedResolver) isMarked(d Date, primary, derived map[Date]string) bool {
	if _, ok := primary[d]; ok {
		return true
	}
	_, ok := derived[d]
	return ok
}
