package jholiday

import (
	"testing"
	"time"
)

// buildPrimary is a helper to hand-construct a primary set.
func buildPrimary(entries map[Date]string) map[Date]string {
	out := make(map[Date]string, len(entries))
	for d, n := range entries {
		out[d] = n
	}
	return out
}

func TestSubstitute_NotBefore1973(t *testing.T) {
	// GIVEN: 建国記念の日 1973-02-11 fell on a Sunday, two months BEFORE the
	// substitute provision took effect on 1973-04-12
	primary := buildPrimary(map[Date]string{
		NewDate(1973, time.February, 11): "建国記念の日",
	})

	// WHEN: derived rules are applied
	derived := newDerivedResolver().resolve(primary)

	// THEN: no substitute appears
	if len(derived) != 0 {
		t.Errorf("expected no derived holidays before 1973-04-12, got %v", derived)
	}
}

func TestSubstitute_SingleStep_Pre2007(t *testing.T) {
	// GIVEN: 天皇誕生日 1973-04-29, a Sunday, after the provision took effect
	primary := buildPrimary(map[Date]string{
		NewDate(1973, time.April, 29): "天皇誕生日",
	})

	derived := newDerivedResolver().resolve(primary)

	// THEN: exactly one substitute on the following Monday (the first
	// substitute holiday in history)
	want := NewDate(1973, time.April, 30)
	if derived[want] != SubstituteHolidayName {
		t.Errorf("expected %s on %s, got %v", SubstituteHolidayName, want, derived)
	}
	if len(derived) != 1 {
		t.Errorf("expected exactly one derived holiday, got %v", derived)
	}
}

func TestSubstitute_Pre2007_BlockedByNextDayHoliday(t *testing.T) {
	// The pre-2007 law moved the rest day to the next day only. If that
	// day was itself a holiday, no substitute appeared at all.
	sunday := NewDate(1993, time.May, 2) // hypothetical Sunday holiday
	if !sunday.IsSunday() {
		t.Fatalf("%s is not a Sunday", sunday)
	}
	primary := buildPrimary(map[Date]string{
		sunday:                     "テスト休日",
		NewDate(1993, time.May, 3): "憲法記念日",
	})

	derived := newDerivedResolver().resolve(primary)

	for d := range derived {
		if derived[d] == SubstituteHolidayName {
			t.Errorf("pre-2007 rule must not walk past an occupied day, got substitute on %s", d)
		}
	}
}

func TestSubstitute_WalksForward_Post2007(t *testing.T) {
	// GIVEN: Golden Week 2009 — 憲法記念日 on Sunday 05-03 followed by
	// みどりの日 and こどもの日
	primary := buildPrimary(map[Date]string{
		NewDate(2009, time.May, 3): "憲法記念日",
		NewDate(2009, time.May, 4): "みどりの日",
		NewDate(2009, time.May, 5): "こどもの日",
	})

	derived := newDerivedResolver().resolve(primary)

	// THEN: the substitute walks past both holidays to 05-06
	want := NewDate(2009, time.May, 6)
	if derived[want] != SubstituteHolidayName {
		t.Errorf("expected walking substitute on %s, got %v", want, derived)
	}
}

func TestSubstitute_WalksPastEarlierSubstitute(t *testing.T) {
	// Two consecutive Sunday-ish sources: the second walk must also skip
	// a substitute created by the first pass iteration.
	sun := NewDate(2020, time.September, 20) // Sunday
	if !sun.IsSunday() {
		t.Fatalf("%s is not a Sunday", sun)
	}
	primary := buildPrimary(map[Date]string{
		sun:            "テスト休日A",
		sun.AddDays(1): "テスト休日B", // Monday also a holiday
	})

	derived := newDerivedResolver().resolve(primary)

	// Walk from Sunday skips Monday (primary) and lands on Tuesday.
	want := sun.AddDays(2)
	if derived[want] != SubstituteHolidayName {
		t.Errorf("expected substitute on %s, got %v", want, derived)
	}
}

func TestCitizens_GapDay(t *testing.T) {
	// GIVEN: the first citizen's holiday in history, 1988-05-04, a
	// Wednesday between 憲法記念日 and こどもの日
	primary := buildPrimary(map[Date]string{
		NewDate(1988, time.May, 3): "憲法記念日",
		NewDate(1988, time.May, 5): "こどもの日",
	})

	derived := newDerivedResolver().resolve(primary)

	want := NewDate(1988, time.May, 4)
	if derived[want] != CitizensHolidayName {
		t.Errorf("expected %s on %s, got %v", CitizensHolidayName, want, derived)
	}
}

func TestCitizens_NotBefore1985(t *testing.T) {
	// Same sandwich shape in 1984, before the provision existed.
	primary := buildPrimary(map[Date]string{
		NewDate(1984, time.May, 3): "憲法記念日",
		NewDate(1984, time.May, 5): "こどもの日",
	})

	derived := newDerivedResolver().resolve(primary)

	if _, ok := derived[NewDate(1984, time.May, 4)]; ok {
		t.Error("citizen's holiday must not appear before 1985-12-27")
	}
}

func TestCitizens_SundayExcluded(t *testing.T) {
	// 1986-05-04 was a Sunday: the sandwich matches but Sundays are
	// excluded from the citizen's rule.
	gap := NewDate(1986, time.May, 4)
	if !gap.IsSunday() {
		t.Fatalf("%s is not a Sunday", gap)
	}
	primary := buildPrimary(map[Date]string{
		gap.AddDays(-1): "憲法記念日",
		gap.AddDays(1):  "こどもの日",
	})

	derived := newDerivedResolver().resolve(primary)

	if _, ok := derived[gap]; ok {
		t.Errorf("Sunday gap day must not become %s", CitizensHolidayName)
	}
}

func TestCitizens_SubstituteTakesPrecedence(t *testing.T) {
	// GIVEN: 1992 — 憲法記念日 on Sunday 05-03. The substitute pass claims
	// 05-04; the citizen's pass must not relabel it even though 05-04 is
	// also sandwiched once みどりの日 does not exist yet on 05-04.
	primary := buildPrimary(map[Date]string{
		NewDate(1992, time.May, 3): "憲法記念日",
		NewDate(1992, time.May, 5): "こどもの日",
	})

	derived := newDerivedResolver().resolve(primary)

	got := derived[NewDate(1992, time.May, 4)]
	if got != SubstituteHolidayName {
		t.Errorf("1992-05-04 = %q, want %q (substitute pass runs first)", got, SubstituteHolidayName)
	}
}
