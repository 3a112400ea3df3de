package jholiday

// baseResolver applies the catalog to a date span, producing the primary
// holidays (fixed, nth-weekday, equinox) before any derived-holiday
// layering.
type baseResolver struct {
	catalog *Catalog
}

// resolve returns every primary holiday inside span. The span is usually
// the facade's extended working window, not the caller's exact request.
//
// Two different identities resolving to the same date has never happened
// in the 1948-2150 table, but is handled by joining the names with "・"
// rather than overwriting. Policy decision, not a bug.
func (b baseResolver) resolve(span Span) (map[Date]string, error) {
	rules := b.catalog.RulesOverlapping(span)
	est := b.catalog.Estimator()

	primary := make(map[Date]string)
	for _, year := range span.Years() {
		for _, r := range rules {
			d, ok, err := r.Resolve(year, est)
			if err != nil {
				return nil, err
			}
			if !ok || !r.InEffect(d) || !span.Contains(d) {
				continue
			}
			if existing, clash := primary[d]; clash {
				primary[d] = existing + "・" + r.Name
			} else {
				primary[d] = r.Name
			}
		}
	}
	return primary, nil
}
