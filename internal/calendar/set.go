package calendar

import "sort"

// DaySet is a set of calendar dates. Duplicate additions collapse, so callers
// can build one directly from raw storage rows without pre-deduplicating.
type DaySet map[Day]struct{}

// NewDaySet builds a DaySet from the given days.
func NewDaySet(days ...Day) DaySet {
	s := make(DaySet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

// ParseDaySet builds a DaySet from YYYY-MM-DD strings as they come back from
// storage range queries. The first malformed string aborts the parse.
func ParseDaySet(dates []string) (DaySet, error) {
	s := make(DaySet, len(dates))
	for _, raw := range dates {
		d, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		s[d] = struct{}{}
	}
	return s, nil
}

// Add inserts d into the set.
func (s DaySet) Add(d Day) {
	s[d] = struct{}{}
}

// Has reports whether d is in the set.
func (s DaySet) Has(d Day) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of distinct days in the set.
func (s DaySet) Len() int {
	return len(s)
}

// Sorted returns the set's days in ascending calendar order.
func (s DaySet) Sorted() []Day {
	days := make([]Day, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
