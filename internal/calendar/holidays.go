// Package calendar computes the observed US federal holiday calendar used
// by the ride calendar grid. Pure date arithmetic, no state.
package calendar

import (
	"strings"
	"time"
)

// Holiday is an observed holiday date with its display name
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD, the observed date
	Name string `json:"name"`
}

const dateLayout = "2006-01-02"

// HolidaysForYear returns the 11 US federal holidays for a year on their
// observed dates. Fixed-date holidays shift off weekends (Saturday to the
// preceding Friday, Sunday to the following Monday); nth-weekday holidays
// never need a shift. Inauguration Day is deliberately not included.
func HolidaysForYear(year int) []Holiday {
	return []Holiday{
		{observedFixed(year, time.January, 1), "New Year's Day"},
		{nthWeekday(year, time.January, time.Monday, 3), "Martin Luther King Jr. Day"},
		{nthWeekday(year, time.February, time.Monday, 3), "Washington's Birthday"},
		{lastWeekday(year, time.May, time.Monday), "Memorial Day"},
		{observedFixed(year, time.June, 19), "Juneteenth"},
		{observedFixed(year, time.July, 4), "Independence Day"},
		{nthWeekday(year, time.September, time.Monday, 1), "Labor Day"},
		{nthWeekday(year, time.October, time.Monday, 2), "Columbus Day"},
		{observedFixed(year, time.November, 11), "Veterans Day"},
		{nthWeekday(year, time.November, time.Thursday, 4), "Thanksgiving Day"},
		{observedFixed(year, time.December, 25), "Christmas Day"},
	}
}

// FilterByMonth narrows holidays to those whose observed date falls in the
// given YYYY-MM month. The caller validates the month format.
func FilterByMonth(holidays []Holiday, month string) []Holiday {
	filtered := make([]Holiday, 0, 2)
	for _, h := range holidays {
		if strings.HasPrefix(h.Date, month+"-") {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// HolidaysForMonth is the common lookup: the year's holidays observed
// within one month. New Year's Day observed on Dec 31 of the prior year is
// picked up by computing the following year too.
func HolidaysForMonth(month string) []Holiday {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return nil
	}
	year := t.Year()
	holidays := HolidaysForYear(year)
	if t.Month() == time.December {
		// Next year's New Year's Day may be observed on Dec 31.
		holidays = append(holidays, HolidaysForYear(year+1)...)
	}
	return FilterByMonth(holidays, month)
}

// observedFixed returns the observed date of a fixed-date holiday,
// shifted off weekends per the federal rule.
func observedFixed(year int, month time.Month, day int) string {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDate(0, 0, -1)
	case time.Sunday:
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(dateLayout)
}

// nthWeekday returns the date of the nth occurrence of a weekday in a month
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	d := first.AddDate(0, 0, offset+(n-1)*7)
	return d.Format(dateLayout)
}

// lastWeekday returns the date of the final occurrence of a weekday in a month
func lastWeekday(year int, month time.Month, weekday time.Weekday) string {
	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset).Format(dateLayout)
}
