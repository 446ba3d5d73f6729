package core

import (
	"time"
)

// Date is a calendar day with no time-of-day component. Transactions carry
// dates, not timestamps.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO "2006-01-02" date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, Validationf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// String returns the ISO form, which is also the stored form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return Validationf("date is required")
	}
	return nil
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// Period is a budget month: a (month, year) pair.
type Period struct {
	Month int // 1-12
	Year  int
}

// PeriodOf returns the period containing the given instant.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return Validationf("month %d out of range 1-12", p.Month)
	}
	if p.Year < 1 {
		return Validationf("year %d out of range", p.Year)
	}
	return nil
}

// Range returns the half-open date interval [first day, first day of next
// month) covering the period. December rolls into January of the next year.
func (p Period) Range() (start, end Date) {
	start = NewDate(p.Year, p.Month, 1)
	if p.Month == 12 {
		end = NewDate(p.Year+1, 1, 1)
	} else {
		end = NewDate(p.Year, p.Month+1, 1)
	}
	return start, end
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(d Date) bool {
	start, end := p.Range()
	return !d.Before(start) && d.Before(end)
}
