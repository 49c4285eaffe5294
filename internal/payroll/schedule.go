// Package payroll holds the semi-monthly pay-period calendar math.
// Persistence and the duplicate-year guard live in the repository; this
// package only decides what a year's periods look like.
package payroll

import (
	"fmt"
	"time"
)

const (
	periodsPerMonth = 2
	// PeriodsPerYear is the number of semi-monthly periods in a calendar year.
	PeriodsPerYear = 12 * periodsPerMonth

	firstHalfEndDay     = 15
	secondHalfStartDay  = 16
	labelFirstHalfFmt   = "%s 1–15, %d"
	labelSecondHalfFmt  = "%s 16–%d, %d"
	dateFmt             = "%04d-%02d-%02d"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// PeriodSpec is one generated period before it is assigned a store id.
type PeriodSpec struct {
	Number    int
	StartDate string
	EndDate   string
	Label     string
}

// GenerateYear produces the 24 semi-monthly periods for a calendar year:
// day 1–15 and day 16–end of month, with month length and leap years taken
// from the calendar. Numbers run sequentially from firstNumber so periods
// accumulate monotonically increasing numbers across years.
func GenerateYear(year, firstNumber int) []PeriodSpec {
	specs := make([]PeriodSpec, 0, PeriodsPerYear)
	number := firstNumber

	for m := time.January; m <= time.December; m++ {
		lastDay := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
		name := monthNames[m-1]

		specs = append(specs, PeriodSpec{
			Number:    number,
			StartDate: fmt.Sprintf(dateFmt, year, m, 1),
			EndDate:   fmt.Sprintf(dateFmt, year, m, firstHalfEndDay),
			Label:     fmt.Sprintf(labelFirstHalfFmt, name, year),
		})
		number++

		specs = append(specs, PeriodSpec{
			Number:    number,
			StartDate: fmt.Sprintf(dateFmt, year, m, secondHalfStartDay),
			EndDate:   fmt.Sprintf(dateFmt, year, m, lastDay),
			Label:     fmt.Sprintf(labelSecondHalfFmt, name, lastDay, year),
		})
		number++
	}

	return specs
}

// ForDate returns the period whose inclusive range contains the ISO date,
// or nil if none does. ISO dates compare lexicographically.
func ForDate(specs []PeriodSpec, date string) *PeriodSpec {
	for i := range specs {
		if specs[i].StartDate <= date && date <= specs[i].EndDate {
			return &specs[i]
		}
	}
	return nil
}
