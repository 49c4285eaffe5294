package timesheet

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerHour    = 60
	minutesPerQuarter = 15
	hoursPerQuarter   = 0.25

	// Billing convention: a partial quarter of 7.5 minutes or more rounds
	// up to the next quarter. Minutes are integral, so 8 is the smallest
	// remainder that rounds up.
	roundUpThresholdMinutes = 7.5

	errMalformedTimeFmt = "malformed time of day %q: expected HH:MM"
)

func minutesOfDay(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf(errMalformedTimeFmt, value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf(errMalformedTimeFmt, value)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf(errMalformedTimeFmt, value)
	}

	return hours*minutesPerHour + minutes, nil
}

// RoundToQuarterHours converts a start/stop pair ("HH:MM", same day, 24h
// clock) into billable hours rounded to the nearest quarter hour, ties
// rounding up. A stop at or before start coerces to 0.
func RoundToQuarterHours(start, stop string) (float64, error) {
	startMin, err := minutesOfDay(start)
	if err != nil {
		return 0, err
	}

	stopMin, err := minutesOfDay(stop)
	if err != nil {
		return 0, err
	}

	elapsed := stopMin - startMin
	if elapsed <= 0 {
		return 0, nil
	}

	quarters := elapsed / minutesPerQuarter
	remainder := elapsed % minutesPerQuarter
	if float64(remainder) >= roundUpThresholdMinutes {
		quarters++
	}

	return float64(quarters) * hoursPerQuarter, nil
}

// ComputeDuration derives the stored duration for an entry. A missing
// endpoint yields nil: the entry is open, not zero-length. Callers must
// invoke this on every start/stop mutation so a cleared stop time resets
// the duration.
func ComputeDuration(start, stop *string) (*float64, error) {
	if start == nil || *start == "" || stop == nil || *stop == "" {
		return nil, nil
	}

	hours, err := RoundToQuarterHours(*start, *stop)
	if err != nil {
		return nil, err
	}

	return &hours, nil
}
