// Package obstetric derives the dating values shown beside fetal biometry
// in an obstetric ultrasound report.
package obstetric

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	daysPerWeek = 7
	// Naegele's rule: the due date falls 280 days after the LMP
	naegeleDays       = 280
	maxGestationWeeks = 45
)

var (
	ErrExamBeforeLMP    = errors.New("exam date is before the last menstrual period")
	ErrGestationTooLong = errors.New("gestational age exceeds 45 weeks")
)

// GestationalAgeFromLMP returns the gestational age in decimal weeks on the
// exam date, counting whole calendar days from the last menstrual period.
func GestationalAgeFromLMP(lmp, exam time.Time) (float64, error) {
	days := daysBetween(lmp, exam)
	if days < 0 {
		return 0, fmt.Errorf("%w: lmp %s, exam %s", ErrExamBeforeLMP,
			lmp.Format(time.DateOnly), exam.Format(time.DateOnly))
	}

	weeks := float64(days) / daysPerWeek
	if weeks > maxGestationWeeks {
		return 0, fmt.Errorf("%w: %.1f weeks", ErrGestationTooLong, weeks)
	}
	return weeks, nil
}

// DueDateFromLMP returns the estimated date of delivery by Naegele's rule
func DueDateFromLMP(lmp time.Time) time.Time {
	return calendarDate(lmp).AddDate(0, 0, naegeleDays)
}

// FormatGA renders decimal weeks as "20w3d". Negative or non-finite ages
// render as an empty string.
func FormatGA(weeks float64) string {
	if math.IsNaN(weeks) || math.IsInf(weeks, 0) || weeks < 0 {
		return ""
	}
	totalDays := int(math.Round(weeks * daysPerWeek))
	return fmt.Sprintf("%dw%dd", totalDays/daysPerWeek, totalDays%daysPerWeek)
}

func daysBetween(from, to time.Time) int {
	return int(calendarDate(to).Sub(calendarDate(from)).Hours() / 24)
}

// calendarDate drops the clock so DST shifts never change a day count
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
