// Package dateutil provides calendar helpers for year-granularity
// projections: ages, Required Minimum Distribution start ages, and month
// arithmetic for amortization schedules.
package dateutil

import (
	"time"
)

// AgeInYear returns a person's age during a calendar year. The projection
// works at year granularity, so this is the age reached on the birthday that
// falls inside the year.
func AgeInYear(birthYear, calendarYear int) int {
	return calendarYear - birthYear
}

// AgeAtMonth returns the age during the given calendar month, counting a
// year of age only once the birth month has been reached.
func AgeAtMonth(birthYear int, birthMonth time.Month, year int, month time.Month) int {
	age := year - birthYear
	if month < birthMonth {
		age--
	}
	return age
}

// RMDStartAge returns the age at which Required Minimum Distributions begin
// for a given birth year, per the SECURE 2.0 Act schedule.
func RMDStartAge(birthYear int) int {
	switch {
	case birthYear <= 1950:
		return 72
	case birthYear <= 1959:
		return 73
	default: // 1960 and later
		return 75
	}
}

// NextMonth advances a year/month pair by one month, rolling into January of
// the following year after December.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// MonthsBetween counts the whole months from a start year/month to an end
// year/month inclusive of the start and exclusive of the end.
func MonthsBetween(startYear int, startMonth time.Month, endYear int, endMonth time.Month) int {
	return (endYear-startYear)*12 + int(endMonth) - int(startMonth)
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
