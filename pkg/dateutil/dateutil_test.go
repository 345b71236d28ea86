package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeInYear(t *testing.T) {
	tests := []struct {
		name      string
		birthYear int
		calYear   int
		want      int
	}{
		{"Born 1960 in 2025", 1960, 2025, 65},
		{"Birth year itself", 1990, 1990, 0},
		{"Next year", 1990, 1991, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeInYear(tt.birthYear, tt.calYear))
		})
	}
}

func TestAgeAtMonth(t *testing.T) {
	tests := []struct {
		name       string
		birthYear  int
		birthMonth time.Month
		year       int
		month      time.Month
		want       int
	}{
		{"Before birthday month", 1960, time.June, 2025, time.March, 64},
		{"Birthday month", 1960, time.June, 2025, time.June, 65},
		{"After birthday month", 1960, time.June, 2025, time.November, 65},
		{"January birthday never decrements", 1960, time.January, 2025, time.January, 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAtMonth(tt.birthYear, tt.birthMonth, tt.year, tt.month))
		})
	}
}

func TestRMDStartAge(t *testing.T) {
	tests := []struct {
		name      string
		birthYear int
		want      int
	}{
		{"1950 and earlier", 1950, 72},
		{"1949", 1949, 72},
		{"1951", 1951, 73},
		{"1959", 1959, 73},
		{"1960", 1960, 75},
		{"1975", 1975, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RMDStartAge(tt.birthYear))
		})
	}
}

func TestNextMonth(t *testing.T) {
	y, m := NextMonth(2025, time.November)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)

	y, m = NextMonth(2025, time.December)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 12, MonthsBetween(2025, time.January, 2026, time.January))
	assert.Equal(t, 1, MonthsBetween(2025, time.December, 2026, time.January))
	assert.Equal(t, 0, MonthsBetween(2025, time.March, 2025, time.March))
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.False(t, IsLeapYear(2025))
	assert.False(t, IsLeapYear(1900))
	assert.True(t, IsLeapYear(2000))
}
