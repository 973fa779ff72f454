package dateutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// YearLabelPrefix is prepended to every period marker on the year axis.
const YearLabelPrefix = "Year "

var twelve = decimal.NewFromInt(12)

// IsYearBoundary reports whether a 1-based simulation month closes a full year
func IsYearBoundary(month int) bool {
	return month > 0 && month%12 == 0
}

// YearOfMonth converts a 1-based simulation month into its year marker.
// Whole years are exact; anything else is rounded to one decimal place.
func YearOfMonth(month int) decimal.Decimal {
	if IsYearBoundary(month) {
		return decimal.NewFromInt(int64(month / 12))
	}
	return decimal.NewFromInt(int64(month)).Div(twelve).Round(1)
}

// FormatYearLabel renders a year marker as "Year 5" or "Year 12.5".
func FormatYearLabel(year decimal.Decimal) string {
	return YearLabelPrefix + year.String()
}

// YearLabel is shorthand for FormatYearLabel(YearOfMonth(month)).
func YearLabel(month int) string {
	return FormatYearLabel(YearOfMonth(month))
}

// ParseYearLabel extracts the numeric year from a label produced by FormatYearLabel.
// A bare number is accepted as well.
func ParseYearLabel(label string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(label), strings.TrimSpace(YearLabelPrefix)))
	y, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid year label %q: %w", label, err)
	}
	return y, nil
}

// MonthsInYears converts a (possibly fractional) number of years to months.
func MonthsInYears(years decimal.Decimal) decimal.Decimal {
	return years.Mul(twelve)
}

// AddMonths adds months to a date, clamping the day to the end of the target month
// (Jan 31 + 1 month = Feb 28/29).
func AddMonths(date time.Time, months int) time.Time {
	firstOfTarget := time.Date(date.Year(), date.Month()+time.Month(months), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	day := date.Day()
	if last := DaysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return firstOfTarget.AddDate(0, 0, day-1)
}

// PaymentDate returns the date of the n-th payment (1-based) when the first payment is due on start.
func PaymentDate(start time.Time, n int) time.Time {
	if n <= 1 {
		return start
	}
	return AddMonths(start, n-1)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
