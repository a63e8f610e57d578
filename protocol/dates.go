package protocol

import (
	"time"
)

// Day numbers are Julian day numbers, so `today - birthday` compares
// linearly against a threshold expressed in whole days. The Unix epoch
// (1970-01-01) is JDN 2440588.
const unixEpochDayNumber = 2440588

const dateLayout = "2006-01-02"

// DayNumber returns the Julian day number of the calendar date carried by t
// (interpreted in UTC).
func DayNumber(t time.Time) int64 {
	secs := t.UTC().Unix()
	days := secs / 86400
	if secs < 0 && secs%86400 != 0 {
		days--
	}
	return days + unixEpochDayNumber
}

// DateFromDayNumber returns the UTC midnight instant of the given Julian day
// number.
func DateFromDayNumber(day int64) time.Time {
	return time.Unix((day-unixEpochDayNumber)*86400, 0).UTC()
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// AgeToDelta converts a threshold of ageYears whole years into a day count
// anchored at the birthday: `today >= birthday + delta` iff the holder has
// reached ageYears as of today. The anniversary is computed on the calendar,
// so a Feb 29 birthday resolves to Mar 1 in non-leap years; the threshold is
// anchored the same way for both relations.
func AgeToDelta(birthday int64, ageYears int, relation Relation) int64 {
	born := DateFromDayNumber(birthday)
	anniversary := born.AddDate(ageYears, 0, 0)
	return DayNumber(anniversary) - birthday
}
