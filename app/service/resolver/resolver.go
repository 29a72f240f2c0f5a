package resolver

import (
	"regexp"
	"strings"
	"time"
)

// Kind tags which rule produced a Query, so downstream formatting can frame
// the date the same way the question asked it.
type Kind int

const (
	KindSingle Kind = iota
	KindAnaphora
	KindNextWeek
	KindWeekend
)

// Query is the resolved form of one utterance: the calendar date or inclusive
// date range it asks about, plus an optional category filter. TargetEndDate
// equals TargetDate for single-day queries.
type Query struct {
	TargetDate    time.Time
	TargetEndDate time.Time
	Category      string
	Kind          Kind
}

// IsRange reports whether the query spans more than one day.
func (q Query) IsRange() bool {
	return q.TargetEndDate.After(q.TargetDate)
}

var anaphoraTriggers = []string{"that day", "later", "other", "that night"}

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var dateLiteralPattern = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)

var dateLiteralFormats = []string{"1/2/2006", "1/2/06"}

// Resolve maps an utterance to the date or date range it asks about.
// The rule order is deliberate: each later rule is a strictly less specific
// fallback, and the default guarantees every utterance resolves to something.
// Pure except for reading lastTargetDate; it never fails.
func Resolve(utterance string, today time.Time, lastTargetDate *time.Time) Query {
	lowered := strings.ToLower(utterance)
	today = Day(today)

	query := resolveDate(lowered, today, lastTargetDate)
	query.Category = matchCategory(lowered)

	return query
}

func resolveDate(lowered string, today time.Time, lastTargetDate *time.Time) Query {
	if lastTargetDate != nil {
		for _, trigger := range anaphoraTriggers {
			if strings.Contains(lowered, trigger) {
				return singleDay(*lastTargetDate, KindAnaphora)
			}
		}
	}

	if strings.Contains(lowered, "tomorrow") {
		return singleDay(today.AddDate(0, 0, 1), KindSingle)
	}

	if strings.Contains(lowered, "next week") {
		nextMonday := today.AddDate(0, 0, 7-weekdayIndex(today))

		return Query{
			TargetDate:    nextMonday,
			TargetEndDate: nextMonday.AddDate(0, 0, 6),
			Kind:          KindNextWeek,
		}
	}

	for targetIndex, name := range weekdayNames {
		if !strings.Contains(lowered, name) {
			continue
		}

		daysAhead := targetIndex - weekdayIndex(today)
		if daysAhead < 0 {
			daysAhead += 7
		}

		return singleDay(today.AddDate(0, 0, daysAhead), KindSingle)
	}

	if literal := dateLiteralPattern.FindString(lowered); literal != "" {
		for _, format := range dateLiteralFormats {
			if parsed, err := time.Parse(format, literal); err == nil {
				return singleDay(Day(parsed), KindSingle)
			}
		}
	}

	if strings.Contains(lowered, "weekend") {
		saturday := today.AddDate(0, 0, 5-weekdayIndex(today))

		return Query{
			TargetDate:    saturday,
			TargetEndDate: saturday.AddDate(0, 0, 1),
			Kind:          KindWeekend,
		}
	}

	return singleDay(today, KindSingle)
}

func singleDay(date time.Time, kind Kind) Query {
	return Query{
		TargetDate:    date,
		TargetEndDate: date,
		Kind:          kind,
	}
}

// Day truncates a time to midnight UTC, the canonical form for all date
// arithmetic in the resolver.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekdayIndex maps Monday to 0 and Sunday to 6, the convention every rule
// in the cascade depends on.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
