package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// 2025-03-13 is a Thursday.
var thursday = date(2025, time.March, 13)

func TestResolveTomorrow(t *testing.T) {
	q := Resolve("what all events are happening tomorrow?", thursday, nil)

	require.Equal(t, date(2025, time.March, 14), q.TargetDate)
	require.Equal(t, q.TargetDate, q.TargetEndDate)
	require.False(t, q.IsRange())
}

func TestResolveAnaphora(t *testing.T) {
	last := date(2025, time.March, 20)

	for _, utterance := range []string{
		"what else is happening that day",
		"anything later on?",
		"any other options",
		"what about that night",
	} {
		q := Resolve(utterance, thursday, &last)

		require.Equal(t, last, q.TargetDate, "utterance %q", utterance)
		require.Equal(t, last, q.TargetEndDate, "utterance %q", utterance)
		require.Equal(t, KindAnaphora, q.Kind, "utterance %q", utterance)
	}
}

func TestResolveAnaphoraWinsOverTomorrow(t *testing.T) {
	last := date(2025, time.March, 20)

	q := Resolve("maybe tomorrow, or later that day", thursday, &last)

	require.Equal(t, last, q.TargetDate)
}

func TestResolveAnaphoraSkippedWithoutLastDate(t *testing.T) {
	q := Resolve("anything later on?", thursday, nil)

	require.Equal(t, thursday, q.TargetDate)
	require.Equal(t, KindSingle, q.Kind)
}

func TestResolveNextWeek(t *testing.T) {
	q := Resolve("what's going on next week", thursday, nil)

	require.Equal(t, date(2025, time.March, 17), q.TargetDate)
	require.Equal(t, date(2025, time.March, 23), q.TargetEndDate)
	require.Equal(t, KindNextWeek, q.Kind)
	require.True(t, q.IsRange())
}

func TestResolveNextWeekAlwaysStartsStrictlyAfterToday(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		today := date(2025, time.March, 10).AddDate(0, 0, offset)

		q := Resolve("next week", today, nil)

		require.True(t, q.TargetDate.After(today), "today %s", today)
		require.Equal(t, time.Monday, q.TargetDate.Weekday())
		require.Equal(t, q.TargetDate.AddDate(0, 0, 6), q.TargetEndDate)
		require.Equal(t, time.Sunday, q.TargetEndDate.Weekday())
	}
}

func TestResolveNamedWeekday(t *testing.T) {
	tests := []struct {
		utterance string
		want      time.Time
	}{
		{"any comedy on friday?", date(2025, time.March, 14)},
		{"what about thursday", thursday},
		{"plans for monday", date(2025, time.March, 17)},
		{"wednesday date night", date(2025, time.March, 19)},
		{"saturday plans", date(2025, time.March, 15)},
	}

	for _, tt := range tests {
		q := Resolve(tt.utterance, thursday, nil)

		require.Equal(t, tt.want, q.TargetDate, "utterance %q", tt.utterance)
		require.Equal(t, tt.want, q.TargetEndDate, "utterance %q", tt.utterance)
	}
}

func TestResolveNamedWeekdayStaysWithinWeek(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		today := date(2025, time.March, 10).AddDate(0, 0, offset)

		for _, name := range weekdayNames {
			q := Resolve("how about "+name, today, nil)

			require.False(t, q.TargetDate.Before(today), "today %s name %s", today, name)
			require.LessOrEqual(t, int(q.TargetDate.Sub(today).Hours()/24), 6, "today %s name %s", today, name)
		}
	}
}

func TestResolveExplicitDate(t *testing.T) {
	tests := []struct {
		utterance string
		want      time.Time
	}{
		{"anything going on 4/20/2025?", date(2025, time.April, 20)},
		{"how about 4/20/25", date(2025, time.April, 20)},
		{"12/5/2025 works for me", date(2025, time.December, 5)},
	}

	for _, tt := range tests {
		q := Resolve(tt.utterance, thursday, nil)

		require.Equal(t, tt.want, q.TargetDate, "utterance %q", tt.utterance)
	}
}

func TestResolveInvalidExplicitDateFallsThrough(t *testing.T) {
	q := Resolve("how about 13/45/2025", thursday, nil)
	require.Equal(t, thursday, q.TargetDate)

	q = Resolve("13/45/2025 or the weekend maybe", thursday, nil)
	require.Equal(t, date(2025, time.March, 15), q.TargetDate)
	require.Equal(t, KindWeekend, q.Kind)
}

func TestResolveWeekend(t *testing.T) {
	q := Resolve("what's happening this weekend", thursday, nil)

	require.Equal(t, date(2025, time.March, 15), q.TargetDate)
	require.Equal(t, date(2025, time.March, 16), q.TargetEndDate)
	require.Equal(t, KindWeekend, q.Kind)
	require.True(t, q.IsRange())
}

func TestResolveDefaultsToToday(t *testing.T) {
	for _, utterance := range []string{
		"hey what's up",
		"plan me a date",
		"",
	} {
		q := Resolve(utterance, thursday, nil)

		require.Equal(t, thursday, q.TargetDate, "utterance %q", utterance)
		require.Equal(t, thursday, q.TargetEndDate, "utterance %q", utterance)
	}
}

func TestResolveKaraokeNextWeek(t *testing.T) {
	q := Resolve("karaoke next week", thursday, nil)

	require.Equal(t, date(2025, time.March, 17), q.TargetDate)
	require.Equal(t, date(2025, time.March, 23), q.TargetEndDate)
	require.Equal(t, "Karaoke & Open Mic", q.Category)
}

func TestWeekdayIndexMondayIsZero(t *testing.T) {
	require.Equal(t, 0, weekdayIndex(date(2025, time.March, 10)))
	require.Equal(t, 6, weekdayIndex(date(2025, time.March, 16)))
}
