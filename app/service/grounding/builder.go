package grounding

import (
	"fmt"
	"strings"
	"time"

	"guidedawg/app/service/events"
	"guidedawg/app/service/resolver"

	"github.com/samber/do"
)

// Builder turns a resolved query into the formatted dataset context injected
// into the generation prompt. Output is deterministic: same query and store,
// same string.
type Builder struct {
	store *events.Store
}

func New(di *do.Injector) (*Builder, error) {
	return &Builder{
		store: do.MustInvoke[*events.Store](di),
	}, nil
}

// Build selects and formats the slice of the event table matching the query.
// Multi-day queries produce a per-day grouped listing so the downstream model
// sees which days are empty; single-day queries produce one flat sorted list
// or an explicit "no events" sentence.
func (b *Builder) Build(query resolver.Query) string {
	if query.IsRange() {
		return b.groupedRange(query)
	}

	if query.Category != "" {
		return b.categoryDay(query.Category, query.TargetDate)
	}

	return b.singleDay(query.TargetDate)
}

func (b *Builder) singleDay(date time.Time) string {
	matched := b.store.FindByDate(date)
	if len(matched) == 0 {
		return "No events found for this date."
	}

	return FormatRecords(matched)
}

func (b *Builder) categoryDay(category string, date time.Time) string {
	matched := b.store.FindByCategory(category, date, date)
	if len(matched) == 0 {
		return fmt.Sprintf("No %s events found on %s.", category, FormatDate(date))
	}

	return FormatRecords(matched)
}

func (b *Builder) groupedRange(query resolver.Query) string {
	var builder strings.Builder

	for current := query.TargetDate; !current.After(query.TargetEndDate); current = current.AddDate(0, 0, 1) {
		var matched []events.Record
		if query.Category != "" {
			matched = b.store.FindByCategory(query.Category, current, current)
		} else {
			matched = b.store.FindByDate(current)
		}

		builder.WriteString(FormatDate(current))
		builder.WriteString(":\n")

		if len(matched) == 0 {
			builder.WriteString("No events.\n")
		} else {
			builder.WriteString(FormatRecords(matched))
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// FormatRecords renders records as bullet lines, one per record, each with a
// trailing newline. Empty input yields an empty string; callers own the
// "no events" wording for their surface.
func FormatRecords(records []events.Record) string {
	var builder strings.Builder

	for _, r := range records {
		builder.WriteString(fmt.Sprintf("• %s on %s at %s at %s — %s\n",
			r.Name, FormatDate(r.Date), r.ClockDisplay(), r.Location, r.Price))
	}

	return builder.String()
}

// FormatDate renders a date the way every user-visible surface spells it,
// e.g. "Saturday, March 15, 2025".
func FormatDate(date time.Time) string {
	return date.Format("Monday, January 02, 2006")
}
